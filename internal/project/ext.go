package project

import (
	"fmt"
	"path/filepath"

	"structura/internal/diag"
	"structura/internal/source"
)

// ExtError reports an input file without the .struct extension.
type ExtError struct {
	Path string
}

func (e *ExtError) Error() string {
	return fmt.Sprintf("%s: input file must have a %s extension", e.Path, SourceExt)
}

func (e *ExtError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.ProjBadExtension, 0, source.Span{}, e.Error())
}

// CheckExt returns *ExtError unless path ends in .struct.
func CheckExt(path string) error {
	if filepath.Ext(path) != SourceExt {
		return &ExtError{Path: path}
	}
	return nil
}
