package diagfmt

import (
	"path/filepath"

	"structura/internal/diag"
	"structura/internal/source"
)

// fileOf returns the file a span points into, or nil when the span does not
// belong to fs.
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}

// located reports whether d carries a usable source position.
func located(d diag.Diagnostic, fs *source.FileSet) bool {
	return d.Line > 0 && fileOf(fs, d.Primary) != nil
}

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.DisplayPath(fs.BaseDir())
}
