package diag

import (
	"fmt"
	"strings"

	"structura/internal/source"
)

// FormatShort renders one diagnostic as a single stable line:
//
//	error SEM3003 path:line:col message
//
// When fs is nil (or the span is unknown to it) only the line is printed.
func FormatShort(d Diagnostic, fs *source.FileSet) string {
	loc := fmt.Sprintf("%d", d.Line)
	if fs != nil && int(d.Primary.File) < fs.Len() {
		f := fs.Get(d.Primary.File)
		pos := f.Position(d.Primary.Start)
		loc = fmt.Sprintf("%s:%d:%d", f.DisplayPath(fs.BaseDir()), pos.Line, pos.Col)
	}
	msg := strings.Join(strings.Fields(d.Message), " ")
	return fmt.Sprintf("%s %s %s %s", d.Severity.Label(), d.Code.ID(), loc, msg)
}

// FormatShortAll renders every diagnostic of the bag, one per line.
func FormatShortAll(b *Bag, fs *source.FileSet) string {
	lines := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		lines = append(lines, FormatShort(d, fs))
	}
	return strings.Join(lines, "\n")
}
