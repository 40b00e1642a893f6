package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"structura/internal/diag"
	"structura/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevWarning:
		return p.warn
	case diag.SevInfo:
		return p.info
	}
	return p.err
}

// Pretty пишет диагностики в человекочитаемом виде:
//
//	error[SEM3003]: message
//	  --> path:line:col
//	   |
//	 3 | source line
//	   |     ^~~~
//
// Diagnostics without a position print only the header line.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

// PrettyOne renders a single diagnostic.
func PrettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	prettyOne(w, d, fs, opts, newPalette(opts.Color))
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	sev := d.Severity.Label()
	fmt.Fprintf(w, "%s%s %s\n",
		p.severity(d.Severity).Sprint(sev),
		p.code.Sprintf("[%s]:", d.Code.ID()),
		d.Message)
	if !located(d, fs) {
		return
	}
	f := fileOf(fs, d.Primary)
	start, end := fs.Resolve(d.Primary)
	line := d.Line
	if start.Line != line {
		// span-less errors fall back to column 1 of the reported line
		start, end = source.LineCol{Line: line, Col: 1}, source.LineCol{Line: line, Col: 1}
	}
	width := len(fmt.Sprint(line))
	pad := strings.Repeat(" ", width)
	fmt.Fprintf(w, "%s %s %s:%d:%d\n", pad, p.gutter.Sprint("-->"), displayPath(f, fs, opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(w, "%s %s\n", pad, p.gutter.Sprint("|"))
	text := strings.ReplaceAll(f.GetLine(line), "\t", " ")
	fmt.Fprintf(w, "%s %s %s\n", p.gutter.Sprintf("%*d", width, line), p.gutter.Sprint("|"), text)
	fmt.Fprintf(w, "%s %s %s\n", pad, p.gutter.Sprint("|"), p.caret.Sprint(underline(start, end, len(text))))
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s %s %s\n", pad, p.note.Sprint("= note:"), n.Msg)
		}
	}
}

// underline builds `   ^~~~` under the columns [start, end) of one line.
func underline(start, end source.LineCol, lineLen int) string {
	col := int(start.Col)
	n := 1
	if end.Line == start.Line && end.Col > start.Col {
		n = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		n = max(lineLen-col+1, 1)
	}
	return strings.Repeat(" ", max(col-1, 0)) + "^" + strings.Repeat("~", n-1)
}
