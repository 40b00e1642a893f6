package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"structura/internal/diag"
	"structura/internal/lexer"
	"structura/internal/parser"
	"structura/internal/sema"
	"structura/internal/source"
)

// checkSource runs the front end over src and returns the first diagnostic.
func checkSource(t *testing.T, src string) (diag.Diagnostic, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSetWithBase("/work")
	id := fs.Add("/work/demo.struct", []byte(src), 0)
	toks, err := lexer.Tokenize(fs.Get(id))
	if err == nil {
		prog, perr := parser.Parse(toks)
		if perr == nil {
			err = sema.Check(prog)
		} else {
			err = perr
		}
	}
	var d diag.Diagnoser
	if !errors.As(err, &d) {
		t.Fatalf("expected a diagnostic error, got %v", err)
	}
	return d.Diagnostic(), fs
}

func TestPrettyCaret(t *testing.T) {
	d, fs := checkSource(t, "add(a: number): number { return a; }\nadd(\"x\"): number;\n")
	bag := diag.NewBag(0)
	bag.Add(d)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	got := buf.String()
	for _, want := range []string{
		"error[SEM3003]: ",
		" --> demo.struct:2:",
		"2 | add(\"x\"): number;\n",
		"^",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("colors must be off:\n%q", got)
	}
}

func TestPrettyLexerError(t *testing.T) {
	d, fs := checkSource(t, "x = number;\n  @")
	var buf bytes.Buffer
	PrettyOne(&buf, d, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "error[LEX1001]:") || !strings.HasSuffix(lines[1], "demo.struct:2:3") {
		t.Errorf("header:\n%s", buf.String())
	}
	if lines[4] != "  |   ^" {
		t.Errorf("caret line = %q", lines[4])
	}
}

func TestPrettyWithoutLocation(t *testing.T) {
	var buf bytes.Buffer
	d := diag.NewError(diag.ProjInvalidConfig, 0, source.Span{}, "structura.toml: bad")
	PrettyOne(&buf, d.WithNote(source.Span{}, "see docs"), nil, PrettyOpts{ShowNotes: true})
	if got := buf.String(); got != "error[PRJ6001]: structura.toml: bad\n" {
		t.Errorf("got %q", got)
	}
}

func TestUnderline(t *testing.T) {
	cases := []struct {
		start, end source.LineCol
		want       string
	}{
		{source.LineCol{Line: 1, Col: 3}, source.LineCol{Line: 1, Col: 6}, "  ^~~"},
		{source.LineCol{Line: 1, Col: 1}, source.LineCol{Line: 1, Col: 1}, "^"},
		{source.LineCol{Line: 1, Col: 2}, source.LineCol{Line: 3, Col: 1}, " ^~~"},
	}
	for _, tc := range cases {
		if got := underline(tc.start, tc.end, 4); got != tc.want {
			t.Errorf("underline(%v, %v) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestJSON(t *testing.T) {
	d, fs := checkSource(t, "\nnope(1): any;")
	bag := diag.NewBag(0)
	bag.Add(d)
	bag.Add(diag.NewError(diag.IOLoadFileError, 0, source.Span{}, "missing.struct"))
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "SEM3004" || first.Severity != "ERROR" || first.Title != "Undeclared function" {
		t.Errorf("first = %+v", first)
	}
	if first.Location == nil || first.Location.File != "demo.struct" || first.Location.Line != 2 || first.Location.StartCol != 1 {
		t.Errorf("location = %+v", first.Location)
	}
	if out.Diagnostics[1].Location != nil {
		t.Errorf("unlocated diagnostic = %+v", out.Diagnostics[1].Location)
	}

	limited := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if limited.Count != 1 {
		t.Errorf("max ignored: %d", limited.Count)
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.struct", []byte("f(): number;"))
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatal(err)
	}
	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pretty.String(), `RETURN_TYPE  "number" at 1:4-1:12`) {
		t.Errorf("pretty:\n%s", pretty.String())
	}
	var js bytes.Buffer
	if err := FormatTokensJSON(&js, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[len(out)-1].Kind != "EOF" {
		t.Errorf("json tokens = %+v", out)
	}
}
