package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"structura/internal/diag"
	"structura/internal/lexer"
	"structura/internal/observ"
	"structura/internal/parser"
	"structura/internal/project"
	"structura/internal/sema"
	"structura/internal/trace"
)

func TestCompileScenarioForwardingStub(t *testing.T) {
	res, err := Compile(context.Background(), "main.struct", []byte("abs(a: number): number;\nprint(abs(-5)): number;\n"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"(function() {\n",
		`const stdlib = require("./runtime/stdlib.js");`,
		"function abs(a) {\n  return stdlib.abs(a);\n}",
		"print(abs(-5));\n",
		"})();\n",
	} {
		if !strings.Contains(res.Output, want) {
			t.Errorf("missing %q in:\n%s", want, res.Output)
		}
	}
	if len(res.Tokens) == 0 || res.AST == nil || len(res.IR) != 2 || len(res.Optimized) != 2 {
		t.Errorf("artifacts missing: %+v", res)
	}
}

func TestCompileErrorsCarryStage(t *testing.T) {
	cases := []struct {
		src   string
		stage Stage
		code  diag.Code
		as    any
	}{
		{"f(): number { return 1 # 2; }", StageLex, diag.LexUnknownChar, new(*lexer.Error)},
		{"f(): number { return 1 }", StageParse, diag.SynExpectSemicolon, new(*parser.Error)},
		{"f(): string { return 1; }", StageCheck, diag.SemaTypeMismatch, new(*sema.Error)},
	}
	for _, tc := range cases {
		res, err := Compile(context.Background(), "x.struct", []byte(tc.src), DefaultOptions())
		var cerr *CompileError
		if !errors.As(err, &cerr) {
			t.Fatalf("%q: expected CompileError, got %v", tc.src, err)
		}
		if cerr.Stage != tc.stage {
			t.Errorf("%q: stage = %s, want %s", tc.src, cerr.Stage, tc.stage)
		}
		if d := cerr.Diagnostic(); d.Code != tc.code {
			t.Errorf("%q: code = %s, want %s (%s)", tc.src, d.Code.ID(), tc.code.ID(), d.Message)
		}
		if !errors.As(err, tc.as) {
			t.Errorf("%q: stage error type not reachable through Unwrap", tc.src)
		}
		if res == nil || res.Output != "" {
			t.Errorf("%q: partial result = %+v", tc.src, res)
		}
	}
}

func TestStopAfter(t *testing.T) {
	opts := DefaultOptions()
	opts.StopAfter = StageParse
	// the checker would reject this program, but it never runs
	res, err := Compile(context.Background(), "x.struct", []byte("nope(1): any;"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.AST == nil || res.IR != nil || res.Output != "" {
		t.Errorf("result = %+v", res)
	}
}

func TestObserverAndTimer(t *testing.T) {
	var events []PhaseEvent
	opts := DefaultOptions()
	opts.Timer = observ.NewTimer()
	opts.Observer = func(ev PhaseEvent) { events = append(events, ev) }
	if _, err := Compile(context.Background(), "x.struct", []byte("print(1): any;"), opts); err != nil {
		t.Fatal(err)
	}
	if len(events) != 12 {
		t.Fatalf("got %d events", len(events))
	}
	if events[0].Stage != StageLex || events[0].Status != PhaseStart || events[11].Stage != StageEmit || events[11].Status != PhaseEnd {
		t.Errorf("events = %+v", events)
	}
	r := opts.Timer.Report()
	if len(r.Phases) != 6 || r.Phases[0].Name != "lex" || !strings.HasSuffix(r.Phases[0].Note, "tokens") {
		t.Errorf("timer = %+v", r)
	}
}

func TestCompileTraced(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)
	if _, err := Compile(ctx, "x.struct", []byte("print(1): any;"), DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	for _, st := range []string{"lex", "parse", "check", "irgen", "optimize", "emit"} {
		if !strings.Contains(buf.String(), "→ "+st) {
			t.Errorf("no span for %s:\n%s", st, buf.String())
		}
	}
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, "x.struct", []byte("print(1): any;"), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestCompilePath(t *testing.T) {
	dir := t.TempDir()
	if _, err := CompilePath(context.Background(), filepath.Join(dir, "main.js"), DefaultOptions()); !errors.As(err, new(*project.ExtError)) {
		t.Errorf("extension: %v", err)
	}
	_, err := CompilePath(context.Background(), filepath.Join(dir, "missing.struct"), DefaultOptions())
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Diagnostic().Code != diag.IOLoadFileError {
		t.Errorf("missing file: %v", err)
	}
	path := filepath.Join(dir, "ok.struct")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFprint(\"hi\"): any;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := CompilePath(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Output, `print("hi");`) {
		t.Errorf("output:\n%s", res.Output)
	}
}

func TestParseStage(t *testing.T) {
	for st := StageLex; st <= StageEmit; st++ {
		got, err := ParseStage(st.String())
		if err != nil || got != st {
			t.Errorf("%s: %v %v", st, got, err)
		}
	}
	if _, err := ParseStage("link"); err == nil {
		t.Error("expected error")
	}
}
