package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"structura/internal/driver"
)

const scenario1 = "abs(a: number): number;\nprint(abs(-5)): number;\n"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--color=off"}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunPrintsJavaScript(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "main.struct", scenario1)

	out, _, err := execute(t, "run", "main.struct")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"return stdlib.abs(a);", "print(abs(-5));"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestCheckReportsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "bad.struct", "f(a: number): string { return a; }\n")

	_, stderr, err := execute(t, "check", "bad.struct")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "error[SEM3003]:") || !strings.Contains(stderr, "bad.struct:1:") {
		t.Errorf("stderr:\n%s", stderr)
	}

	writeFile(t, "bad.txt", "print(1): any;\n")
	_, stderr, err = execute(t, "check", "bad.txt")
	if !errors.Is(err, errReported) || !strings.Contains(stderr, "PRJ6002") {
		t.Fatalf("wrong extension: %v\n%s", err, stderr)
	}
}

func TestInspectionCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "f.struct", "f(): number { return 2 + 3; }\n")

	out, _, err := execute(t, "ir", "--optimized", "f.struct")
	if err != nil || !strings.Contains(out, "literal number 5") {
		t.Errorf("ir --optimized: %v\n%s", err, out)
	}
	out, _, err = execute(t, "ir", "f.struct")
	if err != nil || !strings.Contains(out, "binary +") {
		t.Errorf("ir: %v\n%s", err, out)
	}
	out, _, err = execute(t, "tac", "f.struct")
	if err != nil || out != "--- Function f ---\nreturn 5\n" {
		t.Errorf("tac: %v\n%q", err, out)
	}
	out, _, err = execute(t, "tokenize", "--format=json", "f.struct")
	if err != nil || !strings.Contains(out, `"RETURN_TYPE"`) {
		t.Errorf("tokenize: %v\n%s", err, out)
	}
	out, _, err = execute(t, "check", "f.struct")
	if err != nil || out != "f.struct: ok\n" {
		t.Errorf("check: %v\n%q", err, out)
	}
}

func TestBuildDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	writeFile(t, "src/a.struct", scenario1)
	writeFile(t, "src/lib/b.struct", "twice(x: number): number { return x * 2; }\n")

	out, _, err := execute(t, "build", "--ui=off", "--with-runtime", "-o", "out", "src")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "built 2 files into out (0 cached)") {
		t.Errorf("output:\n%s", out)
	}
	for _, path := range []string{"out/a.js", "out/lib/b.js", "out/runtime/stdlib.js"} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing %s", path)
		}
	}

	out, _, err = execute(t, "build", "--ui=off", "-o", "out", "src")
	if err != nil || !strings.Contains(out, "(2 cached)") {
		t.Errorf("second build: %v\n%s", err, out)
	}
}

func TestBuildDirectoryFailures(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "src/ok.struct", scenario1)
	writeFile(t, "src/bad.struct", "nope(1): any;\n")

	_, stderr, err := execute(t, "build", "--ui=off", "--no-cache", "-o", "out", "src")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(stderr, "error[SEM3004]:") || !strings.Contains(stderr, "1 of 2 files failed") {
		t.Errorf("stderr:\n%s", stderr)
	}
}

func TestInitThenBuild(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	out, _, err := execute(t, "init", "hello")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "structura.toml") || !strings.Contains(out, "main.struct") {
		t.Errorf("init output:\n%s", out)
	}
	if _, _, err := execute(t, "init", "hello"); err == nil {
		t.Error("second init must fail")
	}

	t.Chdir(filepath.Join(dir, "hello"))
	if _, _, err := execute(t, "build", "--ui=off"); err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := os.ReadFile(filepath.Join("build", "main.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "function capitalize(a0)") {
		t.Errorf("main.js:\n%s", data)
	}

	out, _, err = execute(t, "clean")
	if err != nil || !strings.Contains(out, "removed") {
		t.Errorf("clean: %v\n%s", err, out)
	}
	if _, err := os.Stat("build"); !os.IsNotExist(err) {
		t.Error("build dir must be gone")
	}
}

func TestBuildWithoutInput(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, "build")
	if err == nil || err.Error() != noInputMessage {
		t.Errorf("err = %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	out, _, err := execute(t, "version", "--format=json")
	if err != nil || !strings.Contains(out, `"tool": "structura"`) {
		t.Errorf("version: %v\n%s", err, out)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff, "true": uiModeOn} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil || !strings.Contains(err.Error(), `"maybe"`) {
		t.Errorf("invalid mode: %v", err)
	}
	if !uiModeOn.enabled(nil) || uiModeOff.enabled(os.Stdout) {
		t.Error("explicit modes ignore the terminal")
	}
}

func TestSession(t *testing.T) {
	sess := newSession(driver.DefaultOptions(), false)
	ctx := context.Background()
	var out bytes.Buffer

	if err := sess.eval(ctx, "twice(x: number): number { return x * 2; }", &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "function twice(x)") {
		t.Errorf("js mode:\n%s", out.String())
	}

	out.Reset()
	if err := sess.eval(ctx, `twice("a"): number;`, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "error[SEM3003]") {
		t.Errorf("diagnostic:\n%s", out.String())
	}
	if strings.Contains(sess.src.String(), `twice("a")`) {
		t.Error("failing input must not be kept")
	}

	out.Reset()
	sess.command(":mode tac", &out)
	if err := sess.eval(ctx, "print(twice(2)): any;", &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "t2 := twice(2)") {
		t.Errorf("tac mode:\n%s", out.String())
	}

	out.Reset()
	if sess.command(":mode nope", &out) || !strings.Contains(out.String(), "unknown mode") {
		t.Errorf("bad mode: %s", out.String())
	}
	sess.command(":reset", &out)
	if sess.src.Len() != 0 {
		t.Error("reset must clear the session")
	}
	if !sess.command(":quit", &out) {
		t.Error(":quit must exit")
	}
}

func TestNeedsMore(t *testing.T) {
	if !needsMore("f(a: number): number {") {
		t.Error("open body needs more input")
	}
	if needsMore("print(1): any;") {
		t.Error("complete statement")
	}
	if needsMore("print(1) 2;") {
		t.Error("syntax errors are reported, not continued")
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "f.struct", "f(): number { return 1; }\n")

	if _, _, err := execute(t, "--trace", "trace.ndjson", "check", "f.struct"); err != nil {
		t.Fatalf("check: %v", err)
	}
	finish()
	data, err := os.ReadFile("trace.ndjson")
	if err != nil {
		t.Fatal(err)
	}
	for _, stage := range []string{`"lex"`, `"parse"`, `"check"`} {
		if !strings.Contains(string(data), stage) {
			t.Errorf("trace misses %s:\n%s", stage, data)
		}
	}
}

func TestProfiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, "f.struct", "f(): number { return 1; }\n")

	if _, _, err := execute(t, "--cpu-profile", "cpu.pprof", "--mem-profile", "mem.pprof", "check", "f.struct"); err != nil {
		t.Fatalf("check: %v", err)
	}
	finish()
	for _, path := range []string{"cpu.pprof", "mem.pprof"} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("%s: %v", path, err)
		}
	}
}
