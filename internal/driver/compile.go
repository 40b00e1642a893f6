// Package driver runs the compilation pipeline over files and directories.
package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"structura/internal/ast"
	"structura/internal/diag"
	"structura/internal/emit"
	"structura/internal/ir"
	"structura/internal/irgen"
	"structura/internal/iropt"
	"structura/internal/lexer"
	"structura/internal/observ"
	"structura/internal/parser"
	"structura/internal/project"
	"structura/internal/sema"
	"structura/internal/source"
	"structura/internal/token"
	"structura/internal/trace"
)

var sourceless source.Span

// Options configures one compilation.
type Options struct {
	Emit emit.Options
	// StopAfter ends the pipeline after the given stage; StageNone runs all.
	StopAfter Stage
	// Timer, when set, receives one phase per stage.
	Timer    *observ.Timer
	Observer PhaseObserver
}

// DefaultOptions compiles all the way to JavaScript with default emit options.
func DefaultOptions() Options {
	return Options{Emit: emit.DefaultOptions()}
}

// Result holds every artifact produced before the pipeline stopped.
type Result struct {
	FileSet   *source.FileSet
	File      *source.File
	Tokens    []token.Token
	AST       *ast.Program
	IR        []ir.Node
	Optimized []ir.Node
	Output    string
}

// Compile runs the pipeline over an in-memory source named name.
func Compile(ctx context.Context, name string, src []byte, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return CompileFile(ctx, fs, id, opts)
}

// CompilePath loads path and compiles it. The path must end in .struct.
func CompilePath(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := project.CheckExt(path); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return CompileFile(ctx, fs, id, opts)
}

// CompileFile compiles a file already loaded into fs. The returned Result is
// non-nil even on failure and carries the artifacts of completed stages.
func CompileFile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*Result, error) {
	res := &Result{FileSet: fs, File: fs.Get(id)}
	tracer := trace.FromContext(ctx)
	parent := trace.ParentSpan(ctx)

	run := func(st Stage, fn func() (string, error)) (bool, error) {
		if opts.StopAfter != StageNone && st > opts.StopAfter {
			return false, nil
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		span := trace.Begin(tracer, trace.ScopePass, st.String(), parent)
		idx := -1
		if opts.Timer != nil {
			idx = opts.Timer.Begin(st.String())
		}
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Stage: st, Status: PhaseStart})
		}
		start := time.Now()
		note, err := fn()
		elapsed := time.Since(start)
		if err != nil {
			note = "failed"
		}
		span.End(note)
		if opts.Timer != nil {
			opts.Timer.End(idx, note)
		}
		if opts.Observer != nil {
			opts.Observer(PhaseEvent{Stage: st, Status: PhaseEnd, Elapsed: elapsed})
		}
		if err != nil {
			return false, &CompileError{Stage: st, Err: err}
		}
		return true, nil
	}

	steps := []struct {
		stage Stage
		fn    func() (string, error)
	}{
		{StageLex, func() (string, error) {
			toks, err := lexer.Tokenize(res.File)
			res.Tokens = toks
			return strconv.Itoa(len(toks)) + " tokens", err
		}},
		{StageParse, func() (string, error) {
			prog, err := parser.Parse(res.Tokens)
			res.AST = prog
			if err != nil {
				return "", err
			}
			return strconv.Itoa(len(prog.Items)) + " items", nil
		}},
		{StageCheck, func() (string, error) {
			return "", sema.Check(res.AST)
		}},
		{StageIRGen, func() (string, error) {
			nodes, err := irgen.Generate(res.AST)
			res.IR = nodes
			return strconv.Itoa(len(nodes)) + " nodes", err
		}},
		{StageOptimize, func() (string, error) {
			res.Optimized = iropt.Optimize(res.IR)
			return "", nil
		}},
		{StageEmit, func() (string, error) {
			res.Output = emit.Emit(res.Optimized, opts.Emit)
			return fmt.Sprintf("%d bytes", len(res.Output)), nil
		}},
	}
	for _, step := range steps {
		ok, err := run(step.stage, step.fn)
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}
	}
	return res, nil
}

// LoadError reports a source file that could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.IOLoadFileError, 0, sourceless, e.Error())
}
