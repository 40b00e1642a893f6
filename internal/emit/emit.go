// Package emit turns optimized IR into a JavaScript program.
//
// Output layout: optional IIFE wrapper, the runtime import, alias comments,
// one function per name and finally the top-level statements in source
// order. Builtins reach the runtime library through forwarding stubs.
package emit

import (
	"fmt"
	"strings"

	"structura/internal/ir"
)

const (
	DefaultRuntimePath = "./runtime/stdlib.js"
	DefaultRuntimeName = "stdlib"
)

// Options controls the emitted program shape.
type Options struct {
	// RuntimePath is the module path passed to require().
	RuntimePath string
	// RuntimeName is the binding the runtime library is imported as.
	RuntimeName string
	// Wrap encloses the program in an immediately invoked function.
	Wrap bool
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{RuntimePath: DefaultRuntimePath, RuntimeName: DefaultRuntimeName, Wrap: true}
}

func (o Options) withDefaults() Options {
	if o.RuntimePath == "" {
		o.RuntimePath = DefaultRuntimePath
	}
	if o.RuntimeName == "" {
		o.RuntimeName = DefaultRuntimeName
	}
	return o
}

// Emitter holds the state of one Emit call.
type Emitter struct {
	opts    Options
	buf     strings.Builder
	funcs   []*ir.FuncDecl
	byName  map[string]int
	aliases []*ir.TypeAlias
	stmts   []*ir.ExprStmt
}

// Emit renders nodes as JavaScript source.
func Emit(nodes []ir.Node, opts Options) string {
	e := &Emitter{opts: opts.withDefaults(), byName: make(map[string]int)}
	e.collect(nodes)
	e.synthesizeStubs(nodes)

	if e.opts.Wrap {
		e.buf.WriteString("(function() {\n")
	}
	fmt.Fprintf(&e.buf, "const %s = require(%s);\n\n", e.opts.RuntimeName, quote(e.opts.RuntimePath))

	for _, a := range e.aliases {
		fmt.Fprintf(&e.buf, "// Type alias: %s = %s\n", a.Alias, a.Type)
	}
	if len(e.aliases) > 0 {
		e.buf.WriteString("\n")
	}

	for _, fn := range e.funcs {
		e.emitFunc(fn)
		e.buf.WriteString("\n\n")
	}

	if len(e.stmts) > 0 {
		e.buf.WriteString("// Top-level statements:\n")
		for _, st := range e.stmts {
			e.buf.WriteString(expr(st.X))
			e.buf.WriteString(";\n")
		}
	}

	if e.opts.Wrap {
		e.buf.WriteString("})();\n")
	}
	return e.buf.String()
}

func (e *Emitter) emitFunc(fn *ir.FuncDecl) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
	}
	fmt.Fprintf(&e.buf, "function %s(%s) {", fn.Name, strings.Join(params, ", "))
	if fn.HasBody {
		for _, st := range fn.Body {
			e.buf.WriteString("\n  ")
			e.buf.WriteString(stmt(st))
		}
	} else {
		fmt.Fprintf(&e.buf, "\n  return %s.%s(%s);", e.opts.RuntimeName, fn.Name, strings.Join(params, ", "))
	}
	e.buf.WriteString("\n}")
}

func stmt(st ir.Stmt) string {
	switch st := st.(type) {
	case *ir.ReturnStmt:
		return "return " + expr(st.X) + ";"
	case *ir.ExprStmt:
		return expr(st.X) + ";"
	}
	panic(fmt.Sprintf("emit: unexpected statement %T", st))
}
