package ir

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented dump of nodes, one IR node per line.
func Fprint(w io.Writer, nodes []Node) error {
	d := dumper{w: w}
	for _, n := range nodes {
		d.node(n)
	}
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(indent int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", indent), fmt.Sprintf(format, args...))
}

func (d *dumper) node(n Node) {
	switch n := n.(type) {
	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Name + ": " + p.Type.String()
		}
		flags := ""
		if n.Builtin {
			flags = " builtin"
		}
		d.printf(0, "func %s(%s): %s%s", n.Name, strings.Join(params, ", "), n.Return, flags)
		if !n.HasBody {
			return
		}
		for _, st := range n.Body {
			d.stmt(st, 1)
		}
	case *TypeAlias:
		d.printf(0, "alias %s = %s", n.Alias, n.Type)
	case *ExprStmt:
		d.printf(0, "expr")
		d.expr(n.X, 1)
	}
}

func (d *dumper) stmt(st Stmt, indent int) {
	switch st := st.(type) {
	case *ReturnStmt:
		d.printf(indent, "return")
		d.expr(st.X, indent+1)
	case *ExprStmt:
		d.printf(indent, "expr")
		d.expr(st.X, indent+1)
	}
}

func (d *dumper) expr(e Expr, indent int) {
	switch e := e.(type) {
	case *Literal:
		if e.Kind == LitString {
			d.printf(indent, "literal string %s", strconv.Quote(e.Str))
		} else {
			d.printf(indent, "literal number %s", FormatNumber(e.Num))
		}
	case *Variable:
		d.printf(indent, "var %s", e.Name)
	case *Binary:
		d.printf(indent, "binary %s", e.Op)
		d.expr(e.Left, indent+1)
		d.expr(e.Right, indent+1)
	case *Call:
		if e.Builtin {
			d.printf(indent, "call builtin")
		} else {
			d.printf(indent, "call")
		}
		d.expr(e.Callee, indent+1)
		for _, a := range e.Args {
			d.expr(a, indent+1)
		}
	case *Member:
		d.printf(indent, "member .%s", e.Prop)
		d.expr(e.X, indent+1)
	}
}
