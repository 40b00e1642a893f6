// Package tac prints IR as three-address code for inspection.
package tac

import (
	"encoding/json"
	"fmt"
	"strings"

	"structura/internal/ir"
)

type printer struct {
	temps int
	lines []string
}

// Generate returns one instruction per line. Functions get a header line;
// aliases are skipped.
func Generate(nodes []ir.Node) string {
	p := &printer{}
	for _, n := range nodes {
		switch n := n.(type) {
		case *ir.FuncDecl:
			p.emit("--- Function %s ---", n.Name)
			switch {
			case len(n.Body) > 0:
				for _, st := range n.Body {
					p.stmt(st)
				}
			case n.Builtin:
				p.emit("(builtin function: %s forwarding to stdlib)", n.Name)
			default:
				p.emit("(no body)")
			}
		case *ir.ExprStmt:
			p.stmt(n)
		}
	}
	return strings.Join(p.lines, "\n")
}

func (p *printer) emit(format string, args ...any) {
	p.lines = append(p.lines, fmt.Sprintf(format, args...))
}

func (p *printer) temp() string {
	p.temps++
	return fmt.Sprintf("t%d", p.temps)
}

func (p *printer) stmt(st ir.Stmt) {
	switch st := st.(type) {
	case *ir.ExprStmt:
		p.emit("(result: %s)", p.expr(st.X))
	case *ir.ReturnStmt:
		p.emit("return %s", p.expr(st.X))
	}
}

// expr emits the instructions computing x and returns the operand holding it.
func (p *printer) expr(x ir.Expr) string {
	switch x := x.(type) {
	case *ir.Literal:
		if x.Kind == ir.LitString {
			b, _ := json.Marshal(x.Str)
			return string(b)
		}
		return ir.FormatNumber(x.Num)
	case *ir.Variable:
		return x.Name
	case *ir.Binary:
		l, r := p.expr(x.Left), p.expr(x.Right)
		t := p.temp()
		p.emit("%s := %s %s %s", t, l, x.Op, r)
		return t
	case *ir.Call:
		callee := p.expr(x.Callee)
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = p.expr(a)
		}
		t := p.temp()
		p.emit("%s := %s(%s)", t, callee, strings.Join(args, ", "))
		return t
	case *ir.Member:
		return p.expr(x.X) + "." + x.Prop
	}
	return "?"
}
