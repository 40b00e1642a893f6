package ast

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented tree of prog, one node per line:
//
//	FuncDecl add(a: number, b: number): number @1
//	└─ Return @1
//	   └─ Binary + @1
func Fprint(w io.Writer, prog *Program) error {
	p := printer{w: w}
	for _, it := range prog.Items {
		p.item(it)
	}
	return p.err
}

// String renders an expression back in source form. Binary operands are
// always parenthesised so the tree shape is visible.
func String(e Expr) string {
	switch e := e.(type) {
	case *NumberLit:
		return e.Text
	case *StringLit:
		return e.Text
	case *Ident:
		return e.Name
	case *BinaryExpr:
		return "(" + String(e.Left) + " " + e.Op + " " + String(e.Right) + ")"
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = String(a)
		}
		return String(e.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *MemberExpr:
		return String(e.X) + "." + e.Prop
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("<%T>", e)
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(prefix, branch, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s%s\n", prefix, branch, fmt.Sprintf(format, args...))
}

func (p *printer) item(it Item) {
	switch it := it.(type) {
	case *TypeAliasDecl:
		p.line("", "", "TypeAlias %s = %s @%d", it.Name, it.Type, it.Line)
	case *FuncDecl:
		params := make([]string, len(it.Params))
		for i, prm := range it.Params {
			params[i] = prm.Name + ": " + prm.Type.String()
		}
		suffix := ";"
		if it.HasBody {
			suffix = ""
		}
		p.line("", "", "FuncDecl %s(%s): %s%s @%d", it.Name, strings.Join(params, ", "), it.Return, suffix, it.Line)
		for i, st := range it.Body {
			p.stmt(st, "", i == len(it.Body)-1)
		}
	case *ExprStmt:
		annot := ""
		if it.Annot != nil {
			annot = ": " + it.Annot.String()
		}
		p.line("", "", "CallStmt%s @%d", annot, it.Line)
		p.expr(it.X, "", true)
	}
}

func branches(prefix string, last bool) (string, string) {
	if last {
		return "└─ ", prefix + "   "
	}
	return "├─ ", prefix + "│  "
}

func (p *printer) stmt(st Stmt, prefix string, last bool) {
	branch, next := branches(prefix, last)
	switch st := st.(type) {
	case *ReturnStmt:
		p.line(prefix, branch, "Return @%d", st.Line)
		p.expr(st.X, next, true)
	case *ExprStmt:
		p.line(prefix, branch, "Expr @%d", st.Line)
		p.expr(st.X, next, true)
	}
}

func (p *printer) expr(e Expr, prefix string, last bool) {
	branch, next := branches(prefix, last)
	switch e := e.(type) {
	case *NumberLit:
		p.line(prefix, branch, "Number %s", e.Text)
	case *StringLit:
		p.line(prefix, branch, "String %s", e.Text)
	case *Ident:
		p.line(prefix, branch, "Ident %s", e.Name)
	case *BinaryExpr:
		p.line(prefix, branch, "Binary %s @%d", e.Op, e.Line)
		p.expr(e.Left, next, false)
		p.expr(e.Right, next, true)
	case *CallExpr:
		p.line(prefix, branch, "Call @%d", e.Line)
		p.expr(e.Callee, next, len(e.Args) == 0)
		for i, a := range e.Args {
			p.expr(a, next, i == len(e.Args)-1)
		}
	case *MemberExpr:
		p.line(prefix, branch, "Member .%s @%d", e.Prop, e.Line)
		p.expr(e.X, next, true)
	}
}
