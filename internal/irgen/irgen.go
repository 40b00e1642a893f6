// Package irgen lowers a checked ast.Program into IR.
//
// Lowering is purely structural and assumes the program already passed the
// checker: one IR node per syntax node, literals decoded, calls to reserved
// names tagged as builtin.
package irgen

import (
	"fmt"
	"strconv"

	"structura/internal/ast"
	"structura/internal/builtins"
	"structura/internal/diag"
	"structura/internal/ir"
	"structura/internal/source"
)

// Error names a syntax node that has no lowering rule.
type Error struct {
	Node string
	Line uint32
	Span source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("unsupported node %s at line %d", e.Node, e.Line)
}

// Diagnostic converts the error into the shared diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.IRUnsupportedNode, e.Line, e.Span, e.Error())
}

func unsupported(n ast.Node, what string) *Error {
	pos := ast.Pos{}
	if n != nil {
		pos = n.Position()
	}
	return &Error{Node: what, Line: pos.Line, Span: pos.Span}
}

// Generate lowers prog item by item, in source order.
func Generate(prog *ast.Program) ([]ir.Node, error) {
	out := make([]ir.Node, 0, len(prog.Items))
	for _, it := range prog.Items {
		n, err := lowerItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func lowerItem(it ast.Item) (ir.Node, error) {
	switch it := it.(type) {
	case *ast.FuncDecl:
		fn := &ir.FuncDecl{
			At:      ir.At{Line: it.Line},
			Name:    it.Name,
			Params:  make([]ir.Param, len(it.Params)),
			Return:  it.Return,
			HasBody: it.HasBody,
		}
		for i, p := range it.Params {
			fn.Params[i] = ir.Param{Name: p.Name, Type: p.Type}
		}
		if it.HasBody {
			fn.Body = make([]ir.Stmt, 0, len(it.Body))
			for _, st := range it.Body {
				s, err := lowerStmt(st)
				if err != nil {
					return nil, err
				}
				fn.Body = append(fn.Body, s)
			}
		}
		return fn, nil
	case *ast.TypeAliasDecl:
		return &ir.TypeAlias{At: ir.At{Line: it.Line}, Alias: it.Name, Type: it.Type}, nil
	case *ast.ExprStmt:
		x, err := lowerExpr(it.X)
		if err != nil {
			return nil, err
		}
		return &ir.ExprStmt{At: ir.At{Line: it.Line}, X: x}, nil
	}
	return nil, unsupported(it, fmt.Sprintf("%T", it))
}

func lowerStmt(st ast.Stmt) (ir.Stmt, error) {
	switch st := st.(type) {
	case *ast.ReturnStmt:
		x, err := lowerExpr(st.X)
		if err != nil {
			return nil, err
		}
		return &ir.ReturnStmt{At: ir.At{Line: st.Line}, X: x}, nil
	case *ast.ExprStmt:
		x, err := lowerExpr(st.X)
		if err != nil {
			return nil, err
		}
		return &ir.ExprStmt{At: ir.At{Line: st.Line}, X: x}, nil
	}
	return nil, unsupported(st, fmt.Sprintf("%T", st))
}

func lowerExpr(x ast.Expr) (ir.Expr, error) {
	switch x := x.(type) {
	case *ast.NumberLit:
		v, err := strconv.ParseFloat(x.Text, 64)
		if err != nil {
			return nil, unsupported(x, "number literal "+x.Text)
		}
		return ir.NumberLit(v, x.Line), nil
	case *ast.StringLit:
		return ir.StringLit(stripQuotes(x.Text), x.Line), nil
	case *ast.Ident:
		return &ir.Variable{At: ir.At{Line: x.Line}, Name: x.Name}, nil
	case *ast.BinaryExpr:
		l, err := lowerExpr(x.Left)
		if err != nil {
			return nil, err
		}
		r, err := lowerExpr(x.Right)
		if err != nil {
			return nil, err
		}
		return &ir.Binary{At: ir.At{Line: x.Line}, Op: x.Op, Left: l, Right: r}, nil
	case *ast.CallExpr:
		callee, err := lowerExpr(x.Callee)
		if err != nil {
			return nil, err
		}
		call := &ir.Call{At: ir.At{Line: x.Line}, Callee: callee, Args: make([]ir.Expr, 0, len(x.Args))}
		for _, a := range x.Args {
			la, err := lowerExpr(a)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, la)
		}
		if name := x.CalleeName(); name != "" && builtins.IsReserved(name) {
			call.Builtin = true
		}
		return call, nil
	case *ast.MemberExpr:
		obj, err := lowerExpr(x.X)
		if err != nil {
			return nil, err
		}
		return &ir.Member{At: ir.At{Line: x.Line}, X: obj, Prop: x.Prop}, nil
	}
	return nil, unsupported(x, fmt.Sprintf("%T", x))
}

// stripQuotes drops one leading and one trailing quote character.
func stripQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if n := len(s); n > 0 && (s[n-1] == '"' || s[n-1] == '\'') {
		s = s[:n-1]
	}
	return s
}
