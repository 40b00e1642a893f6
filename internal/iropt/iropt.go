// Package iropt folds constants in IR.
//
// The pass is a functional rewrite: it returns a new tree and never mutates
// its input, because after folding the same literal node may be reachable from
// more than one parent. Running it on its own output changes nothing.
package iropt

import (
	"structura/internal/ir"
)

// Optimize rewrites nodes. Function bodies and top-level statements are
// optimized; bodyless functions are tagged builtin.
func Optimize(nodes []ir.Node) []ir.Node {
	out := make([]ir.Node, len(nodes))
	for i, n := range nodes {
		out[i] = optimizeNode(n)
	}
	return out
}

func optimizeNode(n ir.Node) ir.Node {
	switch n := n.(type) {
	case *ir.FuncDecl:
		fn := *n
		if len(n.Body) > 0 {
			fn.Body = make([]ir.Stmt, len(n.Body))
			for i, st := range n.Body {
				fn.Body[i] = optimizeStmt(st)
			}
		} else if !n.HasBody {
			fn.Builtin = true
		}
		return &fn
	case *ir.ExprStmt:
		return &ir.ExprStmt{At: n.At, X: Expr(n.X)}
	}
	return n
}

func optimizeStmt(st ir.Stmt) ir.Stmt {
	switch st := st.(type) {
	case *ir.ReturnStmt:
		return &ir.ReturnStmt{At: st.At, X: Expr(st.X)}
	case *ir.ExprStmt:
		return &ir.ExprStmt{At: st.At, X: Expr(st.X)}
	}
	return st
}

// Expr optimizes one expression bottom-up. Only `+` over two literals of the
// same kind folds; builtin calls are returned untouched.
func Expr(e ir.Expr) ir.Expr {
	switch e := e.(type) {
	case *ir.Binary:
		l, r := Expr(e.Left), Expr(e.Right)
		if folded, ok := fold(e, l, r); ok {
			return folded
		}
		return &ir.Binary{At: e.At, Op: e.Op, Left: l, Right: r}
	case *ir.Call:
		if e.Builtin {
			return e
		}
		args := make([]ir.Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = Expr(a)
		}
		return &ir.Call{At: e.At, Callee: Expr(e.Callee), Args: args}
	case *ir.Member:
		return &ir.Member{At: e.At, X: Expr(e.X), Prop: e.Prop}
	}
	return e
}

func fold(e *ir.Binary, l, r ir.Expr) (ir.Expr, bool) {
	if e.Op != "+" {
		return nil, false
	}
	ll, ok := l.(*ir.Literal)
	if !ok {
		return nil, false
	}
	rl, ok := r.(*ir.Literal)
	if !ok || ll.Kind != rl.Kind {
		return nil, false
	}
	if ll.Kind == ir.LitNumber {
		return ir.NumberLit(ll.Num+rl.Num, e.Line), true
	}
	return ir.StringLit(ll.Str+rl.Str, e.Line), true
}
