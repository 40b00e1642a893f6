package tac

import (
	"testing"

	"structura/internal/ir"
	"structura/internal/types"
)

func TestGenerate(t *testing.T) {
	v := func(n string) ir.Expr { return &ir.Variable{Name: n} }
	nodes := []ir.Node{
		&ir.TypeAlias{Alias: "N", Type: types.Number},
		&ir.FuncDecl{Name: "abs", Builtin: true},
		&ir.FuncDecl{Name: "later"},
		&ir.FuncDecl{Name: "f", HasBody: true, Body: []ir.Stmt{
			&ir.ReturnStmt{X: &ir.Binary{Op: "*", Left: &ir.Binary{Op: "+", Left: v("a"), Right: ir.NumberLit(1, 1)}, Right: &ir.Member{X: v("o"), Prop: "k"}}},
		}},
		&ir.ExprStmt{X: &ir.Call{Callee: v("print"), Args: []ir.Expr{
			&ir.Call{Callee: v("f"), Args: []ir.Expr{ir.NumberLit(-2.5, 1)}},
			ir.StringLit("hi", 1),
		}}},
	}
	want := `--- Function abs ---
(builtin function: abs forwarding to stdlib)
--- Function later ---
(no body)
--- Function f ---
t1 := a + 1
t2 := t1 * o.k
return t2
t3 := f(-2.5)
t4 := print(t3, "hi")
(result: t4)`
	if got := Generate(nodes); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateEmpty(t *testing.T) {
	if got := Generate(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
