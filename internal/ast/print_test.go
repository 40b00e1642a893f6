package ast

import (
	"strings"
	"testing"

	"structura/internal/types"
)

func TestFprint(t *testing.T) {
	prog := &Program{Items: []Item{
		&TypeAliasDecl{Pos: Pos{Line: 1}, Name: "Id", Type: types.Number},
		&FuncDecl{
			Pos:     Pos{Line: 2},
			Name:    "inc",
			Params:  []*Param{{Name: "x", Type: &types.Alias{Name: "Id"}}},
			Return:  types.Number,
			HasBody: true,
			Body: []Stmt{&ReturnStmt{Pos: Pos{Line: 2}, X: &BinaryExpr{
				Pos: Pos{Line: 2}, Op: "+",
				Left:  &Ident{Name: "x"},
				Right: &NumberLit{Text: "1"},
			}}},
		},
		&ExprStmt{Pos: Pos{Line: 3}, Annot: types.Any, X: &CallExpr{
			Pos:    Pos{Line: 3},
			Callee: &Ident{Name: "print"},
			Args:   []Expr{&StringLit{Text: `"hi"`}},
		}},
	}}

	var sb strings.Builder
	if err := Fprint(&sb, prog); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"TypeAlias Id = number @1",
		"FuncDecl inc(x: Id): number @2",
		"└─ Return @2",
		"   └─ Binary + @2",
		"      ├─ Ident x",
		"      └─ Number 1",
		"CallStmt: any @3",
		"└─ Call @3",
		"   ├─ Ident print",
		`   └─ String "hi"`,
		"",
	}, "\n")
	if got := sb.String(); got != want {
		t.Errorf("Fprint mismatch:\n--- got\n%s--- want\n%s", got, want)
	}
}

func TestExprString(t *testing.T) {
	e := &CallExpr{
		Callee: &MemberExpr{X: &Ident{Name: "a"}, Prop: "b"},
		Args:   []Expr{&BinaryExpr{Op: "*", Left: &NumberLit{Text: "2"}, Right: &Ident{Name: "c"}}},
	}
	if got := String(e); got != "a.b((2 * c))" {
		t.Errorf("String = %q", got)
	}
}
