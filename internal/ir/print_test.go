package ir

import (
	"strings"
	"testing"

	"structura/internal/types"
)

func TestFprint(t *testing.T) {
	nodes := []Node{
		&TypeAlias{Alias: "Ids", Type: types.ArrayOf(types.Number)},
		&FuncDecl{
			Name:    "greet",
			Params:  []Param{{Name: "n", Type: types.String}},
			Return:  types.String,
			HasBody: true,
			Body: []Stmt{
				&ReturnStmt{X: &Binary{Op: "+", Left: StringLit("hi ", 1), Right: &Variable{Name: "n"}}},
			},
		},
		&FuncDecl{Name: "abs", Params: []Param{{Name: "a", Type: types.Number}}, Return: types.Number, Builtin: true},
		&ExprStmt{X: &Call{
			Callee:  &Variable{Name: "print"},
			Args:    []Expr{&Member{X: &Variable{Name: "o"}, Prop: "len"}, NumberLit(2.5, 1)},
			Builtin: true,
		}},
	}
	var sb strings.Builder
	if err := Fprint(&sb, nodes); err != nil {
		t.Fatal(err)
	}
	want := `alias Ids = number[]
func greet(n: string): string
  return
    binary +
      literal string "hi "
      var n
func abs(a: number): number builtin
expr
  call builtin
    var print
    member .len
      var o
    literal number 2.5
`
	if got := sb.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{5: "5", -5: "-5", 0.25: "0.25", 1e21: "1000000000000000000000"}
	for v, want := range cases {
		if got := FormatNumber(v); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestCalleeName(t *testing.T) {
	c := &Call{Callee: &Variable{Name: "f"}}
	if c.CalleeName() != "f" {
		t.Error("variable callee")
	}
	c = &Call{Callee: &Member{X: &Variable{Name: "o"}, Prop: "m"}}
	if c.CalleeName() != "" {
		t.Error("member callee has no name")
	}
}
