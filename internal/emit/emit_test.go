package emit_test

import (
	"strings"
	"testing"

	"structura/internal/emit"
	"structura/internal/ir"
	"structura/internal/irgen"
	"structura/internal/iropt"
	"structura/internal/lexer"
	"structura/internal/parser"
	"structura/internal/sema"
	"structura/internal/types"
)

func compile(t *testing.T, src string, opts emit.Options) string {
	t.Helper()
	toks, err := lexer.TokenizeString(src)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	if err := sema.Check(prog); err != nil {
		t.Fatal(err)
	}
	nodes, err := irgen.Generate(prog)
	if err != nil {
		t.Fatal(err)
	}
	return emit.Emit(iropt.Optimize(nodes), opts)
}

func TestForwardingStubAndTopLevel(t *testing.T) {
	got := compile(t, "abs(a: number): number;\nprint(abs(-5)): number;", emit.DefaultOptions())
	want := `(function() {
const stdlib = require("./runtime/stdlib.js");

function abs(a) {
  return stdlib.abs(a);
}

function print(...args) {
  return stdlib.print(...args);
}

// Top-level statements:
print(abs(-5));
})();
`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestOnlyReferencedBuiltinsGetStubs(t *testing.T) {
	got := compile(t, `shout(s: string): string { return capitalize(s) + "!"; }`, emit.Options{})
	if !strings.Contains(got, "function capitalize(a0) {\n  return stdlib.capitalize(a0);\n}") {
		t.Errorf("missing capitalize stub:\n%s", got)
	}
	for _, name := range []string{"abs", "print", "slugify", "isURL"} {
		if strings.Contains(got, "function "+name+"(") {
			t.Errorf("unreferenced builtin %s emitted:\n%s", name, got)
		}
	}
	if strings.HasPrefix(got, "(function") {
		t.Error("zero options must not wrap")
	}
	if !strings.HasPrefix(got, `const stdlib = require("./runtime/stdlib.js");`) {
		t.Errorf("runtime import:\n%s", got)
	}
}

func TestBodyWinsOverStub(t *testing.T) {
	nodes := []ir.Node{
		&ir.FuncDecl{Name: "f", Params: []ir.Param{{Name: "x", Type: types.Number}}, Builtin: true},
		&ir.FuncDecl{Name: "g", HasBody: true, Body: []ir.Stmt{&ir.ReturnStmt{X: ir.NumberLit(1, 1)}}},
		&ir.FuncDecl{Name: "f", Params: []ir.Param{{Name: "y", Type: types.Number}}, HasBody: true,
			Body: []ir.Stmt{&ir.ReturnStmt{X: &ir.Variable{Name: "y"}}}},
		&ir.FuncDecl{Name: "f", Params: []ir.Param{{Name: "z", Type: types.Number}}, Builtin: true},
	}
	got := emit.Emit(nodes, emit.Options{RuntimeName: "rt", RuntimePath: "./rt.js"})
	want := `const rt = require("./rt.js");

function f(y) {
  return y;
}

function g() {
  return 1;
}

`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAliasesAsComments(t *testing.T) {
	got := compile(t, "Ids = number[];\nMixed = string|number[];\nMore = Ids;", emit.Options{})
	if !strings.Contains(got, "// Type alias: Ids = number[]\n// Type alias: Mixed = string|number[]\n// Type alias: More = Ids\n") {
		t.Errorf("aliases:\n%s", got)
	}
}

func TestVariadicAndFixedStubs(t *testing.T) {
	got := compile(t, "print(coalesce(1, 2, 3), max(1, 2)): any;", emit.Options{})
	for _, want := range []string{
		"function max(a0, a1) {\n  return stdlib.max(a0, a1);\n}",
		"function coalesce(...args) {\n  return stdlib.coalesce(...args);\n}",
		"function print(...args) {",
		"print(coalesce(1, 2, 3), max(1, 2));\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	// registry order: max before print before coalesce
	if strings.Index(got, "function max") > strings.Index(got, "function print") ||
		strings.Index(got, "function print") > strings.Index(got, "function coalesce") {
		t.Errorf("stub order:\n%s", got)
	}
}

func TestExpressions(t *testing.T) {
	lit := func(v float64) ir.Expr { return ir.NumberLit(v, 1) }
	v := func(n string) ir.Expr { return &ir.Variable{Name: n} }
	b := func(op string, l, r ir.Expr) ir.Expr { return &ir.Binary{Op: op, Left: l, Right: r} }
	cases := []struct {
		x    ir.Expr
		want string
	}{
		{b("+", b("+", v("a"), v("b")), v("c")), "a + b + c"},
		{b("+", v("a"), b("+", v("b"), v("c"))), "a + (b + c)"},
		{b("*", b("+", v("a"), lit(1)), v("c")), "(a + 1) * c"},
		{b("+", v("a"), b("*", v("b"), lit(2))), "a + b * 2"},
		{b("-", v("a"), lit(-5)), "a - -5"},
		{b("&&", b("<", v("a"), lit(1)), b("==", v("b"), ir.StringLit("x", 1))), `a < 1 && b == "x"`},
		{&ir.Member{X: b("+", v("a"), v("b")), Prop: "length"}, "(a + b).length"},
		{&ir.Call{Callee: &ir.Member{X: v("o"), Prop: "m"}, Args: []ir.Expr{lit(0.5), ir.StringLit("q\"<", 1)}}, `o.m(0.5, "q\"<")`},
		{&ir.Member{X: lit(-1), Prop: "x"}, "(-1).x"},
		{&ir.Call{Callee: &ir.Member{X: lit(5), Prop: "toFixed"}, Args: []ir.Expr{lit(2)}}, "(5).toFixed(2)"},
		{b("*", lit(5), lit(2)), "5 * 2"},
	}
	for _, tc := range cases {
		nodes := []ir.Node{&ir.ExprStmt{X: tc.x}}
		got := emit.Emit(nodes, emit.Options{})
		want := "// Top-level statements:\n" + tc.want + ";\n"
		if !strings.HasSuffix(got, want) {
			t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
		}
	}
}

func TestCalledBuiltins(t *testing.T) {
	nodes := []ir.Node{
		&ir.FuncDecl{Name: "f", HasBody: true, Body: []ir.Stmt{
			&ir.ExprStmt{X: &ir.Call{Callee: &ir.Variable{Name: "slugify"}}},
			&ir.ReturnStmt{X: &ir.Member{X: &ir.Call{Callee: &ir.Variable{Name: "hcf"}}, Prop: "p"}},
		}},
		&ir.ExprStmt{X: &ir.Call{Callee: &ir.Variable{Name: "f"}}},
	}
	got := emit.CalledBuiltins(nodes)
	if len(got) != 2 {
		t.Fatalf("called = %v", got)
	}
	for _, n := range []string{"slugify", "hcf"} {
		if _, ok := got[n]; !ok {
			t.Errorf("missing %s", n)
		}
	}
}
