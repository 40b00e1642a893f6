package sema_test

import (
	"errors"
	"strings"
	"testing"

	"structura/internal/lexer"
	"structura/internal/parser"
	"structura/internal/sema"
	"structura/internal/types"
)

func check(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.TokenizeString(src)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return sema.Check(prog)
}

func expectKind(t *testing.T, src string, kind sema.Kind) *sema.Error {
	t.Helper()
	err := check(t, src)
	var serr *sema.Error
	if !errors.As(err, &serr) {
		t.Fatalf("%q: expected %s, got %v", src, kind, err)
	}
	if serr.Kind != kind {
		t.Fatalf("%q: expected %s, got %s (%s)", src, kind, serr.Kind, serr.Msg)
	}
	return serr
}

func expectOK(t *testing.T, src string) {
	t.Helper()
	if err := check(t, src); err != nil {
		t.Fatalf("%q: unexpected error %v", src, err)
	}
}

func TestBuiltinForwardReference(t *testing.T) {
	expectOK(t, "abs(a: number): number;\nprint(abs(-5)): number;")
}

func TestBuiltinForwardReferenceMismatch(t *testing.T) {
	err := expectKind(t, "abs(a: string): number;", sema.ReservedNameViolation)
	if !strings.Contains(err.Msg, "abs(number): number") {
		t.Errorf("message = %q", err.Msg)
	}
	expectKind(t, "min(a: number): number;", sema.ReservedNameViolation)
	expectKind(t, "sumNumbers(a: number[]): string;", sema.ReservedNameViolation)
	expectOK(t, "print(a: any, b: any): any;")
}

func TestUnionParameterAcceptsMember(t *testing.T) {
	src := `MixedArr = string|number[];
show(v: MixedArr): string { return "ok"; }
`
	expectOK(t, src+`show("hello"): string;`)
	expectKind(t, src+`show(isURL("http://a.io")): string;`, sema.TypeMismatch)
}

func TestIsURLLiteral(t *testing.T) {
	err := expectKind(t, `isURL("not a url"): boolean;`, sema.InvalidLiteralArgument)
	if err.Line != 1 {
		t.Errorf("line = %d", err.Line)
	}
	expectOK(t, `isURL("https://example.com/path?q=1"): boolean;`)
	expectOK(t, `isURL('EXAMPLE.org'): boolean;`)
	// non-literal arguments are left to the runtime
	expectOK(t, `check(s: string): boolean { return isURL(s); }`)
}

func TestFirstReturnDecidesType(t *testing.T) {
	expectKind(t, `f(a: number): string { return a; return "x"; }`, sema.TypeMismatch)
	expectOK(t, `g(a: number): number { return a; return "x"; }`)
	// statements after the first return are never inspected
	expectOK(t, `h(): number { return 1; undefinedCall(); }`)
}

func TestReturnTypeMustEqualDeclared(t *testing.T) {
	expectKind(t, `f(a: number): string|number { return a; }`, sema.TypeMismatch)
	expectKind(t, "U = string|number;\ng(a: number): U { return a; }", sema.TypeMismatch)
	expectOK(t, "U = string|number;\ng(a: U): U { return a; }")
	expectOK(t, `h(a: number[]|string): string|number[] { return a; }`)
}

func TestMissingReturn(t *testing.T) {
	expectKind(t, `f(a: number): number { print(a); }`, sema.MissingReturnStatement)
	expectKind(t, `f(): number { }`, sema.MissingReturnStatement)
}

func TestStatementsBeforeReturnAreChecked(t *testing.T) {
	expectKind(t, `f(a: number): number { abs("x"); return a; }`, sema.TypeMismatch)
}

func TestCallSiteChecks(t *testing.T) {
	decl := "add(a: number, b: number): number { return a + b; }\n"
	expectOK(t, decl+"add(1, 2): number;")
	expectKind(t, decl+"add(1): number;", sema.ArityMismatch)
	expectKind(t, decl+`add(1, "2"): number;`, sema.TypeMismatch)
	expectKind(t, decl+"add(1, 2): string;", sema.TypeMismatch)
	expectKind(t, "nope(1): any;", sema.UndeclaredFunction)
	expectOK(t, "print(1, \"two\", add2(3)): any;\nadd2(x: number): number { return x + 2; }")
}

func TestForwardReferences(t *testing.T) {
	expectOK(t, `use(p: Pair): number { return later(p); }
later(p: Pair): number { return 1; }
Pair = number[];`)
}

func TestAliases(t *testing.T) {
	expectKind(t, "f(a: Missing): number;", sema.UnknownAlias)
	err := expectKind(t, "A = B;\nB = A;", sema.UnknownAlias)
	if !strings.Contains(err.Msg, "A -> B -> A") {
		t.Errorf("cycle message = %q", err.Msg)
	}
	err = expectKind(t, "A = B;\nB = C;\nC = A;", sema.UnknownAlias)
	if !strings.Contains(err.Msg, "A -> B -> C -> A") {
		t.Errorf("cycle message = %q", err.Msg)
	}
	expectOK(t, "Id = number;\nIds = Id;\nsum2(a: Ids, b: Id): Ids { return a + b; }")
}

func TestBinaryInference(t *testing.T) {
	expectOK(t, `f(a: string): string { return a + "!"; }`)
	expectOK(t, `f(a: number): boolean { return a * 2 >= 10 && a != 3; }`)
	expectOK(t, `f(x: any): string { return x + "s"; }`)
	expectOK(t, `f(x: number): any { return x.field; }`)
	expectKind(t, `f(a: number): any { return a + "s"; }`, sema.TypeMismatch)
	expectKind(t, `f(a: string): number { return a - 1; }`, sema.TypeMismatch)
	expectKind(t, `f(a: number): boolean { return a && a; }`, sema.TypeMismatch)
}

func TestBuiltinsWinOverUserDeclarations(t *testing.T) {
	// the bodyless declaration matches the registry, so the call uses it
	expectOK(t, "capitalize(s: string): string;\ncapitalize(\"x\"): string;")
	expectKind(t, "capitalize(1): string;", sema.TypeMismatch)
}

func TestWildcardNonTransitive(t *testing.T) {
	c := sema.NewChecker()
	if !c.Equal(types.Any, types.Number) {
		t.Error("any == number")
	}
	if !c.Equal(types.Any, types.String) {
		t.Error("any == string")
	}
	if c.Equal(types.Number, types.String) {
		t.Error("number != string even though both equal any")
	}
}

func TestUnionEquality(t *testing.T) {
	c := sema.NewChecker()
	a := types.ParseLiteral("string|number[]")
	b := types.ParseLiteral("number[]|string")
	if !c.Equal(a, b) {
		t.Error("union equality must ignore order")
	}
	if c.Equal(a, types.ParseLiteral("string|number[]|boolean")) {
		t.Error("arity differs")
	}
	if c.Equal(types.ParseLiteral("number|number"), types.ParseLiteral("number|string")) {
		t.Error("members must match both ways")
	}
	if !c.Assignable(types.String, a) || c.Assignable(types.Boolean, a) {
		t.Error("union membership")
	}
	if c.Equal(&types.Alias{Name: "Nope"}, types.Number) {
		t.Error("unresolvable aliases are never equal")
	}
}

func TestErrorDiagnostic(t *testing.T) {
	err := expectKind(t, "\n\nnope(1): any;", sema.UndeclaredFunction)
	d := err.Diagnostic()
	if d.Line != 3 || d.Code.ID() != "SEM3004" {
		t.Errorf("diagnostic = %+v", d)
	}
}
