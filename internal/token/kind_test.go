package token

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		EOF:        "EOF",
		Keyword:    "KEYWORD",
		ReturnType: "RETURN_TYPE",
		Kind(200):  "UNKNOWN",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestKeywordLookup(t *testing.T) {
	for _, kw := range []string{"print", "return", "slugify", "isURL"} {
		if !IsKeyword(kw) {
			t.Errorf("%q should be a keyword", kw)
		}
	}
	for _, id := range []string{"add", "Print", "number", "printer"} {
		if IsKeyword(id) {
			t.Errorf("%q should not be a keyword", id)
		}
	}
	if !IsPrimitive("boolean") || IsPrimitive("Boolean") {
		t.Error("primitive lookup is case-sensitive on exact stems")
	}
}

func TestTokenPredicates(t *testing.T) {
	tok := Token{Kind: Symbol, Text: "("}
	if !tok.IsSymbol("(") || tok.IsOperator("(") {
		t.Errorf("predicates wrong for %v", tok)
	}
	if !(Token{Kind: Keyword, Text: "print"}).IsName() {
		t.Error("keywords can name functions")
	}
	if (Token{Kind: TypeLit, Text: "number"}).IsName() {
		t.Error("type literals are not names")
	}
}
