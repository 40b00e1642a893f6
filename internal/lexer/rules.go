package lexer

import (
	"regexp"
	"strings"

	"structura/internal/token"
)

// rule is one entry of the ordered pattern list. The first rule whose pattern
// matches at the cursor (and whose guard accepts the match) wins, so the order
// of rules is part of the language.
type rule struct {
	name  string
	kind  token.Kind
	re    *regexp.Regexp
	skip  bool
	guard func(src []byte, start, end int, prev *token.Token) bool
}

var typeAtom = `(?:` + strings.Join(token.PrimitiveTypes, "|") + `)(?:\[\])*`

var rules = []rule{
	{name: "line-comment", re: regexp.MustCompile(`^//[^\n]*`), skip: true},
	{name: "block-comment", re: regexp.MustCompile(`^/\*[\s\S]*?\*/`), skip: true},
	{
		name: "keyword",
		kind: token.Keyword,
		re:   regexp.MustCompile(`^(?:` + strings.Join(token.Keywords, "|") + `)\b`),
	},
	{
		name:  "type",
		kind:  token.TypeLit,
		re:    regexp.MustCompile(`^` + typeAtom + `(?:\|` + typeAtom + `)*`),
		guard: notFollowedByWord,
	},
	{name: "identifier", kind: token.Ident, re: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
	{
		name:  "number",
		kind:  token.NumberLit,
		re:    regexp.MustCompile(`^-?\d+(?:\.\d+)?`),
		guard: signAllowed,
	},
	{name: "string", kind: token.StringLit, re: regexp.MustCompile(`^(?:"[^"]*"|'[^']*')`)},
	{
		name:  "symbol",
		kind:  token.Symbol,
		re:    regexp.MustCompile(`^[()\[\]{}:,;=.]`),
		guard: notEquality,
	},
	{name: "operator2", kind: token.Operator, re: regexp.MustCompile(`^(?:&&|\|\||==|!=|<=|>=)`)},
	{name: "operator1", kind: token.Operator, re: regexp.MustCompile(`^[+\-*/<>!|]`)},
	{name: "whitespace", re: regexp.MustCompile(`^\s+`), skip: true},
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// numberOfItems — идентификатор, а не тип number + хвост
func notFollowedByWord(src []byte, _, end int, _ *token.Token) bool {
	return end >= len(src) || !isWordByte(src[end])
}

// '=' перед '=' отдаём оператору ==
func notEquality(src []byte, _, end int, _ *token.Token) bool {
	return src[end-1] != '=' || end >= len(src) || src[end] != '='
}

// A leading '-' belongs to the literal only where no operand precedes it,
// so that `a-1` stays a subtraction.
func signAllowed(src []byte, start, _ int, prev *token.Token) bool {
	if src[start] != '-' || prev == nil {
		return true
	}
	switch prev.Kind {
	case token.Ident, token.NumberLit, token.StringLit:
		return false
	case token.Symbol:
		return prev.Text != ")" && prev.Text != "]"
	default:
		return true
	}
}
