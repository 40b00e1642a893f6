package token

import (
	"fmt"

	"structura/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Line uint32
	Span source.Span
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsSymbol reports whether the token is the symbol s.
func (t Token) IsSymbol(s string) bool { return t.Is(Symbol, s) }

// IsOperator reports whether the token is the operator op.
func (t Token) IsOperator(op string) bool { return t.Is(Operator, op) }

// IsName reports whether the token can name a function or an alias.
func (t Token) IsName() bool {
	return t.Kind == Ident || t.Kind == Keyword
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == NumberLit || t.Kind == StringLit
}

func (t Token) String() string {
	if t.Kind == EOF {
		return fmt.Sprintf("EOF@%d", t.Line)
	}
	return fmt.Sprintf("%s(%q)@%d", t.Kind, t.Text, t.Line)
}
