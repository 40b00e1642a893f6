package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Keyword is a builtin name or control word (print, return, ...).
	Keyword
	// Ident represents an identifier token.
	Ident
	// TypeLit is a primitive type literal with optional [] and | parts: number[]|string.
	TypeLit
	// NumberLit is a decimal number, optionally negative.
	NumberLit
	// StringLit is a single- or double-quoted string.
	StringLit
	// Symbol is one of ( ) [ ] { } : , ; = .
	Symbol
	// Operator is an arithmetic, comparison or logical operator.
	Operator
	// ReturnType is synthesized by the lexer from ')' ':' <type>.
	ReturnType
)

var kindNames = [...]string{
	Invalid:    "INVALID",
	EOF:        "EOF",
	Keyword:    "KEYWORD",
	Ident:      "IDENTIFIER",
	TypeLit:    "TYPE",
	NumberLit:  "NUMBER",
	StringLit:  "STRING",
	Symbol:     "SYMBOL",
	Operator:   "OPERATOR",
	ReturnType: "RETURN_TYPE",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}
