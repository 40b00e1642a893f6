package token

// Keywords is the closed keyword set in lexer order. It is a superset of the
// builtin registry: the extra names are reserved for future library growth and
// lex as keywords, yet behave as plain names elsewhere.
var Keywords = []string{
	"min", "max", "print", "len", "reverse", "abs", "sqrt", "sum", "push", "pop",
	"toUpperCase", "toLowerCase", "substring", "replace", "includes", "clamp",
	"startsWith", "endsWith", "unique", "range", "return", "for", "while", "if",
	"else", "let", "hcf", "lcm", "capitalize", "isURL", "coalesce", "slugify",
}

// PrimitiveTypes lists the type literal stems.
var PrimitiveTypes = []string{"number", "string", "boolean", "void", "any"}

var keywordSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Keywords))
	for _, k := range Keywords {
		m[k] = struct{}{}
	}
	return m
}()

// IsKeyword reports whether name lexes as a Keyword.
func IsKeyword(name string) bool {
	_, ok := keywordSet[name]
	return ok
}

// IsPrimitive reports whether name is a primitive type stem.
func IsPrimitive(name string) bool {
	for _, p := range PrimitiveTypes {
		if p == name {
			return true
		}
	}
	return false
}
