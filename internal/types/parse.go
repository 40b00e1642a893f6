package types

import (
	"strings"
)

// ParseLiteral builds a Type from type-literal text such as
// "string|number[]". Union parts are split on '|'; every trailing "[]" wraps
// the part into an Array. Stems that are not primitive names become aliases,
// which lets a return type written as an alias name go through the same path.
func ParseLiteral(text string) Type {
	parts := strings.Split(text, "|")
	members := make([]Type, 0, len(parts))
	for _, part := range parts {
		members = append(members, parseAtom(strings.TrimSpace(part)))
	}
	return UnionOf(members...)
}

func parseAtom(part string) Type {
	depth := 0
	for strings.HasSuffix(part, "[]") {
		part = strings.TrimSuffix(part, "[]")
		depth++
	}
	var t Type
	switch part {
	case NumberName:
		t = Number
	case StringName:
		t = String
	case BooleanName:
		t = Boolean
	case VoidName:
		t = Void
	case AnyName:
		t = Any
	default:
		t = &Alias{Name: part}
	}
	for range depth {
		t = ArrayOf(t)
	}
	return t
}
