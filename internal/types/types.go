package types

import (
	"strings"
)

// Type is implemented only by the types of this package.
type Type interface {
	String() string
	isType()
}

// Primitive names.
const (
	NumberName  = "number"
	StringName  = "string"
	BooleanName = "boolean"
	VoidName    = "void"
	AnyName     = "any"
)

type Primitive struct {
	Name string
}

type Array struct {
	Elem Type
}

// Union keeps members in source order; comparison ignores the order.
type Union struct {
	Members []Type
}

// Alias is an unresolved named reference.
type Alias struct {
	Name string
}

func (*Primitive) isType() {}
func (*Array) isType()     {}
func (*Union) isType()     {}
func (*Alias) isType()     {}

func (p *Primitive) String() string { return p.Name }

func (a *Array) String() string {
	if _, ok := a.Elem.(*Union); ok {
		return "(" + a.Elem.String() + ")[]"
	}
	return a.Elem.String() + "[]"
}

func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, "|")
}

func (a *Alias) String() string { return a.Name }

// Shared primitive instances. Types are immutable, so sharing is safe.
var (
	Number  Type = &Primitive{Name: NumberName}
	String  Type = &Primitive{Name: StringName}
	Boolean Type = &Primitive{Name: BooleanName}
	Void    Type = &Primitive{Name: VoidName}
	Any     Type = &Primitive{Name: AnyName}
)

// IsAny reports whether t is the wildcard primitive.
func IsAny(t Type) bool {
	p, ok := t.(*Primitive)
	return ok && p.Name == AnyName
}

// IsPrimitive reports whether t is the primitive called name.
func IsPrimitive(t Type, name string) bool {
	p, ok := t.(*Primitive)
	return ok && p.Name == name
}

// ArrayOf wraps elem.
func ArrayOf(elem Type) Type { return &Array{Elem: elem} }

// UnionOf builds a union; a single member is returned as is.
func UnionOf(members ...Type) Type {
	if len(members) == 1 {
		return members[0]
	}
	return &Union{Members: members}
}
