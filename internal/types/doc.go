// Package types models the Structura type language as a closed sum type.
//
// A Type is one of *Primitive, *Array, *Union or *Alias. Aliases are kept
// unresolved here; resolution and equality live in internal/sema because they
// need the alias table of one compilation.
package types
