// Package builtins holds the fixed table of reserved functions whose
// implementations live in the runtime library. The table is built once at
// package init and never mutated, so concurrent compilations share it freely.
package builtins

import (
	"slices"

	"structura/internal/types"
)

// Signature describes one builtin. Variadic builtins accept any number of
// arguments of their single parameter type.
type Signature struct {
	Name     string
	Params   []types.Type
	Variadic bool
	Return   types.Type
}

// Arity is the number of declared parameters.
func (s Signature) Arity() int { return len(s.Params) }

// ParamAt returns the parameter type expected at argument position i.
func (s Signature) ParamAt(i int) types.Type {
	if s.Variadic && len(s.Params) > 0 {
		return s.Params[len(s.Params)-1]
	}
	if i < len(s.Params) {
		return s.Params[i]
	}
	return nil
}

var table = []Signature{
	{Name: "abs", Params: []types.Type{types.Number}, Return: types.Number},
	{Name: "min", Params: []types.Type{types.Number, types.Number}, Return: types.Number},
	{Name: "max", Params: []types.Type{types.Number, types.Number}, Return: types.Number},
	{Name: "print", Params: []types.Type{types.Any}, Variadic: true, Return: types.Any},
	{Name: "sumNumbers", Params: []types.Type{types.ArrayOf(types.Number)}, Return: types.Number},
	{Name: "concatStrings", Params: []types.Type{types.ArrayOf(types.String)}, Return: types.String},
	{Name: "hcf", Params: []types.Type{types.Number, types.Number}, Return: types.Number},
	{Name: "lcm", Params: []types.Type{types.Number, types.Number}, Return: types.Number},
	{Name: "capitalize", Params: []types.Type{types.String}, Return: types.String},
	{Name: "isURL", Params: []types.Type{types.String}, Return: types.Boolean},
	{Name: "coalesce", Params: []types.Type{types.Any}, Variadic: true, Return: types.Any},
	{Name: "slugify", Params: []types.Type{types.String}, Return: types.String},
}

var index = func() map[string]int {
	m := make(map[string]int, len(table))
	for i, s := range table {
		m[s.Name] = i
	}
	return m
}()

// Lookup returns the signature of a reserved name.
func Lookup(name string) (Signature, bool) {
	i, ok := index[name]
	if !ok {
		return Signature{}, false
	}
	s := table[i]
	s.Params = slices.Clone(s.Params)
	return s, true
}

// IsReserved reports whether user code is forbidden from defining name.
func IsReserved(name string) bool {
	_, ok := index[name]
	return ok
}

// Names lists reserved names in table order.
func Names() []string {
	out := make([]string, len(table))
	for i, s := range table {
		out[i] = s.Name
	}
	return out
}
