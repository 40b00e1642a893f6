package sema

import (
	"strings"

	"structura/internal/source"
	"structura/internal/types"
)

// Resolve replaces aliases by their definitions, recursing into arrays and
// unions. Unknown names and alias cycles fail with UnknownAlias.
func (c *Checker) Resolve(t types.Type) (types.Type, error) {
	r, err := c.resolve(t, nil)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (c *Checker) resolve(t types.Type, chain []string) (types.Type, *Error) {
	switch t := t.(type) {
	case *types.Alias:
		for i, name := range chain {
			if name == t.Name {
				cycle := append(append([]string{}, chain[i:]...), t.Name)
				return nil, errorf(UnknownAlias, 0, source.Span{}, "cyclic type alias: %s", strings.Join(cycle, " -> "))
			}
		}
		def, ok := c.aliases[t.Name]
		if !ok {
			return nil, errorf(UnknownAlias, 0, source.Span{}, "unknown type alias: %s", t.Name)
		}
		return c.resolve(def, append(chain, t.Name))
	case *types.Array:
		elem, err := c.resolve(t.Elem, chain)
		if err != nil {
			return nil, err
		}
		return &types.Array{Elem: elem}, nil
	case *types.Union:
		members := make([]types.Type, len(t.Members))
		for i, m := range t.Members {
			r, err := c.resolve(m, chain)
			if err != nil {
				return nil, err
			}
			members[i] = r
		}
		return &types.Union{Members: members}, nil
	}
	return t, nil
}

// Equal compares two types structurally after alias resolution. any equals
// every type, so the relation is not transitive. Types that fail to resolve
// are never equal.
func (c *Checker) Equal(a, b types.Type) bool {
	ok, err := c.equal(a, b)
	return err == nil && ok
}

// Assignable reports whether a value of type arg may be passed where param
// is expected: the types are equal, or param is a union with a member equal
// to arg.
func (c *Checker) Assignable(arg, param types.Type) bool {
	ok, err := c.assignable(arg, param)
	return err == nil && ok
}

func (c *Checker) equal(a, b types.Type) (bool, *Error) {
	ra, err := c.resolve(a, nil)
	if err != nil {
		return false, err
	}
	rb, err := c.resolve(b, nil)
	if err != nil {
		return false, err
	}
	return structEqual(ra, rb), nil
}

func (c *Checker) assignable(arg, param types.Type) (bool, *Error) {
	ra, err := c.resolve(arg, nil)
	if err != nil {
		return false, err
	}
	rp, err := c.resolve(param, nil)
	if err != nil {
		return false, err
	}
	if structEqual(ra, rp) {
		return true, nil
	}
	if u, ok := rp.(*types.Union); ok {
		for _, m := range u.Members {
			if structEqual(ra, m) {
				return true, nil
			}
		}
	}
	return false, nil
}

// structEqual compares already resolved types.
func structEqual(a, b types.Type) bool {
	if types.IsAny(a) || types.IsAny(b) {
		return true
	}
	switch a := a.(type) {
	case *types.Primitive:
		bp, ok := b.(*types.Primitive)
		return ok && a.Name == bp.Name
	case *types.Array:
		ba, ok := b.(*types.Array)
		return ok && structEqual(a.Elem, ba.Elem)
	case *types.Union:
		bu, ok := b.(*types.Union)
		if !ok || len(a.Members) != len(bu.Members) {
			return false
		}
		return coveredBy(a.Members, bu.Members) && coveredBy(bu.Members, a.Members)
	}
	return false
}

// coveredBy: every member of xs has an equal member in ys.
func coveredBy(xs, ys []types.Type) bool {
	for _, x := range xs {
		found := false
		for _, y := range ys {
			if structEqual(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
