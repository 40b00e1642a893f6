// Package sema type checks a parsed program.
//
// Checking runs in two phases. The first collects every alias and every
// function declaration so that later items may be referenced before they are
// declared. The second walks the items in source order: alias definitions must
// resolve, declarations must be well formed and their first return must match
// the declared type, and top-level call statements are checked against the
// signature of their callee. The first failure ends checking.
//
// The builtin registry is consulted before user declarations, so a user
// declaration can never change what a builtin name means.
package sema

import (
	"structura/internal/ast"
	"structura/internal/builtins"
	"structura/internal/types"
)

// Checker holds the tables of one compilation. It is not safe for
// concurrent use; create one per program.
type Checker struct {
	aliases map[string]types.Type
	funcs   map[string]*ast.FuncDecl
}

// NewChecker returns a checker with empty tables.
func NewChecker() *Checker {
	return &Checker{
		aliases: make(map[string]types.Type),
		funcs:   make(map[string]*ast.FuncDecl),
	}
}

// Check validates prog with a fresh checker.
func Check(prog *ast.Program) error {
	return NewChecker().Check(prog)
}

// Check validates prog. It returns nil or a *Error.
func (c *Checker) Check(prog *ast.Program) error {
	c.collect(prog)
	for _, it := range prog.Items {
		var err *Error
		switch it := it.(type) {
		case *ast.TypeAliasDecl:
			err = c.checkAlias(it)
		case *ast.FuncDecl:
			err = c.checkFunc(it)
		case *ast.ExprStmt:
			err = c.checkCallStmt(it)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) collect(prog *ast.Program) {
	for _, it := range prog.Items {
		if a, ok := it.(*ast.TypeAliasDecl); ok {
			c.aliases[a.Name] = a.Type
		}
	}
	for _, fn := range prog.Funcs() {
		// тело побеждает заглушку, как и в эмиттере
		if prev, ok := c.funcs[fn.Name]; ok && prev.HasBody && !fn.HasBody {
			continue
		}
		c.funcs[fn.Name] = fn
	}
}

// signature is the callable view of a builtin or a user declaration.
type signature struct {
	name     string
	params   []types.Type
	variadic bool
	ret      types.Type
}

func (s signature) paramAt(i int) types.Type {
	if s.variadic && len(s.params) > 0 {
		return s.params[len(s.params)-1]
	}
	return s.params[i]
}

// lookup finds a callee: builtins first, then user declarations.
func (c *Checker) lookup(name string) (signature, bool) {
	if b, ok := builtins.Lookup(name); ok {
		return signature{name: b.Name, params: b.Params, variadic: b.Variadic, ret: b.Return}, true
	}
	fn, ok := c.funcs[name]
	if !ok {
		return signature{}, false
	}
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Type
	}
	return signature{name: fn.Name, params: params, ret: fn.Return}, true
}

func (c *Checker) checkAlias(a *ast.TypeAliasDecl) *Error {
	if _, err := c.resolve(&types.Alias{Name: a.Name}, nil); err != nil {
		return at(err, a)
	}
	return nil
}

func (c *Checker) checkFunc(fn *ast.FuncDecl) *Error {
	for _, p := range fn.Params {
		if _, err := c.resolve(p.Type, nil); err != nil {
			return at(err, p)
		}
	}
	if _, err := c.resolve(fn.Return, nil); err != nil {
		return at(err, fn)
	}
	if builtins.IsReserved(fn.Name) {
		// с телом сюда не доходит: парсер уже отверг
		return c.checkBuiltinForward(fn)
	}
	if !fn.HasBody {
		return nil
	}
	return c.checkBody(fn)
}

// checkBuiltinForward holds a bodyless declaration of a builtin to the
// registry signature.
func (c *Checker) checkBuiltinForward(fn *ast.FuncDecl) *Error {
	if fn.HasBody {
		return ReservedName(fn.Name, fn.Line, fn.Span)
	}
	sig, _ := builtins.Lookup(fn.Name)
	mismatch := func() *Error {
		return errorf(ReservedNameViolation, fn.Line, fn.Span,
			"declaration of built-in function '%s' does not match its signature %s", fn.Name, formatSignature(sig))
	}
	if !sig.Variadic && len(fn.Params) != sig.Arity() {
		return mismatch()
	}
	for i, p := range fn.Params {
		if !c.Equal(p.Type, sig.ParamAt(i)) {
			return mismatch()
		}
	}
	if !c.Equal(fn.Return, sig.Return) {
		return mismatch()
	}
	return nil
}

// checkBody walks statements up to and including the first return; later
// statements are not inspected.
func (c *Checker) checkBody(fn *ast.FuncDecl) *Error {
	scope := make(map[string]types.Type, len(fn.Params))
	for _, p := range fn.Params {
		scope[p.Name] = p.Type
	}
	for _, st := range fn.Body {
		switch st := st.(type) {
		case *ast.ExprStmt:
			if _, err := c.infer(st.X, scope); err != nil {
				return err
			}
		case *ast.ReturnStmt:
			got, err := c.infer(st.X, scope)
			if err != nil {
				return err
			}
			ok, rerr := c.equal(got, fn.Return)
			if rerr != nil {
				return at(rerr, st)
			}
			if !ok {
				return errorf(TypeMismatch, st.Line, st.Span,
					"function '%s' should return '%s' but returns '%s'", fn.Name, fn.Return, got)
			}
			return nil
		}
	}
	return errorf(MissingReturnStatement, fn.Line, fn.Span, "function '%s' has no return statement", fn.Name)
}

func (c *Checker) checkCallStmt(st *ast.ExprStmt) *Error {
	call, ok := st.X.(*ast.CallExpr)
	if !ok {
		_, err := c.infer(st.X, nil)
		return err
	}
	ret, err := c.inferCall(call, nil)
	if err != nil {
		return err
	}
	if st.Annot == nil {
		return nil
	}
	eq, rerr := c.equal(st.Annot, ret)
	if rerr != nil {
		return at(rerr, st)
	}
	if !eq {
		return errorf(TypeMismatch, st.Line, st.Span,
			"call to '%s' is annotated '%s' but returns '%s'", call.CalleeName(), st.Annot, ret)
	}
	return nil
}

// at attaches the node position to an error raised without one.
func at(err *Error, n ast.Node) *Error {
	if err.Line == 0 {
		pos := n.Position()
		err.Line = pos.Line
		err.Span = pos.Span
	}
	return err
}
