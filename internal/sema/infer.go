package sema

import (
	"regexp"
	"strings"

	"structura/internal/ast"
	"structura/internal/builtins"
	"structura/internal/types"
)

// urlPattern is the same check the runtime isURL performs.
var urlPattern = regexp.MustCompile(`(?i)^(https?://)?([\w.-]+)\.([a-z]{2,6})(/[\w\-._~:/?#[\]@!$&'()*+,;=]*)*/?$`)

// IsURL reports whether s looks like a URL to the runtime library.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// infer computes the static type of x. scope maps parameter names to their
// declared types; unknown identifiers are any.
func (c *Checker) infer(x ast.Expr, scope map[string]types.Type) (types.Type, *Error) {
	switch x := x.(type) {
	case *ast.NumberLit:
		return types.Number, nil
	case *ast.StringLit:
		return types.String, nil
	case *ast.Ident:
		if t, ok := scope[x.Name]; ok {
			return t, nil
		}
		return types.Any, nil
	case *ast.BinaryExpr:
		return c.inferBinary(x, scope)
	case *ast.CallExpr:
		return c.inferCall(x, scope)
	case *ast.MemberExpr:
		if _, err := c.infer(x.X, scope); err != nil {
			return nil, err
		}
		return types.Any, nil
	}
	return types.Any, nil
}

func (c *Checker) inferBinary(x *ast.BinaryExpr, scope map[string]types.Type) (types.Type, *Error) {
	lt, err := c.infer(x.Left, scope)
	if err != nil {
		return nil, err
	}
	rt, err := c.infer(x.Right, scope)
	if err != nil {
		return nil, err
	}
	l, err := c.resolve(lt, nil)
	if err != nil {
		return nil, at(err, x)
	}
	r, err := c.resolve(rt, nil)
	if err != nil {
		return nil, at(err, x)
	}

	both := func(name string) bool {
		return (types.IsAny(l) || types.IsPrimitive(l, name)) && (types.IsAny(r) || types.IsPrimitive(r, name))
	}
	mismatch := func(verb string) *Error {
		return errorf(TypeMismatch, x.Line, x.Span, "cannot %s '%s' and '%s'", verb, l, r)
	}

	switch x.Op {
	case "+":
		switch {
		case types.IsAny(l):
			return r, nil
		case types.IsAny(r):
			return l, nil
		case types.IsPrimitive(l, types.NumberName) && types.IsPrimitive(r, types.NumberName):
			return types.Number, nil
		case types.IsPrimitive(l, types.StringName) && types.IsPrimitive(r, types.StringName):
			return types.String, nil
		}
		return nil, mismatch("add")
	case "-", "*", "/":
		if !both(types.NumberName) {
			return nil, mismatch("apply '" + x.Op + "' to")
		}
		return types.Number, nil
	case "<", ">", "<=", ">=":
		if !both(types.NumberName) {
			return nil, mismatch("compare")
		}
		return types.Boolean, nil
	case "==", "!=":
		return types.Boolean, nil
	case "&&", "||":
		if !both(types.BooleanName) {
			return nil, mismatch("apply '" + x.Op + "' to")
		}
		return types.Boolean, nil
	}
	return types.Any, nil
}

// inferCall checks a call site and returns the callee's declared return type.
// Calls through member or call results, and calls of parameters, are any.
func (c *Checker) inferCall(call *ast.CallExpr, scope map[string]types.Type) (types.Type, *Error) {
	argTypes := make([]types.Type, len(call.Args))
	for i, a := range call.Args {
		t, err := c.infer(a, scope)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}

	name := call.CalleeName()
	if name == "" {
		if _, err := c.infer(call.Callee, scope); err != nil {
			return nil, err
		}
		return types.Any, nil
	}
	sig, ok := c.lookup(name)
	if !ok {
		if _, isParam := scope[name]; isParam {
			return types.Any, nil
		}
		return nil, errorf(UndeclaredFunction, call.Line, call.Span, "function '%s' is not declared", name)
	}

	if !sig.variadic && len(call.Args) != len(sig.params) {
		return nil, errorf(ArityMismatch, call.Line, call.Span,
			"function '%s' expects %d argument(s) but got %d", name, len(sig.params), len(call.Args))
	}
	for i, argT := range argTypes {
		want := sig.paramAt(i)
		ok, err := c.assignable(argT, want)
		if err != nil {
			return nil, at(err, call)
		}
		if !ok {
			arg := call.Args[i].Position()
			return nil, errorf(TypeMismatch, arg.Line, arg.Span,
				"function '%s' is called with argument type '%s' at parameter %d but expected '%s'", name, argT, i+1, want)
		}
	}

	if name == "isURL" && len(call.Args) == 1 {
		if lit, ok := call.Args[0].(*ast.StringLit); ok {
			if text := unquote(lit.Text); !IsURL(text) {
				return nil, errorf(InvalidLiteralArgument, lit.Line, lit.Span,
					"isURL argument %s is not a valid URL", lit.Text)
			}
		}
	}
	return sig.ret, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func formatSignature(sig builtins.Signature) string {
	params := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = p.String()
	}
	list := strings.Join(params, ", ")
	if sig.Variadic {
		list = "..." + list
	}
	return sig.Name + "(" + list + "): " + sig.Return.String()
}
