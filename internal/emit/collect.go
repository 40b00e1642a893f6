package emit

import (
	"fmt"

	"structura/internal/builtins"
	"structura/internal/ir"
)

// collect buckets top-level nodes. A function declared twice keeps its
// first position; the declaration with a body replaces a bodyless one.
func (e *Emitter) collect(nodes []ir.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *ir.FuncDecl:
			i, seen := e.byName[n.Name]
			if !seen {
				e.byName[n.Name] = len(e.funcs)
				e.funcs = append(e.funcs, n)
				continue
			}
			if n.HasBody && !e.funcs[i].HasBody {
				e.funcs[i] = n
			}
		case *ir.TypeAlias:
			e.aliases = append(e.aliases, n)
		case *ir.ExprStmt:
			e.stmts = append(e.stmts, n)
		}
	}
}

// synthesizeStubs adds a forwarding function for every reserved name that
// is called but never declared. Stubs follow registry order.
func (e *Emitter) synthesizeStubs(nodes []ir.Node) {
	called := CalledBuiltins(nodes)
	for _, name := range builtins.Names() {
		if _, ok := called[name]; !ok {
			continue
		}
		if _, declared := e.byName[name]; declared {
			continue
		}
		sig, _ := builtins.Lookup(name)
		e.byName[name] = len(e.funcs)
		e.funcs = append(e.funcs, stub(sig))
	}
}

func stub(sig builtins.Signature) *ir.FuncDecl {
	fn := &ir.FuncDecl{Name: sig.Name, Return: sig.Return, Builtin: true}
	if sig.Variadic {
		fn.Params = []ir.Param{{Name: "...args", Type: sig.ParamAt(0)}}
		return fn
	}
	fn.Params = make([]ir.Param, sig.Arity())
	for i := range fn.Params {
		fn.Params[i] = ir.Param{Name: fmt.Sprintf("a%d", i), Type: sig.Params[i]}
	}
	return fn
}

// CalledBuiltins returns the set of reserved names invoked anywhere in nodes.
func CalledBuiltins(nodes []ir.Node) map[string]struct{} {
	out := make(map[string]struct{})
	var walk func(x ir.Expr)
	walk = func(x ir.Expr) {
		switch x := x.(type) {
		case *ir.Binary:
			walk(x.Left)
			walk(x.Right)
		case *ir.Member:
			walk(x.X)
		case *ir.Call:
			if name := x.CalleeName(); name != "" && builtins.IsReserved(name) {
				out[name] = struct{}{}
			}
			walk(x.Callee)
			for _, a := range x.Args {
				walk(a)
			}
		}
	}
	for _, n := range nodes {
		switch n := n.(type) {
		case *ir.FuncDecl:
			for _, st := range n.Body {
				switch st := st.(type) {
				case *ir.ReturnStmt:
					walk(st.X)
				case *ir.ExprStmt:
					walk(st.X)
				}
			}
		case *ir.ExprStmt:
			walk(n.X)
		}
	}
	return out
}
