// Package testkit holds assertions shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"structura/internal/ast"
	"structura/internal/source"
)

// CheckSpanInvariants verifies the spans of a parsed file:
// 1) every node span is non-empty, points at sf and lies within its content
// 2) children lie within their parent
// 3) items appear in source order without overlapping
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := spanChecker{file: sf.ID, size: size}

	var prev source.Span
	for i, it := range prog.Items {
		sp := it.Position().Span
		if err := c.node(it, source.Span{File: sf.ID, Start: 0, End: size}); err != nil {
			return err
		}
		if i > 0 && sp.Start < prev.End {
			return fmt.Errorf("item %d span %v overlaps previous item %v", i, sp, prev)
		}
		prev = sp
	}
	return nil
}

type spanChecker struct {
	file source.FileID
	size uint32
}

func (c spanChecker) node(n ast.Node, parent source.Span) error {
	sp := n.Position().Span
	if sp.End <= sp.Start {
		return fmt.Errorf("%T: empty span %v", n, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%T: span file mismatch: got=%d want=%d", n, sp.File, c.file)
	}
	if sp.End > c.size {
		return fmt.Errorf("%T: span end beyond content: %d > %d", n, sp.End, c.size)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%T: span %v is outside parent span %v", n, sp, parent)
	}
	for _, child := range children(n) {
		if err := c.node(child, sp); err != nil {
			return err
		}
	}
	return nil
}

func children(n ast.Node) []ast.Node {
	var out []ast.Node
	switch n := n.(type) {
	case *ast.FuncDecl:
		for _, p := range n.Params {
			out = append(out, p)
		}
		for _, st := range n.Body {
			out = append(out, st)
		}
	case *ast.ExprStmt:
		out = append(out, n.X)
	case *ast.ReturnStmt:
		out = append(out, n.X)
	case *ast.BinaryExpr:
		out = append(out, n.Left, n.Right)
	case *ast.CallExpr:
		out = append(out, n.Callee)
		for _, a := range n.Args {
			out = append(out, a)
		}
	case *ast.MemberExpr:
		out = append(out, n.X)
	}
	return out
}
