// Package ast defines the syntax tree produced by the parser.
//
// Node families are closed: Item (top level), Stmt (function bodies) and Expr.
// Consumers switch over the concrete types; adding a variant means touching
// every switch, which is what keeps lowering and checking exhaustive.
package ast

import (
	"structura/internal/source"
	"structura/internal/types"
)

// Pos is embedded by every node.
type Pos struct {
	Line uint32
	Span source.Span
}

func (p Pos) Position() Pos { return p }

// Node is any syntax tree node.
type Node interface {
	Position() Pos
}

// Item is a top-level declaration or statement.
type Item interface {
	Node
	isItem()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	isStmt()
}

// Expr is an expression.
type Expr interface {
	Node
	isExpr()
}

// Program is the parsed compilation unit in source order.
type Program struct {
	Items []Item
}

// TypeAliasDecl is `Name = type;`.
type TypeAliasDecl struct {
	Pos
	Name string
	Type types.Type
}

// Param is a `name: type` entry of a declaration's parameter list.
type Param struct {
	Pos
	Name string
	Type types.Type
}

// FuncDecl is a function declaration. HasBody distinguishes `f(): T {}`
// (an empty body) from the bodyless forward reference `f(): T;`.
type FuncDecl struct {
	Pos
	Name    string
	Params  []*Param
	Return  types.Type
	Body    []Stmt
	HasBody bool
}

// ExprStmt is `expr;`. At the top level it is a call statement and Annot
// holds the call-site return type ascription; inside bodies Annot is nil.
type ExprStmt struct {
	Pos
	X     Expr
	Annot types.Type
}

type ReturnStmt struct {
	Pos
	X Expr
}

// NumberLit keeps the literal text, sign included.
type NumberLit struct {
	Pos
	Text string
}

// StringLit keeps the surrounding quotes.
type StringLit struct {
	Pos
	Text string
}

type Ident struct {
	Pos
	Name string
}

type BinaryExpr struct {
	Pos
	Op    string
	Left  Expr
	Right Expr
}

type CallExpr struct {
	Pos
	Callee Expr
	Args   []Expr
}

type MemberExpr struct {
	Pos
	X    Expr
	Prop string
}

func (*TypeAliasDecl) isItem() {}
func (*FuncDecl) isItem()      {}
func (*ExprStmt) isItem()      {}

func (*ExprStmt) isStmt()   {}
func (*ReturnStmt) isStmt() {}

func (*NumberLit) isExpr()  {}
func (*StringLit) isExpr()  {}
func (*Ident) isExpr()      {}
func (*BinaryExpr) isExpr() {}
func (*CallExpr) isExpr()   {}
func (*MemberExpr) isExpr() {}

// CalleeName returns the identifier a call goes through, or "" for calls on
// member or call results.
func (c *CallExpr) CalleeName() string {
	if id, ok := c.Callee.(*Ident); ok {
		return id.Name
	}
	return ""
}

// Funcs returns every function declaration in source order.
func (p *Program) Funcs() []*FuncDecl {
	var out []*FuncDecl
	for _, it := range p.Items {
		if fn, ok := it.(*FuncDecl); ok {
			out = append(out, fn)
		}
	}
	return out
}
