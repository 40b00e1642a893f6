// Package ir defines the flattened tree the optimizer and emitter work on.
//
// IR is produced once from a checked program and never mutated afterwards;
// passes that rewrite it build new nodes and may share unchanged subtrees.
package ir

import (
	"strconv"

	"structura/internal/types"
)

// Node is a top-level IR item: *FuncDecl, *TypeAlias or *ExprStmt.
type Node interface {
	SourceLine() uint32
	isNode()
}

// Stmt is a function body statement: *ExprStmt or *ReturnStmt.
type Stmt interface {
	SourceLine() uint32
	isStmt()
}

// Expr is an IR expression.
type Expr interface {
	SourceLine() uint32
	isExpr()
}

// At carries the source line of a node.
type At struct {
	Line uint32
}

func (a At) SourceLine() uint32 { return a.Line }

type Param struct {
	Name string
	Type types.Type
}

// FuncDecl is a function. Builtin marks a bodyless forward reference whose
// implementation comes from the runtime library.
type FuncDecl struct {
	At
	Name    string
	Params  []Param
	Return  types.Type
	Body    []Stmt
	HasBody bool
	Builtin bool
}

// TypeAlias is kept for documentation in the output only.
type TypeAlias struct {
	At
	Alias string
	Type  types.Type
}

type ExprStmt struct {
	At
	X Expr
}

type ReturnStmt struct {
	At
	X Expr
}

// LitKind is the type of a literal value.
type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
)

func (k LitKind) String() string {
	if k == LitString {
		return "string"
	}
	return "number"
}

// Literal holds a number or a string without its quotes.
type Literal struct {
	At
	Kind LitKind
	Num  float64
	Str  string
}

type Variable struct {
	At
	Name string
}

type Binary struct {
	At
	Op    string
	Left  Expr
	Right Expr
}

// Call invokes Callee. Builtin is set when the callee is a reserved name.
type Call struct {
	At
	Callee  Expr
	Args    []Expr
	Builtin bool
}

type Member struct {
	At
	X    Expr
	Prop string
}

func (*FuncDecl) isNode()  {}
func (*TypeAlias) isNode() {}
func (*ExprStmt) isNode()  {}

func (*ExprStmt) isStmt()   {}
func (*ReturnStmt) isStmt() {}

func (*Literal) isExpr()  {}
func (*Variable) isExpr() {}
func (*Binary) isExpr()   {}
func (*Call) isExpr()     {}
func (*Member) isExpr()   {}

// NumberLit builds a number literal.
func NumberLit(v float64, line uint32) *Literal {
	return &Literal{At: At{Line: line}, Kind: LitNumber, Num: v}
}

// StringLit builds a string literal.
func StringLit(s string, line uint32) *Literal {
	return &Literal{At: At{Line: line}, Kind: LitString, Str: s}
}

// FormatNumber renders a number the way JavaScript prints it for the
// common cases: integers without a fraction, others in shortest form.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CalleeName returns the callee identifier, or "" when the callee is not a
// plain variable.
func (c *Call) CalleeName() string {
	if v, ok := c.Callee.(*Variable); ok {
		return v.Name
	}
	return ""
}
