package sema

import (
	"fmt"

	"structura/internal/diag"
	"structura/internal/source"
)

// Kind classifies type checking failures.
type Kind uint8

const (
	UnknownAlias Kind = iota + 1
	ArityMismatch
	TypeMismatch
	UndeclaredFunction
	ReservedNameViolation
	MissingReturnStatement
	InvalidLiteralArgument
)

var kindNames = map[Kind]string{
	UnknownAlias:           "UnknownAlias",
	ArityMismatch:          "ArityMismatch",
	TypeMismatch:           "TypeMismatch",
	UndeclaredFunction:     "UndeclaredFunction",
	ReservedNameViolation:  "ReservedNameViolation",
	MissingReturnStatement: "MissingReturnStatement",
	InvalidLiteralArgument: "InvalidLiteralArgument",
}

var kindCodes = map[Kind]diag.Code{
	UnknownAlias:           diag.SemaUnknownAlias,
	ArityMismatch:          diag.SemaArityMismatch,
	TypeMismatch:           diag.SemaTypeMismatch,
	UndeclaredFunction:     diag.SemaUndeclaredFunction,
	ReservedNameViolation:  diag.SemaReservedNameViolation,
	MissingReturnStatement: diag.SemaMissingReturnStatement,
	InvalidLiteralArgument: diag.SemaInvalidLiteralArgument,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Code maps the kind onto its diagnostic code.
func (k Kind) Code() diag.Code {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return diag.UnknownCode
}

// Error is a type checking failure. Reserved name violations are also raised
// by the parser, so the type lives here rather than in the checker state.
type Error struct {
	Kind Kind
	Msg  string
	Line uint32
	Span source.Span
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s (line %d)", e.Kind, e.Msg, e.Line)
}

// Diagnostic converts the error into the shared diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Kind.Code(), e.Line, e.Span, e.Msg)
}

func errorf(kind Kind, line uint32, span source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line, Span: span}
}

// ReservedName reports an attempt to define a builtin.
func ReservedName(name string, line uint32, span source.Span) *Error {
	return errorf(ReservedNameViolation, line, span, "cannot override built-in function '%s'", name)
}
