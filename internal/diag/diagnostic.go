package diag

import (
	"structura/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Line     uint32
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, line uint32, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Line:     line,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, line uint32, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, line, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Diagnoser is implemented by every stage error.
type Diagnoser interface {
	error
	Diagnostic() Diagnostic
}
