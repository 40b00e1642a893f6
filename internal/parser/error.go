package parser

import (
	"fmt"

	"structura/internal/diag"
	"structura/internal/source"
	"structura/internal/token"
)

// Error reports the first unexpected token.
type Error struct {
	Expected string
	Found    string
	Line     uint32
	Span     source.Span
	eof      bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("expected %s but found %s at line %d", e.Expected, e.Found, e.Line)
}

// Incomplete reports whether the input ended before the construct did.
func (e *Error) Incomplete() bool { return e.eof }

// Diagnostic converts the error into the shared diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	code := diag.SynUnexpectedToken
	switch {
	case e.eof:
		code = diag.SynUnexpectedEOF
	case e.Expected == "';'":
		code = diag.SynExpectSemicolon
	case e.Expected == "type" || e.Expected == "return type":
		code = diag.SynExpectType
	}
	return diag.NewError(code, e.Line, e.Span, e.Error())
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s (%s)", tok.Kind, tok.Text)
}

// unexpected builds an error against the current token.
func (p *Parser) unexpected(expected string) *Error {
	tok := p.peek()
	return &Error{
		Expected: expected,
		Found:    describe(tok),
		Line:     tok.Line,
		Span:     tok.Span,
		eof:      tok.Kind == token.EOF,
	}
}
