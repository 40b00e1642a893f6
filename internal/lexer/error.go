package lexer

import (
	"fmt"

	"structura/internal/diag"
	"structura/internal/source"
)

// Error is returned when no rule matches at the cursor.
type Error struct {
	Pos  uint32
	Line uint32
	Char rune
	Span source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character at position %d: %q (line %d)", e.Pos, e.Char, e.Line)
}

// Diagnostic converts the error into the shared diagnostic form.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.LexUnknownChar, e.Line, e.Span, e.Error())
}
