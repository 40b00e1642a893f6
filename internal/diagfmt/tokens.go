package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"structura/internal/source"
	"structura/internal/token"
)

type TokenOutput struct {
	Kind  string `json:"type"`
	Value string `json:"value,omitempty"`
	Line  uint32 `json:"line"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

// FormatTokensPretty prints one token per line with its position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Kind != token.EOF {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if f := fileOf(fs, tok.Span); f != nil && tok.Kind != token.EOF {
			start, end := fs.Resolve(tok.Span)
			fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		} else {
			fmt.Fprintf(w, " at line %d", tok.Line)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Value: tok.Text,
			Line:  tok.Line,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
