package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"structura/internal/source"
	"structura/internal/token"
)

// Tokenize runs the ordered rule list over the whole file and returns the
// token stream terminated by EOF. The first unmatched byte aborts lexing.
func Tokenize(file *source.File) ([]token.Token, error) {
	lx := lexer{file: file, src: file.Content, line: 1}
	raw, err := lx.scanAll()
	if err != nil {
		return nil, err
	}
	toks := mergeReturnTypes(raw)
	toks = append(toks, token.Token{
		Kind: token.EOF,
		Line: lx.line,
		Span: lx.span(len(lx.src), len(lx.src)),
	})
	return toks, nil
}

// TokenizeString lexes an in-memory snippet that does not belong to any FileSet.
func TokenizeString(src string) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return Tokenize(fs.Get(id))
}

type lexer struct {
	file *source.File
	src  []byte
	pos  int
	line uint32
}

func (lx *lexer) scanAll() ([]token.Token, error) {
	var toks []token.Token
	for lx.pos < len(lx.src) {
		var prev *token.Token
		if n := len(toks); n > 0 {
			prev = &toks[n-1]
		}
		tok, ok, err := lx.next(prev)
		if err != nil {
			return nil, err
		}
		if ok {
			toks = append(toks, tok)
		}
	}
	return toks, nil
}

// next tries every rule at the cursor; ok is false for skipped matches.
func (lx *lexer) next(prev *token.Token) (token.Token, bool, error) {
	rest := lx.src[lx.pos:]
	for i := range rules {
		r := &rules[i]
		loc := r.re.FindIndex(rest)
		if loc == nil || loc[1] == 0 {
			continue
		}
		start, end := lx.pos, lx.pos+loc[1]
		if r.guard != nil && !r.guard(lx.src, start, end, prev) {
			continue
		}
		text := lx.src[start:end]
		line := lx.line
		lx.line += lineBreaks(text)
		lx.pos = end
		if r.skip {
			return token.Token{}, false, nil
		}
		return token.Token{
			Kind: r.kind,
			Text: string(text),
			Line: line,
			Span: lx.span(start, end),
		}, true, nil
	}
	ch, _ := utf8.DecodeRune(rest)
	return token.Token{}, false, &Error{
		Pos:  lx.offset(lx.pos),
		Line: lx.line,
		Char: ch,
		Span: lx.span(lx.pos, lx.pos+1),
	}
}

func (lx *lexer) offset(n int) uint32 {
	off, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("source offset overflow: %w", err))
	}
	return off
}

func (lx *lexer) span(start, end int) source.Span {
	return source.Span{File: lx.file.ID, Start: lx.offset(start), End: lx.offset(end)}
}

func lineBreaks(text []byte) uint32 {
	n, err := safecast.Conv[uint32](bytes.Count(text, []byte{'\n'}))
	if err != nil {
		panic(err)
	}
	return n
}

// mergeReturnTypes folds `)` `:` <type|ident> into a single ReturnType token
// carrying the type text; its span covers the colon and the type.
func mergeReturnTypes(raw []token.Token) []token.Token {
	out := make([]token.Token, 0, len(raw)+1)
	for i := 0; i < len(raw); i++ {
		tok := raw[i]
		if tok.IsSymbol(":") && i > 0 && raw[i-1].IsSymbol(")") && i+1 < len(raw) &&
			(raw[i+1].Kind == token.TypeLit || raw[i+1].Kind == token.Ident) {
			ty := raw[i+1]
			out = append(out, token.Token{
				Kind: token.ReturnType,
				Text: ty.Text,
				Line: ty.Line,
				Span: tok.Span.Cover(ty.Span),
			})
			i++
			continue
		}
		out = append(out, tok)
	}
	return out
}
