// Package parser turns the token stream into an ast.Program.
//
// The grammar is small enough for plain recursive descent with one token of
// lookahead. The only place that looks further is the top-level dispatch,
// which peeks past `name (` to tell a declaration from a call statement.
// Parsing stops at the first error; there is no recovery.
package parser

import (
	"structura/internal/ast"
	"structura/internal/source"
	"structura/internal/token"
)

// Parser — состояние парсера на один файл
type Parser struct {
	toks []token.Token
	pos  int
	last token.Token // последний съеденный токен, для спанов
}

// Parse builds the program from a token stream produced by the lexer. The
// stream is expected to end with EOF; a missing EOF is treated as if present.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := &Parser{toks: toks}
	return p.parseProgram()
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		cur := p.peek()
		switch {
		case cur.IsName():
			item, err := p.parseItem()
			if err != nil {
				return nil, err
			}
			prog.Items = append(prog.Items, item)
		case cur.IsSymbol(";"):
			p.advance()
		default:
			return nil, p.unexpected("declaration or call statement")
		}
	}
	return prog, nil
}

// parseItem dispatches on the token after the leading name.
func (p *Parser) parseItem() (ast.Item, error) {
	next := p.peekAt(1)
	switch {
	case next.IsSymbol("="):
		return p.parseTypeAlias()
	case next.IsSymbol("("):
		if p.isParamList() {
			return p.parseFunc()
		}
		return p.parseCallStmt()
	default:
		p.advance()
		return nil, p.unexpected("'=' or '('")
	}
}

// isParamList: the parenthesised list after the name is empty or starts
// with `ident :`.
func (p *Parser) isParamList() bool {
	first := p.peekAt(2)
	if first.IsSymbol(")") {
		return true
	}
	return first.Kind == token.Ident && p.peekAt(3).IsSymbol(":")
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	eof := token.Token{Kind: token.EOF}
	if len(p.toks) > 0 {
		lastTok := p.toks[len(p.toks)-1]
		eof.Line = lastTok.Line
		eof.Span = source.Span{File: lastTok.Span.File, Start: lastTok.Span.End, End: lastTok.Span.End}
	}
	return eof
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atSymbol(s string) bool {
	return p.peek().IsSymbol(s)
}

// advance — съедает текущий токен
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	p.last = tok
	return tok
}

// expectSymbol consumes the symbol s or fails.
func (p *Parser) expectSymbol(s string) (token.Token, error) {
	if p.atSymbol(s) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected("'" + s + "'")
}

func (p *Parser) expectKind(k token.Kind, what string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(what)
}

// posFrom builds a node position from start up to the last consumed token.
func (p *Parser) posFrom(start token.Token) ast.Pos {
	return ast.Pos{Line: start.Line, Span: start.Span.Cover(p.last.Span)}
}
