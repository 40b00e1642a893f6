package parser

import (
	"structura/internal/ast"
	"structura/internal/token"
	"structura/internal/types"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативные.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * /
)

var binaryPrec = map[string]int{
	"||": precLogicalOr,
	"&&": precLogicalAnd,
	"==": precEquality,
	"!=": precEquality,
	"<":  precComparison,
	">":  precComparison,
	"<=": precComparison,
	">=": precComparison,
	"+":  precAdditive,
	"-":  precAdditive,
	"*":  precMultiplicative,
	"/":  precMultiplicative,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(precLogicalOr)
}

// parseBinary is precedence climbing: operators below minPrec end the loop,
// the right operand binds one level tighter.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	start := p.peek()
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for {
		opTok := p.peek()
		if opTok.Kind != token.Operator {
			return left, nil
		}
		prec, ok := binaryPrec[opTok.Text]
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			Pos:   ast.Pos{Line: opTok.Line, Span: start.Span.Cover(p.last.Span)},
			Op:    opTok.Text,
			Left:  left,
			Right: right,
		}
	}
}

// parsePostfix parses a primary followed by any chain of .prop and (args).
func (p *Parser) parsePostfix() (ast.Expr, error) {
	start := p.peek()
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.atSymbol("."):
			p.advance()
			if !p.peek().IsName() {
				return nil, p.unexpected("property name")
			}
			prop := p.advance()
			x = &ast.MemberExpr{Pos: ast.Pos{Line: prop.Line, Span: start.Span.Cover(prop.Span)}, X: x, Prop: prop.Text}
		case p.atSymbol("("):
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err = p.expectSymbol(")"); err != nil {
				return nil, err
			}
			x = &ast.CallExpr{Pos: ast.Pos{Line: x.Position().Line, Span: start.Span.Cover(p.last.Span)}, Callee: x, Args: args}
		default:
			return x, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	pos := ast.Pos{Line: tok.Line, Span: tok.Span}
	switch {
	case tok.Kind == token.NumberLit:
		p.advance()
		return &ast.NumberLit{Pos: pos, Text: tok.Text}, nil
	case tok.Kind == token.StringLit:
		p.advance()
		return &ast.StringLit{Pos: pos, Text: tok.Text}, nil
	case tok.Kind == token.Ident, tok.Kind == token.Keyword && tok.Text != "return":
		p.advance()
		return &ast.Ident{Pos: pos, Name: tok.Text}, nil
	case tok.IsSymbol("("):
		p.advance()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err = p.expectSymbol(")"); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, p.unexpected("expression")
}

// parseArgs parses a possibly empty comma separated expression list up to,
// not including, the closing ')'.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.atSymbol(")") {
		return args, nil
	}
	for {
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if !p.atSymbol(",") {
			return args, nil
		}
		p.advance()
	}
}

// parseType: a type literal or an alias name.
func (p *Parser) parseType() (types.Type, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.TypeLit:
		p.advance()
		return types.ParseLiteral(tok.Text), nil
	case token.Ident:
		p.advance()
		return &types.Alias{Name: tok.Text}, nil
	}
	return nil, p.unexpected("type")
}
