package parser

import (
	"structura/internal/ast"
	"structura/internal/builtins"
	"structura/internal/sema"
	"structura/internal/token"
	"structura/internal/types"
)

// parseTypeAlias: Name = type ;?
func (p *Parser) parseTypeAlias() (*ast.TypeAliasDecl, error) {
	nameTok, err := p.expectKind(token.Ident, "alias name")
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol("="); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.atSymbol(";") {
		p.advance()
	}
	return &ast.TypeAliasDecl{Pos: p.posFrom(nameTok), Name: nameTok.Text, Type: ty}, nil
}

// parseFunc: name ( params ) : ret ( { body } | ; )
//
// Builtins may only appear as bodyless forward references; the checker
// later holds such a declaration to the registry signature.
func (p *Parser) parseFunc() (*ast.FuncDecl, error) {
	nameTok := p.advance()
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol(")"); err != nil {
		return nil, err
	}
	ret, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}

	fn := &ast.FuncDecl{Name: nameTok.Text, Params: params, Return: ret}
	if p.atSymbol("{") {
		fn.HasBody = true
		if fn.Body, err = p.parseBody(); err != nil {
			return nil, err
		}
	} else if _, err = p.expectSymbol(";"); err != nil {
		return nil, err
	}
	fn.Pos = p.posFrom(nameTok)

	if fn.HasBody && builtins.IsReserved(fn.Name) {
		return nil, sema.ReservedName(fn.Name, nameTok.Line, nameTok.Span)
	}
	return fn, nil
}

func (p *Parser) parseParams() ([]*ast.Param, error) {
	var params []*ast.Param
	if p.atSymbol(")") {
		return params, nil
	}
	for {
		prm, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, prm)
		if !p.atSymbol(",") {
			return params, nil
		}
		p.advance()
	}
}

func (p *Parser) parseParam() (*ast.Param, error) {
	nameTok, err := p.expectKind(token.Ident, "parameter name")
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol(":"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Param{Pos: p.posFrom(nameTok), Name: nameTok.Text, Type: ty}, nil
}

func (p *Parser) parseBody() ([]ast.Stmt, error) {
	if _, err := p.expectSymbol("{"); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	for !p.atSymbol("}") {
		if p.at(token.EOF) {
			return nil, p.unexpected("'}'")
		}
		st, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, st)
	}
	p.advance()
	return body, nil
}

// parseStmt: return expr ; | expr ;
func (p *Parser) parseStmt() (ast.Stmt, error) {
	start := p.peek()
	isReturn := start.Is(token.Keyword, "return")
	if isReturn {
		p.advance()
	}
	x, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol(";"); err != nil {
		return nil, err
	}
	if isReturn {
		return &ast.ReturnStmt{Pos: p.posFrom(start), X: x}, nil
	}
	return &ast.ExprStmt{Pos: p.posFrom(start), X: x}, nil
}

// parseCallStmt: name ( args ) : type ;
func (p *Parser) parseCallStmt() (*ast.ExprStmt, error) {
	nameTok := p.advance()
	callee := &ast.Ident{Pos: ast.Pos{Line: nameTok.Line, Span: nameTok.Span}, Name: nameTok.Text}
	if _, err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol(")"); err != nil {
		return nil, err
	}
	call := &ast.CallExpr{Pos: p.posFrom(nameTok), Callee: callee, Args: args}
	annot, err := p.parseReturnType()
	if err != nil {
		return nil, err
	}
	if _, err = p.expectSymbol(";"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Pos: p.posFrom(nameTok), X: call, Annot: annot}, nil
}

func (p *Parser) parseReturnType() (types.Type, error) {
	tok, err := p.expectKind(token.ReturnType, "return type")
	if err != nil {
		return nil, err
	}
	return types.ParseLiteral(tok.Text), nil
}
