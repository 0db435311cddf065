package parser

import (
	"decay/internal/ast"
	"decay/internal/token"
)

func (p *Parser) parseStatement(tok token.Token) (*ast.ComponentDecl, error) {
	kw, ok := tok.Keyword()
	if !ok {
		return nil, unknownStatement(tok)
	}
	switch kw {
	case token.KwComponent:
		return p.parseComponent()
	case token.KwView:
		// зарезервировано, синтаксиса пока нет
		return nil, unknownKeyword(tok)
	default:
		return nil, unknownKeyword(tok)
	}
}

// component := "component" identifier parameterList body
func (p *Parser) parseComponent() (*ast.ComponentDecl, error) {
	kw, err := p.expect(token.Keyword)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}

	decl := &ast.ComponentDecl{
		Name: name.Text,
		Positions: ast.ComponentPositions{
			Keyword: ast.PosOf(kw),
			Name:    ast.PosOf(name),
		},
	}
	if err := p.parseParams(decl); err != nil {
		return nil, err
	}
	if err := p.parseBody(decl); err != nil {
		return nil, err
	}
	return decl, nil
}

// parameterList := "(" ( identifier ("," identifier)* ","? )? ")"
func (p *Parser) parseParams(decl *ast.ComponentDecl) error {
	open, err := p.expect(token.LParen)
	if err != nil {
		return err
	}
	decl.Positions.OpenParams = ast.PosOf(open)
	decl.Parameters = make(map[string]ast.Param)

	for !p.at(token.RParen) {
		name, err := p.expect(token.Ident)
		if err != nil {
			return err
		}
		decl.Parameters[name.Text] = ast.Param{Position: ast.PosOf(name)}
		if !p.skipComma() {
			break
		}
	}

	closeTok, err := p.expect(token.RParen)
	if err != nil {
		return err
	}
	decl.Positions.CloseParams = ast.PosOf(closeTok)
	return nil
}

// body := "{" call* "}"
func (p *Parser) parseBody(decl *ast.ComponentDecl) error {
	open, err := p.expect(token.LBrace)
	if err != nil {
		return err
	}
	decl.Positions.OpenBody = ast.PosOf(open)
	decl.Body = make([]*ast.Call, 0)

	for !p.at(token.RBrace) {
		if _, ok := p.lx.Peek(); !ok {
			// EOF или мусор: пусть expect ниже сформулирует ошибку
			break
		}
		call, err := p.parseCall()
		if err != nil {
			return err
		}
		decl.Body = append(decl.Body, call)
	}

	closeTok, err := p.expect(token.RBrace)
	if err != nil {
		return err
	}
	decl.Positions.CloseBody = ast.PosOf(closeTok)
	return nil
}

// call := identifier "(" ( argument ("," argument)* ","? )? ")"
func (p *Parser) parseCall() (*ast.Call, error) {
	name, err := p.expect(token.Ident)
	if err != nil {
		return nil, err
	}
	open, err := p.expect(token.LParen)
	if err != nil {
		return nil, err
	}

	call := &ast.Call{
		Name:      name.Text,
		Arguments: make([]ast.Argument, 0),
		Positions: ast.CallPositions{
			Name:     ast.PosOf(name),
			OpenArgs: ast.PosOf(open),
		},
	}

	for !p.at(token.RParen) {
		arg, err := p.parseArgument()
		if err != nil {
			return nil, err
		}
		call.Arguments = append(call.Arguments, arg)
		if !p.skipComma() {
			break
		}
	}

	closeTok, err := p.expect(token.RParen)
	if err != nil {
		return nil, err
	}
	call.Positions.CloseArgs = ast.PosOf(closeTok)
	return call, nil
}

// argument := string | identifier
func (p *Parser) parseArgument() (ast.Argument, error) {
	const expected = "argument"
	tok, ok := p.lx.Next()
	if !ok {
		return ast.Argument{}, p.missing(expected)
	}
	switch tok.Kind {
	case token.String:
		return ast.Argument{Kind: ast.ArgString, Value: tok.Text, Position: ast.PosOf(tok)}, nil
	case token.Ident:
		return ast.Argument{Kind: ast.ArgIdent, Value: tok.Text, Position: ast.PosOf(tok)}, nil
	default:
		return ast.Argument{}, unexpected(expected, tok)
	}
}
