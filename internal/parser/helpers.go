package parser

import (
	"decay/internal/token"
)

// at — следующий токен имеет вид k (без потребления)
func (p *Parser) at(k token.Kind) bool {
	tok, ok := p.lx.Peek()
	return ok && tok.Kind == k
}

// expect — съедает токен и проверяет его вид.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok, ok := p.lx.Next()
	if !ok {
		return token.Token{}, p.missing(k.String())
	}
	if tok.Kind != k {
		return tok, unexpected(k.String(), tok)
	}
	return tok, nil
}

// missing объясняет, почему лексер не отдал токен: конец ввода или мусор.
func (p *Parser) missing(expected string) *SyntaxError {
	if off, bad := p.lx.Unrecognized(); bad {
		return unrecognized(off)
	}
	return unexpectedEOF(expected, p.lx)
}

// skipComma съедает запятую после элемента списка, если она есть.
func (p *Parser) skipComma() bool {
	if !p.at(token.Comma) {
		return false
	}
	p.lx.Next()
	return true
}
