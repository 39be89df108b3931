package parser

import (
	"fmt"

	"github.com/navionguy/koneko/ast"
	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/token"
)

func (p *Parser) curToken() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF, Literal: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekToken() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF, Literal: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken().Type == t
}

// a bare command runs until the end of the line, or an else
func (p *Parser) atStatementEnd() bool {
	return p.curTokenIs(token.EOF) || p.curTokenIs(token.ELSE)
}

// expect checks the current token and moves past it
func (p *Parser) expect(t token.TokenType, what string) error {
	if !p.curTokenIs(t) {
		return p.errorf("Expected %s, got %s", what, describe(p.curToken()))
	}
	p.nextToken()
	return nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	if p.lineNum > 0 {
		msg = fmt.Sprintf("%s on line %d", msg, p.lineNum)
	}
	return &berrors.BasicError{Kind: berrors.ParseError, Msg: msg}
}

func describe(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of line"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

func (p *Parser) curIsOneOf(ops []token.TokenType) bool {
	for _, op := range ops {
		if p.curTokenIs(op) {
			return true
		}
	}
	return false
}

// parseList reads expressions up to the closing token
func (p *Parser) parseList(end token.TokenType, what string) ([]ast.Node, error) {
	list := []ast.Node{}

	for !p.curTokenIs(end) {
		if p.curTokenIs(token.EOF) {
			return nil, p.errorf("Expected %s, got end of line", what)
		}

		exp, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, exp)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken()

	return list, nil
}
