package parser

import (
	"github.com/navionguy/koneko/ast"
	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/lexer"
	"github.com/navionguy/koneko/token"
)

// Registry tells the parser which identifiers are builtin commands
type Registry interface {
	IsBuiltin(name string) bool
}

// NameSet is the simplest Registry
type NameSet map[string]bool

// IsBuiltin reports if name is in the set
func (ns NameSet) IsBuiltin(name string) bool {
	return ns[name]
}

// Names builds a NameSet
func Names(names ...string) NameSet {
	ns := NameSet{}
	for _, n := range names {
		ns[n] = true
	}
	return ns
}

// Parser an instance, it works over the tokens of a single line
type Parser struct {
	tokens   []token.Token
	pos      int
	lineNum  int
	builtins Registry
}

// New create and return a Parser instance
func New(tokens []token.Token, builtins Registry) *Parser {
	if builtins == nil {
		builtins = NameSet{}
	}
	return &Parser{tokens: tokens, builtins: builtins}
}

// ParseLine lexes and parses one line of source
func ParseLine(src string, builtins Registry) (ast.Line, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return ast.Line{}, err
	}

	return New(toks, builtins).ParseLine(src)
}

// ParseExpression parses src as one expression, no line number allowed
func ParseExpression(src string, builtins Registry) (ast.Node, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}

	p := New(toks, builtins)
	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.curTokenIs(token.EOF) {
		return nil, p.errorf("Expected end of line, got %s", describe(p.curToken()))
	}
	return exp, nil
}

// ParseLine turns the tokens into a Line.
// A leading integer is the line number, a line number
// standing alone comes back holding a NilLiteral.
func (p *Parser) ParseLine(src string) (ast.Line, error) {
	line := ast.Line{Source: src}

	if len(p.tokens) == 0 {
		return line, berrors.New(berrors.ParseError, "Empty line!")
	}

	if p.curTokenIs(token.INT) {
		p.lineNum = int(p.curToken().IntValue)
		line.LineNum = p.lineNum
		p.nextToken()
	}

	if p.curTokenIs(token.EOF) {
		line.Node = &ast.NilLiteral{Token: p.curToken()}
		return line, nil
	}

	node, err := p.parseStatement()
	if err != nil {
		return line, err
	}

	if !p.curTokenIs(token.EOF) {
		return line, p.errorf("Expected end of line, got %s", describe(p.curToken()))
	}

	line.Node = node
	return line, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	cur := p.curToken()

	if cur.Type == token.IDENT {
		switch cur.Literal {
		case "for":
			return p.parseForStatement()
		case "if":
			return p.parseIfStatement()
		case "end":
			if p.peekToken().Type == token.EOF || p.peekToken().Type == token.ELSE {
				p.nextToken()
				return &ast.EndStatement{Token: cur}, nil
			}
		}

		if p.builtins.IsBuiltin(cur.Literal) && p.peekToken().Type != token.LPAREN {
			return p.parseBareCommand()
		}
	}

	return p.parseExpression()
}

// for name = start to end [step step]
func (p *Parser) parseForStatement() (ast.Node, error) {
	stmt := &ast.ForStatement{Token: p.curToken()}
	p.nextToken()

	if !p.curTokenIs(token.IDENT) {
		return nil, p.errorf("Expected identifier, got %s", describe(p.curToken()))
	}
	stmt.Name = p.curToken().Literal
	p.nextToken()

	if err := p.expect(token.ASSIGN, "'='"); err != nil {
		return nil, err
	}

	var err error
	if stmt.Start, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if err := p.expect(token.TO, "'to'"); err != nil {
		return nil, err
	}

	if stmt.End, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if !p.curTokenIs(token.STEP) {
		stmt.Step = &ast.IntegerLiteral{Token: token.Token{Type: token.INT, Literal: "1"}, Value: 1}
		return stmt, nil
	}

	p.nextToken()
	if stmt.Step, err = p.parseExpression(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// if cond then stmt [else stmt]
func (p *Parser) parseIfStatement() (ast.Node, error) {
	stmt := &ast.IfExpression{Token: p.curToken()}
	p.nextToken()

	var err error
	if stmt.Condition, err = p.parseExpression(); err != nil {
		return nil, err
	}

	if err := p.expect(token.THEN, "'then'"); err != nil {
		return nil, err
	}

	if stmt.Consequence, err = p.parseStatement(); err != nil {
		return nil, err
	}

	stmt.Alternative = &ast.NilLiteral{}
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		if stmt.Alternative, err = p.parseStatement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// name arg arg ..., commas between the arguments are optional
func (p *Parser) parseBareCommand() (ast.Node, error) {
	cmd := &ast.BuiltinCommand{Token: p.curToken(), Name: p.curToken().Literal}
	p.nextToken()

	for !p.atStatementEnd() {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	return cmd, nil
}

func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	return p.parseBinary(p.parseAnd, token.PIPE)
}

func (p *Parser) parseAnd() (ast.Node, error) {
	return p.parseBinary(p.parseComparison, token.AMPERSAND)
}

// prefix ! lives at the comparison level
func (p *Parser) parseComparison() (ast.Node, error) {
	if p.curTokenIs(token.EOF) {
		return nil, p.errorf("Expected expression, got end of line")
	}

	if p.curTokenIs(token.BANG) {
		exp := &ast.PrefixExpression{Token: p.curToken(), Operator: p.curToken().Literal}
		p.nextToken()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		exp.Right = right
		return exp, nil
	}

	return p.parseBinary(p.parseSum, token.LT, token.GT, token.LTE, token.GTE, token.EQ, token.NOT_EQ)
}

func (p *Parser) parseSum() (ast.Node, error) {
	return p.parseBinary(p.parseProduct, token.PLUS, token.MINUS)
}

// a leading sign binds as tightly as * and /
func (p *Parser) parseProduct() (ast.Node, error) {
	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.MINUS) {
		exp := &ast.PrefixExpression{Token: p.curToken(), Operator: p.curToken().Literal}
		p.nextToken()

		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		exp.Right = right
		return exp, nil
	}

	return p.parseBinary(p.parseAtom, token.ASTERISK, token.SLASH, token.PERCENT)
}

// parseBinary builds left associative chains of the listed operators
func (p *Parser) parseBinary(operand func() (ast.Node, error), ops ...token.TokenType) (ast.Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.curIsOneOf(ops) {
		exp := &ast.InfixExpression{Token: p.curToken(), Operator: p.curToken().Literal, Left: left}
		p.nextToken()

		if exp.Right, err = operand(); err != nil {
			return nil, err
		}
		left = exp
	}

	return left, nil
}

func (p *Parser) parseAtom() (ast.Node, error) {
	cur := p.curToken()

	switch cur.Type {
	case token.INT:
		p.nextToken()
		return &ast.IntegerLiteral{Token: cur, Value: cur.IntValue}, nil
	case token.FLOAT:
		p.nextToken()
		return &ast.FloatLiteral{Token: cur, Value: cur.FloatValue}, nil
	case token.STRING:
		p.nextToken()
		return &ast.StringLiteral{Token: cur, Value: cur.Literal}, nil
	case token.IDENT:
		return p.parseIdentifier()
	case token.LBRACKET:
		return p.parseEmptyArray()
	case token.LBRACE:
		return p.parseArrayLiteral()
	case token.LPAREN:
		return p.parseGroupedExpression()
	}

	return nil, p.errorf("Expected atom, got %s", describe(cur))
}

// an identifier might be a call, an index, an assignment or just a read
func (p *Parser) parseIdentifier() (ast.Node, error) {
	ident := p.curToken()
	p.nextToken()

	switch {
	case p.curTokenIs(token.LPAREN) && p.builtins.IsBuiltin(ident.Literal):
		return p.parseCallExpression(ident)

	case p.curTokenIs(token.LBRACKET):
		p.nextToken()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBRACKET, "']'"); err != nil {
			return nil, err
		}

		if !p.curTokenIs(token.ASSIGN) {
			return &ast.IndexExpression{Token: ident, Name: ident.Literal, Index: index}, nil
		}

		p.nextToken()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.IndexAssign{Token: ident, Name: ident.Literal, Index: index, Value: value}, nil

	case p.curTokenIs(token.ASSIGN):
		p.nextToken()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpression{Token: ident, Name: ident.Literal, Value: value}, nil
	}

	return &ast.Identifier{Token: ident, Value: ident.Literal}, nil
}

// name(arg, arg), the commas are optional
func (p *Parser) parseCallExpression(ident token.Token) (ast.Node, error) {
	cmd := &ast.BuiltinCommand{Token: ident, Name: ident.Literal, Call: true}
	p.nextToken()

	args, err := p.parseList(token.RPAREN, "')'")
	if err != nil {
		return nil, err
	}
	cmd.Args = args
	return cmd, nil
}

func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	array := &ast.ArrayLiteral{Token: p.curToken()}
	p.nextToken()

	elems, err := p.parseList(token.RBRACE, "'}'")
	if err != nil {
		return nil, err
	}
	array.Elements = elems
	return array, nil
}

// [size]
func (p *Parser) parseEmptyArray() (ast.Node, error) {
	array := &ast.EmptyArray{Token: p.curToken()}
	p.nextToken()

	size, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	array.Size = size

	if err := p.expect(token.RBRACKET, "']'"); err != nil {
		return nil, err
	}
	return array, nil
}

func (p *Parser) parseGroupedExpression() (ast.Node, error) {
	p.nextToken()

	exp, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return exp, nil
}
