package lexer

import (
	"math"

	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/token"
)

//Lexer a lexical analyzer instance, it works one source line at a time
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	err          error
}

//New create a new lexer object
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

//NextToken scans for the next token
// an unknown character comes back as ILLEGAL and Err() explains why
func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	start := l.position

	switch l.ch {
	case '=':
		tok = l.pairOrSingle('=', token.EQ, token.ASSIGN)
	case '<':
		switch l.peekChar() {
		case '>':
			tok = l.pair(token.NOT_EQ)
		case '=':
			tok = l.pair(token.LTE)
		default:
			tok = newToken(token.LT, l.ch)
		}
	case '>':
		tok = l.pairOrSingle('=', token.GTE, token.GT)
	case '(':
		tok = newToken(token.LPAREN, l.ch)
	case ')':
		tok = newToken(token.RPAREN, l.ch)
	case '[':
		tok = newToken(token.LBRACKET, l.ch)
	case ']':
		tok = newToken(token.RBRACKET, l.ch)
	case '{':
		tok = newToken(token.LBRACE, l.ch)
	case '}':
		tok = newToken(token.RBRACE, l.ch)
	case '+':
		tok = newToken(token.PLUS, l.ch)
	case '-':
		tok = newToken(token.MINUS, l.ch)
	case '*':
		tok = newToken(token.ASTERISK, l.ch)
	case '/':
		tok = newToken(token.SLASH, l.ch)
	case '%':
		tok = newToken(token.PERCENT, l.ch)
	case '|':
		tok = newToken(token.PIPE, l.ch)
	case '&':
		tok = newToken(token.AMPERSAND, l.ch)
	case '!':
		tok = newToken(token.BANG, l.ch)
	case ',':
		tok = newToken(token.COMMA, l.ch)
	case '"':
		tok = token.Token{Type: token.STRING, Literal: l.readString()}
	case 0:
		if l.position >= len(l.input) {
			return token.Token{Type: token.EOF, Literal: token.EOF, Start: start, End: start}
		}
		tok = l.illegal()
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Start, tok.End = start, l.position
			return tok
		} else if isDigit(l.ch) {
			tok = l.readNumber()
			tok.Start, tok.End = start, l.position
			return tok
		}
		tok = l.illegal()
	}

	l.readChar()
	tok.Start, tok.End = start, l.position
	return tok
}

// Err reports the first lexing failure
func (l *Lexer) Err() error {
	return l.err
}

// Tokens scans the whole line, stopping at the first bad character.
// The tokens read before the failure come back with the error.
func (l *Lexer) Tokens() ([]token.Token, error) {
	toks := []token.Token{}
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		if l.err != nil {
			return toks, l.err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Lex tokenizes one line of source
func Lex(input string) ([]token.Token, error) {
	return New(input).Tokens()
}

func (l *Lexer) illegal() token.Token {
	if l.err == nil {
		l.err = berrors.New(berrors.LexError, "Unknown token: %c", l.ch)
	}
	return newToken(token.ILLEGAL, l.ch)
}

func (l *Lexer) pair(tt token.TokenType) token.Token {
	ch := l.ch
	l.readChar()
	return token.Token{Type: tt, Literal: string(ch) + string(l.ch)}
}

func (l *Lexer) pairOrSingle(next byte, double, single token.TokenType) token.Token {
	if l.peekChar() == next {
		return l.pair(double)
	}
	return newToken(single, l.ch)
}

// identifiers may carry one trailing $ or % sigil
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '$' || l.ch == '%' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// no escapes, a missing close quote runs to the end of the line
func (l *Lexer) readString() string {
	position := l.position + 1
	for {
		l.readChar()
		if l.ch == '"' || l.position >= len(l.input) {
			break
		}
	}

	return l.input[position:l.position]
}

// reads a numeric value by accumulating its digits
// a '.' switches over to a FLOAT
func (l *Lexer) readNumber() token.Token {
	position := l.position
	var value int64
	overflow := false

	for isDigit(l.ch) {
		d := int64(l.ch - '0')
		if value > (math.MaxInt64-d)/10 {
			overflow = true
		}
		value = value*10 + d
		l.readChar()
	}

	if l.ch != '.' {
		tok := token.Token{Type: token.INT, Literal: l.input[position:l.position], IntValue: value}
		if overflow && l.err == nil {
			l.err = berrors.New(berrors.LexError, "Integer literal %s is too large", tok.Literal)
			tok.Type = token.ILLEGAL
		}
		return tok
	}

	l.readChar()
	frac, div := 0.0, 1.0
	for isDigit(l.ch) {
		frac = frac*10 + float64(l.ch-'0')
		div *= 10
		l.readChar()
	}

	whole := float64(value)
	if overflow {
		whole = 0
		for _, c := range l.input[position:] {
			if c < '0' || c > '9' {
				break
			}
			whole = whole*10 + float64(c-'0')
		}
	}

	return token.Token{Type: token.FLOAT, Literal: l.input[position:l.position], FloatValue: whole + frac/div}
}

//peekChar - take a look at, but don't consume the next character
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}

	return l.input[l.readPosition]
}

func newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch)}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}
