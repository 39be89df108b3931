package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // x, name$, count%, ...
	INT    = "INT"    // 1234
	FLOAT  = "FLOAT"  // 12.5
	STRING = "STRING" // "A string literal"

	// Operators
	ASSIGN    = "="
	PLUS      = "+"
	MINUS     = "-"
	BANG      = "!"
	ASTERISK  = "*"
	SLASH     = "/"
	PERCENT   = "%"
	PIPE      = "|"
	AMPERSAND = "&"

	LT = "<"
	GT = ">"

	EQ     = "=="
	NOT_EQ = "<>"
	GTE    = ">="
	LTE    = "<="

	// Delimiters
	COMMA = ","

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	TO   = "TO"
	STEP = "STEP"
	THEN = "THEN"
	ELSE = "ELSE"
)

// Token is one lexeme, Start and End are byte offsets into the source line
type Token struct {
	Type    TokenType
	Literal string

	IntValue   int64
	FloatValue float64

	Start int
	End   int
}

var keywords = map[string]TokenType{
	"to":   TO,
	"step": STEP,
	"then": THEN,
	"else": ELSE,
}

// LookupIdent decides if ident is a keyword, names are case sensitive
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
