// Package highlight wraps each token of a line in color escapes
package highlight

import (
	"strings"

	"github.com/navionguy/koneko/lexer"
	"github.com/navionguy/koneko/palette"
	"github.com/navionguy/koneko/parser"
	"github.com/navionguy/koneko/token"
)

// Color picks the palette entry used for a token
func Color(tok token.Token, reg parser.Registry) uint8 {
	switch tok.Type {
	case token.TO, token.STEP, token.THEN, token.ELSE:
		return palette.Red
	case token.INT, token.FLOAT:
		return palette.Orange
	case token.STRING:
		return palette.LightGreen
	case token.IDENT:
		if tok.Literal == "for" || tok.Literal == "if" || (reg != nil && reg.IsBuiltin(tok.Literal)) {
			return palette.Red
		}
		return palette.Yellow
	}
	return palette.Aqua
}

// Highlight returns src with every token it could lex colored.
// Whatever follows a lexing error is left as it was.
func Highlight(src string, reg parser.Registry) string {
	toks, _ := lexer.New(src).Tokens()

	var out strings.Builder
	last := 0
	for _, tok := range toks {
		if tok.Type == token.EOF || tok.Start < last {
			continue
		}
		end := min(tok.End, len(src)) // unterminated strings run off the end

		out.WriteString(src[last:tok.Start])
		out.WriteString(palette.Code(Color(tok, reg)))
		out.WriteString(src[tok.Start:end])
		out.WriteByte(palette.Escape)
		out.WriteByte(palette.Reset)
		last = end
	}
	out.WriteString(src[last:])

	return out.String()
}
