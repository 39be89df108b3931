package highlight

import (
	"testing"

	"github.com/navionguy/koneko/palette"
	"github.com/navionguy/koneko/parser"
	"github.com/navionguy/koneko/token"
	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	reg := parser.Names("print")

	tests := []struct {
		tok token.Token
		exp uint8
	}{
		{tok: token.Token{Type: token.INT, Literal: "10"}, exp: palette.Orange},
		{tok: token.Token{Type: token.FLOAT, Literal: "1.5"}, exp: palette.Orange},
		{tok: token.Token{Type: token.STRING, Literal: "hi"}, exp: palette.LightGreen},
		{tok: token.Token{Type: token.IDENT, Literal: "print"}, exp: palette.Red},
		{tok: token.Token{Type: token.IDENT, Literal: "for"}, exp: palette.Red},
		{tok: token.Token{Type: token.IDENT, Literal: "if"}, exp: palette.Red},
		{tok: token.Token{Type: token.TO, Literal: "to"}, exp: palette.Red},
		{tok: token.Token{Type: token.IDENT, Literal: "x"}, exp: palette.Yellow},
		{tok: token.Token{Type: token.ASSIGN, Literal: "="}, exp: palette.Aqua},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Color(tt.tok, reg), "token %s", tt.tok.Literal)
	}
}

func TestHighlight(t *testing.T) {
	reg := parser.Names("print")

	tests := []struct {
		src string
		exp string
	}{
		{src: `10 print "hi"`, exp: "`310`r `2print`r `5\"hi\"`r"},
		{src: "x = 1", exp: "`4x`r `b=`r `31`r"},
		{src: "for i=1 to 2", exp: "`2for`r `4i`r`b=`r`31`r `2to`r `32`r"},
		{src: `print "open`, exp: "`2print`r `5\"open`r"},
		{src: "x # 1", exp: "`4x`r # 1"},
		{src: "", exp: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Highlight(tt.src, reg), "Highlight(%s)", tt.src)
	}
}

func TestHighlightNilRegistry(t *testing.T) {
	assert.Equal(t, "`4print`r", Highlight("print", nil))
}
