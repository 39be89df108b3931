// Package palette holds the Sweetie 16 colors used by the screen
package palette

import (
	"image/color"
)

// palette indexes
const (
	Black uint8 = iota
	Purple
	Red
	Orange
	Yellow
	LightGreen
	DarkGreen
	Teal
	DeepBlue
	DarkBlue
	LightBlue
	Aqua
	White
	LightGray
	MediumGray
	DarkGray
)

// Escape starts an inline color change in text, `3 switches to orange, `r resets
const (
	Escape = '`'
	Reset  = 'r'
)

// Sweetie16 maps each index to its RGBA value
var Sweetie16 = color.Palette{
	rgba(0x1a1c2cff),
	rgba(0x5d275dff),
	rgba(0xb13e53ff),
	rgba(0xef7d57ff),
	rgba(0xffcd75ff),
	rgba(0xa7f070ff),
	rgba(0x38b764ff),
	rgba(0x257179ff),
	rgba(0x29366fff),
	rgba(0x3b5dc9ff),
	rgba(0x41a6f6ff),
	rgba(0x73eff7ff),
	rgba(0xf4f4f4ff),
	rgba(0x94b0c2ff),
	rgba(0x566c86ff),
	rgba(0x333c57ff),
}

var names = map[string]uint8{
	"black":       Black,
	"blk":         Black,
	"purple":      Purple,
	"pur":         Purple,
	"red":         Red,
	"pink":        Red,
	"orange":      Orange,
	"org":         Orange,
	"yellow":      Yellow,
	"yel":         Yellow,
	"light_green": LightGreen,
	"green":       DarkGreen,
	"grn":         DarkGreen,
	"teal":        Teal,
	"deep_blue":   DeepBlue,
	"blue":        DarkBlue,
	"blu":         DarkBlue,
	"light_blue":  LightBlue,
	"aqua":        Aqua,
	"white":       White,
	"wht":         White,
	"light_gray":  LightGray,
	"medium_gray": MediumGray,
	"dark_gray":   DarkGray,
}

// Lookup finds a color by name
func Lookup(name string) (uint8, bool) {
	c, ok := names[name]
	return c, ok
}

// Valid reports if idx is a palette entry
func Valid(idx int64) bool {
	return idx >= 0 && idx < int64(len(Sweetie16))
}

// HexDigit decodes the character following an Escape
func HexDigit(ch rune) (uint8, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return uint8(ch - '0'), true
	case 'a' <= ch && ch <= 'f':
		return uint8(ch-'a') + 10, true
	case 'A' <= ch && ch <= 'F':
		return uint8(ch-'A') + 10, true
	}
	return 0, false
}

// Code builds the escape sequence that selects idx
func Code(idx uint8) string {
	return string([]byte{Escape, "0123456789abcdef"[idx&0x0f]})
}

func rgba(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 24), G: uint8(hex >> 16), B: uint8(hex >> 8), A: uint8(hex)}
}
