package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"

	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/mocks"
	"github.com/navionguy/koneko/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// count how many pixels in r hold color
func count(scr *Screen, r image.Rectangle, color uint8) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if scr.At(x, y) == color {
				n++
			}
		}
	}
	return n
}

func TestClearAndPixel(t *testing.T) {
	scr := NewScreen()
	full := image.Rect(0, 0, Width, Height)

	assert.Equal(t, Width*Height, count(scr, full, palette.Black))

	scr.Clear(palette.DarkBlue)
	assert.Equal(t, Width*Height, count(scr, full, palette.DarkBlue))

	scr.Clear(16)
	assert.Equal(t, Width*Height, count(scr, full, palette.DarkBlue), "bad colors are ignored")

	scr.Pixel(3, 4, palette.Yellow)
	scr.Pixel(-1, 4, palette.Yellow)
	scr.Pixel(Width, 0, palette.Yellow)
	scr.Pixel(0, Height, palette.Yellow)
	scr.Pixel(5, 5, 200)
	assert.Equal(t, palette.Yellow, scr.At(3, 4))
	assert.Equal(t, 1, count(scr, full, palette.Yellow))
	assert.Equal(t, palette.DarkBlue, scr.At(5, 5))
}

func TestLine(t *testing.T) {
	tests := []struct {
		p1, p2 image.Point
		set    []image.Point
	}{
		{p1: image.Pt(0, 0), p2: image.Pt(4, 0), set: []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{p1: image.Pt(3, 3), p2: image.Pt(0, 0), set: []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{p1: image.Pt(2, 0), p2: image.Pt(2, 3), set: []image.Point{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
		{p1: image.Pt(7, 7), p2: image.Pt(7, 7), set: []image.Point{{7, 7}}},
		{p1: image.Pt(-2, 0), p2: image.Pt(1, 0), set: []image.Point{{0, 0}, {1, 0}}},
	}

	for _, tt := range tests {
		scr := NewScreen()
		scr.Line(tt.p1, tt.p2, palette.White)

		for _, p := range tt.set {
			assert.Equal(t, palette.White, scr.At(p.X, p.Y), "line %v %v at %v", tt.p1, tt.p2, p)
		}
		assert.Equal(t, len(tt.set), count(scr, image.Rect(0, 0, 20, 20), palette.White), "line %v %v", tt.p1, tt.p2)
	}
}

func TestFilledPolygon(t *testing.T) {
	scr := NewScreen()

	err := scr.FilledPolygon([]image.Point{{0, 0}, {10, 0}, {0, 10}}, palette.Red)
	require.NoError(t, err)

	tests := []struct {
		p   image.Point
		exp uint8
	}{
		{p: image.Pt(0, 0), exp: palette.Red},
		{p: image.Pt(9, 0), exp: palette.Red},
		{p: image.Pt(10, 0), exp: palette.Black},
		{p: image.Pt(2, 5), exp: palette.Red},
		{p: image.Pt(4, 5), exp: palette.Red},
		{p: image.Pt(5, 5), exp: palette.Black},
		{p: image.Pt(7, 5), exp: palette.Black},
		{p: image.Pt(0, 10), exp: palette.Black},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, scr.At(tt.p.X, tt.p.Y), "pixel %v", tt.p)
	}
}

func TestFarOffScreen(t *testing.T) {
	far := 1 << 40
	row := func(y int) image.Rectangle { return image.Rect(0, y, Width, y+1) }

	scr := NewScreen()
	scr.Line(image.Pt(0, 0), image.Pt(far, 0), palette.White)
	assert.Equal(t, Width, count(scr, row(0), palette.White))
	assert.Equal(t, 0, count(scr, row(1), palette.White))

	scr.Line(image.Pt(far, 5), image.Pt(-far, 5), palette.Red)
	assert.Equal(t, Width, count(scr, row(5), palette.Red))

	scr.Line(image.Pt(-far, -5), image.Pt(far, -5), palette.DeepBlue)
	scr.Line(image.Pt(-far, far), image.Pt(far, far), palette.DeepBlue)
	assert.Equal(t, 0, count(scr, scr.img.Rect, palette.DeepBlue), "lines off the screen draw nothing")

	scr = NewScreen()
	err := scr.FilledPolygon([]image.Point{{-far, 0}, {far, 0}, {0, 200}}, palette.DarkGreen)
	require.NoError(t, err)
	assert.Equal(t, Width, count(scr, row(0), palette.DarkGreen))
	assert.Equal(t, Width, count(scr, row(199), palette.DarkGreen))
	assert.Equal(t, 0, count(scr, row(200), palette.DarkGreen))

	scr = NewScreen()
	err = scr.OutlinePolygon([]image.Point{{-far, 10}, {far, 10}, {0, far}}, palette.Yellow)
	require.NoError(t, err)
	assert.Equal(t, Width, count(scr, row(10), palette.Yellow))
}

func TestFilledPolygonEvenOdd(t *testing.T) {
	scr := NewScreen()

	// a square traced twice around leaves nothing filled
	sq := []image.Point{{0, 0}, {8, 0}, {8, 8}, {0, 8}}
	err := scr.FilledPolygon(append(sq, sq...), palette.Red)
	require.NoError(t, err)
	assert.Equal(t, palette.Black, scr.At(4, 4))

	err = scr.FilledPolygon(sq, palette.Red)
	require.NoError(t, err)
	assert.Equal(t, 64, count(scr, image.Rect(0, 0, 20, 20), palette.Red))
}

func TestPolygonErrors(t *testing.T) {
	scr := NewScreen()

	err := scr.FilledPolygon([]image.Point{{0, 0}, {1, 1}}, palette.Red)
	require.Error(t, err)
	assert.Equal(t, berrors.RangeError, berrors.KindOf(err))
	assert.Equal(t, "RangeError: Polygon must have at least 3 vertices, got 2", err.Error())

	err = scr.OutlinePolygon(nil, palette.Red)
	assert.Equal(t, "RangeError: Polygon must have at least 3 vertices, got 0", err.Error())
}

func TestOutlinePolygon(t *testing.T) {
	scr := NewScreen()

	err := scr.OutlinePolygon([]image.Point{{1, 1}, {5, 1}, {5, 5}, {1, 5}}, palette.Aqua)
	require.NoError(t, err)

	assert.Equal(t, 16, count(scr, image.Rect(0, 0, 10, 10), palette.Aqua))
	assert.Equal(t, palette.Aqua, scr.At(1, 3), "closing edge")
	assert.Equal(t, palette.Black, scr.At(3, 3))
}

func TestText(t *testing.T) {
	glyph := image.Rect(0, 0, 7, 13)

	scr := NewScreen()
	scr.Text("A", 0, 0, palette.White, nil, nil)
	assert.Greater(t, count(scr, glyph, palette.White), 0)

	// escapes change the color and take no room
	scr = NewScreen()
	scr.Text("`2A`rA", 0, 0, palette.White, nil, nil)
	assert.Greater(t, count(scr, glyph, palette.Red), 0)
	assert.Equal(t, 0, count(scr, glyph, palette.White))
	assert.Greater(t, count(scr, glyph.Add(image.Pt(7, 0)), palette.White), 0)

	// the shadow ignores escapes
	scr = NewScreen()
	scr.Text("`2A", 10, 10, palette.White, ptr(palette.DarkGray), nil)
	assert.Greater(t, count(scr, image.Rect(10, 10, 20, 25), palette.DarkGray), 0)
	assert.Greater(t, count(scr, image.Rect(10, 10, 20, 25), palette.Red), 0)

	// a space only shows its background
	scr = NewScreen()
	scr.Text(" ", 10, 10, palette.White, nil, ptr(palette.DarkBlue))
	assert.Equal(t, palette.DarkBlue, scr.At(9, 9))
	assert.Equal(t, palette.DarkBlue, scr.At(16, 22))
	assert.Equal(t, palette.Black, scr.At(17, 10))
}

func TestTextWidth(t *testing.T) {
	scr := NewScreen()

	tests := []struct {
		inp string
		exp int
	}{
		{inp: "", exp: 0},
		{inp: "ab", exp: 14},
		{inp: "`3ab`r", exp: 14},
		{inp: "`zA", exp: 14},
		{inp: "`", exp: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, scr.TextWidth(tt.inp), "TextWidth(%s)", tt.inp)
	}
}

func TestWritePNG(t *testing.T) {
	scr := NewScreen()
	scr.Pixel(1, 1, palette.Orange)

	var buf bytes.Buffer
	require.NoError(t, scr.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, Width, Height), img.Bounds())
	assert.Equal(t, palette.Sweetie16[palette.Orange], img.At(1, 1))
}

func TestSnapshot(t *testing.T) {
	scr := NewScreen()
	scr.Pixel(0, 0, palette.Teal)

	snap := scr.Snapshot()
	scr.Pixel(0, 0, palette.White)

	assert.Equal(t, palette.Teal, snap.ColorIndexAt(0, 0))
	assert.Equal(t, palette.White, scr.At(0, 0))
}

func TestConsole(t *testing.T) {
	scr := NewScreen()
	term := &mocks.MockTerm{}
	con := NewConsole(scr, term)

	con.Println("hello")
	assert.Equal(t, []string{"hello"}, con.Lines())
	assert.Equal(t, []string{"hello"}, term.Lines)
	assert.Greater(t, count(scr, image.Rect(0, 0, Width, LineHeight+2), palette.White), 0)

	for i := 1; i <= TextLines; i++ {
		con.Println(fmt.Sprintf("line %d", i))
	}

	lines := con.Lines()
	require.Len(t, lines, TextLines)
	assert.Equal(t, "line 1", lines[0])
	assert.Equal(t, fmt.Sprintf("line %d", TextLines), lines[TextLines-1])
	assert.Len(t, term.Lines, TextLines+1)

	con.Reset()
	assert.Empty(t, con.Lines())
}

func ptr(v uint8) *uint8 {
	return &v
}
