// Package canvas is the framebuffer behind the drawing commands.
// Every pixel is a Sweetie16 palette index.
package canvas

import (
	"image"
	"image/png"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/palette"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	Width      = 480
	Height     = 300
	LineHeight = 12                  // pixels per line of console text
	TextLines  = Height / LineHeight // console lines that fit on screen
)

// missing glyphs still move the pen
const missingAdvance = 5

// Screen implements object.Canvas.
// The HTTP server reads it while programs draw, so it locks.
type Screen struct {
	mu   sync.Mutex
	img  *image.Paletted
	face font.Face
}

// NewScreen returns a black screen
func NewScreen() *Screen {
	return &Screen{
		img:  image.NewPaletted(image.Rect(0, 0, Width, Height), palette.Sweetie16),
		face: basicfont.Face7x13,
	}
}

// Clear fills the whole screen, colors outside the palette are ignored
func (s *Screen) Clear(color uint8) {
	s.Fill(s.img.Rect, color)
}

// Fill paints a rectangle, clipped to the screen
func (s *Screen) Fill(r image.Rectangle, color uint8) {
	if !palette.Valid(int64(color)) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r = r.Intersect(s.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.img.SetColorIndex(x, y, color)
		}
	}
}

// Pixel sets one dot
func (s *Screen) Pixel(x, y int, color uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pixel(x, y, color)
}

// At returns the palette index at x, y
func (s *Screen) At(x, y int) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.img.ColorIndexAt(x, y)
}

// caller holds the lock
func (s *Screen) pixel(x, y int, color uint8) {
	if !image.Pt(x, y).In(s.img.Rect) || !palette.Valid(int64(color)) {
		return
	}
	s.img.SetColorIndex(x, y, color)
}

// Line is Bresenham's, both ends included
func (s *Screen) Line(p1, p2 image.Point, color uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.line(p1, p2, color)
}

func (s *Screen) line(p1, p2 image.Point, color uint8) {
	p1, p2, ok := clip(p1, p2, s.img.Rect)
	if !ok {
		return
	}

	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	sx, sy := 1, 1
	if p1.X > p2.X {
		sx = -1
	}
	if p1.Y > p2.Y {
		sy = -1
	}

	err := dx - dy
	x, y := p1.X, p1.Y
	for {
		s.pixel(x, y, color)
		if x == p2.X && y == p2.Y {
			return
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// clip cuts a segment down to r grown by one pixel (Liang-Barsky),
// false when none of it is left.  Segments already inside are untouched.
func clip(p1, p2 image.Point, r image.Rectangle) (image.Point, image.Point, bool) {
	r = r.Inset(-1)
	if p1.In(r) && p2.In(r) {
		return p1, p2, true
	}

	x0, y0 := float64(p1.X), float64(p1.Y)
	dx, dy := float64(p2.X)-x0, float64(p2.Y)-y0
	edges := [4][2]float64{
		{-dx, x0 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - x0},
		{-dy, y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - y0},
	}

	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p1, p2, false
			}
			continue
		}

		t := q / p
		if p < 0 {
			if t > t1 {
				return p1, p2, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return p1, p2, false
			}
			t1 = min(t1, t)
		}
	}

	at := func(t float64) image.Point {
		return image.Pt(int(math.Round(x0+t*dx)), int(math.Round(y0+t*dy)))
	}
	return at(t0), at(t1), true
}

func checkVertices(points []image.Point) error {
	if len(points) < 3 {
		return berrors.New(berrors.RangeError, "Polygon must have at least 3 vertices, got %d", len(points))
	}
	return nil
}

// FilledPolygon fills with the even-odd rule.
// Each scanline covers [y, y+1), so the bottom row of a shape stays open.
func (s *Screen) FilledPolygon(points []image.Point, color uint8) error {
	if err := checkVertices(points); err != nil {
		return err
	}

	bounds := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bounds.Min.X = min(bounds.Min.X, p.X)
		bounds.Min.Y = min(bounds.Min.Y, p.Y)
		bounds.Max.X = max(bounds.Max.X, p.X)
		bounds.Max.Y = max(bounds.Max.Y, p.Y)
	}
	bounds = bounds.Intersect(s.img.Rect)

	s.mu.Lock()
	defer s.mu.Unlock()

	var xs []int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		xs = crossings(points, y, xs[:0])
		sort.Ints(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := max(xs[i], 0); x < min(xs[i+1], Width); x++ {
				s.pixel(x, y, color)
			}
		}
	}
	return nil
}

// crossings appends the x of every edge that crosses scanline y,
// held to just outside the screen
func crossings(points []image.Point, y int, xs []int) []int {
	for i, p1 := range points {
		p2 := points[(i+1)%len(points)]
		if p1.Y == p2.Y {
			continue
		}

		lo, hi := min(p1.Y, p2.Y), max(p1.Y, p2.Y)
		if y < lo || y >= hi {
			continue
		}
		dx := math.Trunc((float64(p2.X) - float64(p1.X)) * (float64(y) - float64(p1.Y)) / (float64(p2.Y) - float64(p1.Y)))
		xs = append(xs, int(min(max(float64(p1.X)+dx, -1), Width+1)))
	}
	return xs
}

// OutlinePolygon joins the vertices, closing back to the first
func (s *Screen) OutlinePolygon(points []image.Point, color uint8) error {
	if err := checkVertices(points); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range points {
		s.line(p, points[(i+1)%len(points)], color)
	}
	return nil
}

// Text draws s with its top left at x, y.
// A shadow is drawn first, one pixel down and right, in a single color.
// The background box goes behind whichever pass is drawn first.
func (s *Screen) Text(str string, x, y int, color uint8, shadow, background *uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if shadow != nil {
		s.text(str, x+1, y+1, *shadow, true, background)
		background = nil
	}
	s.text(str, x, y, color, false, background)
}

// TextWidth is how many pixels wide str would be, escapes take no room
func (s *Screen) TextWidth(str string) int {
	width := 0
	forEachGlyph(str, 0, func(r rune, _ uint8) {
		width += s.advance(r)
	})
	return width
}

func (s *Screen) advance(r rune) int {
	adv, ok := s.face.GlyphAdvance(r)
	if !ok {
		return missingAdvance
	}
	return adv.Round()
}

func (s *Screen) text(str string, x, y int, color uint8, single bool, background *uint8) {
	ascent := s.face.Metrics().Ascent.Round()
	height := s.face.Metrics().Height.Round()

	forEachGlyph(str, color, func(r rune, clr uint8) {
		if single {
			clr = color
		}
		adv := s.advance(r)

		if background != nil {
			for j := y - 1; j < y+height; j++ {
				for i := x - 1; i < x+adv; i++ {
					s.pixel(i, j, *background)
				}
			}
		}

		dr, mask, mp, _, ok := s.face.Glyph(fixed.P(x, y+ascent), r)
		if ok {
			for j := dr.Min.Y; j < dr.Max.Y; j++ {
				for i := dr.Min.X; i < dr.Max.X; i++ {
					_, _, _, a := mask.At(mp.X+i-dr.Min.X, mp.Y+j-dr.Min.Y).RGBA()
					if a > 0 {
						s.pixel(i, j, clr)
					}
				}
			}
		}
		x += adv
	})
}

// forEachGlyph strips the color escapes from str, calling draw with
// every remaining rune and the color it should be drawn in.
// An escape followed by anything else swallows just the escape.
func forEachGlyph(str string, color uint8, draw func(r rune, clr uint8)) {
	orig := color
	escaped := false

	for _, r := range str {
		if r == palette.Escape {
			escaped = true
			continue
		}

		if escaped {
			escaped = false
			if idx, ok := palette.HexDigit(r); ok {
				color = idx
				continue
			}
			if r == palette.Reset {
				color = orig
				continue
			}
		}

		draw(r, color)
	}
}

// WritePNG encodes the current screen
func (s *Screen) WritePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return png.Encode(w, s.img)
}

// Snapshot copies the screen
func (s *Screen) Snapshot() *image.Paletted {
	s.mu.Lock()
	defer s.mu.Unlock()

	img := image.NewPaletted(s.img.Rect, s.img.Palette)
	copy(img.Pix, s.img.Pix)
	return img
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
