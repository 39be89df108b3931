package canvas

import (
	"image"
	"sync"

	"github.com/navionguy/koneko/object"
	"github.com/navionguy/koneko/palette"
)

// Console prints lines of text onto a Screen, scrolling once it is full.
// Lines are also passed on to Next when one is set.
type Console struct {
	mu     sync.Mutex
	screen *Screen
	lines  []string
	Next   object.Console
}

// NewConsole prints on scr
func NewConsole(scr *Screen, next object.Console) *Console {
	return &Console{screen: scr, Next: next}
}

// Println adds one line at the bottom
func (c *Console) Println(s string) {
	c.mu.Lock()
	if len(c.lines) < TextLines {
		c.lines = append(c.lines, s)
		c.drawLine(len(c.lines) - 1)
	} else {
		c.lines = append(c.lines[1:], s)
		for i := range c.lines {
			c.drawLine(i)
		}
	}
	c.mu.Unlock()

	if c.Next != nil {
		c.Next.Println(s)
	}
}

// Lines returns what is currently on screen, oldest first
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.lines...)
}

// Reset forgets the printed lines, the screen is left alone
func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

func (c *Console) drawLine(i int) {
	y := i*LineHeight + 2
	shadow, background := uint8(palette.DarkGray), uint8(palette.Black)

	c.screen.Fill(image.Rect(0, y-1, Width, y-1+LineHeight), background)
	c.screen.Text(c.lines[i], 2, y, palette.White, &shadow, &background)
}
