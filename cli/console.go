package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/navionguy/koneko/palette"
	"golang.org/x/term"
)

const ansiReset = "\x1b[0m"

// Console writes lines to a terminal, it implements object.Console
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewConsole writes to out, color escapes become ANSI colors when color is set
// and are dropped when it isn't
func NewConsole(out io.Writer, color bool) *Console {
	return &Console{out: out, color: color}
}

// Println writes one line
func (c *Console) Println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.out, Render(s, c.color))
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render converts the inline color escapes
func Render(s string, color bool) string {
	var out strings.Builder
	escaped, colored := false, false

	for _, r := range s {
		if r == palette.Escape {
			escaped = true
			continue
		}

		if escaped {
			escaped = false
			if idx, ok := palette.HexDigit(r); ok {
				if color {
					out.WriteString(ansiColor(idx))
					colored = true
				}
				continue
			}
			if r == palette.Reset {
				if color && colored {
					out.WriteString(ansiReset)
					colored = false
				}
				continue
			}
		}
		out.WriteRune(r)
	}

	if colored {
		out.WriteString(ansiReset)
	}
	return out.String()
}

// 24 bit foreground color for a palette entry
func ansiColor(idx uint8) string {
	r, g, b, _ := palette.Sweetie16[idx].RGBA()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r>>8, g>>8, b>>8)
}
