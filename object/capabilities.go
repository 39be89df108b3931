package object

import (
	"errors"
	"image"
	"time"
)

// Canvas is where drawing commands end up, colors are palette indexes
type Canvas interface {
	// Clear fills the whole screen
	Clear(color uint8)
	// Pixel sets one dot, off screen dots are ignored
	Pixel(x, y int, color uint8)
	// Line draws from p1 to p2 inclusive
	Line(p1, p2 image.Point, color uint8)
	// FilledPolygon does an even-odd fill, it needs at least 3 vertices
	FilledPolygon(points []image.Point, color uint8) error
	// OutlinePolygon draws the closed outline, it needs at least 3 vertices
	OutlinePolygon(points []image.Point, color uint8) error
	// Text draws s with its top left corner at (x, y)
	// shadow and background are optional
	Text(s string, x, y int, color uint8, shadow, background *uint8)
}

// Input supplies key presses
type Input interface {
	// ReadKey removes the oldest key name, false if none are waiting
	ReadKey() (string, bool)
	// BreakCheck returns true if the user asked to stop the program
	BreakCheck() bool
}

// Clock measures and spends time
type Clock interface {
	// Seconds since the program started, monotonic
	Seconds() float64
	// Sleep blocks the caller
	Sleep(time.Duration)
}

// Storage reads and writes program files
type Storage interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	Files() ([]string, error)
}

// Console receives text output
type Console interface {
	Println(string)
}

// ErrNoStorage is returned when no drive has been attached
var ErrNoStorage = errors.New("no storage attached")

type nullCanvas struct{}

func (nullCanvas) Clear(uint8)                                  {}
func (nullCanvas) Pixel(int, int, uint8)                        {}
func (nullCanvas) Line(image.Point, image.Point, uint8)         {}
func (nullCanvas) FilledPolygon([]image.Point, uint8) error     { return nil }
func (nullCanvas) OutlinePolygon([]image.Point, uint8) error    { return nil }
func (nullCanvas) Text(string, int, int, uint8, *uint8, *uint8) {}

type nullInput struct{}

func (nullInput) ReadKey() (string, bool) { return "", false }
func (nullInput) BreakCheck() bool        { return false }

type nullStorage struct{}

func (nullStorage) ReadFile(string) ([]byte, error) { return nil, ErrNoStorage }
func (nullStorage) WriteFile(string, []byte) error  { return ErrNoStorage }
func (nullStorage) Files() ([]string, error)        { return nil, ErrNoStorage }

type nullConsole struct{}

func (nullConsole) Println(string) {}

// SystemClock is the real clock
type SystemClock struct {
	start time.Time
}

// NewSystemClock starts counting from now
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Seconds since the clock was created
func (sc *SystemClock) Seconds() float64 {
	return time.Since(sc.start).Seconds()
}

// Sleep blocks for d
func (sc *SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
