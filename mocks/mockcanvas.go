package mocks

import (
	"fmt"
	"image"
)

// MockCanvas records each drawing call as a line of text
type MockCanvas struct {
	Calls   []string
	PolyErr error // returned from the polygon calls
}

func (mc *MockCanvas) Clear(color uint8) {
	mc.Calls = append(mc.Calls, fmt.Sprintf("clear %d", color))
}

func (mc *MockCanvas) Pixel(x, y int, color uint8) {
	mc.Calls = append(mc.Calls, fmt.Sprintf("pixel %d %d %d", x, y, color))
}

func (mc *MockCanvas) Line(p1, p2 image.Point, color uint8) {
	mc.Calls = append(mc.Calls, fmt.Sprintf("line %v %v %d", p1, p2, color))
}

func (mc *MockCanvas) FilledPolygon(points []image.Point, color uint8) error {
	mc.Calls = append(mc.Calls, fmt.Sprintf("poly %v %d", points, color))
	return mc.PolyErr
}

func (mc *MockCanvas) OutlinePolygon(points []image.Point, color uint8) error {
	mc.Calls = append(mc.Calls, fmt.Sprintf("rim %v %d", points, color))
	return mc.PolyErr
}

func (mc *MockCanvas) Text(s string, x, y int, color uint8, shadow, background *uint8) {
	call := fmt.Sprintf("text %q %d %d %d", s, x, y, color)
	if shadow != nil {
		call += fmt.Sprintf(" shadow %d", *shadow)
	}
	if background != nil {
		call += fmt.Sprintf(" background %d", *background)
	}
	mc.Calls = append(mc.Calls, call)
}

// Last returns the most recent call, empty if nothing was drawn
func (mc *MockCanvas) Last() string {
	if len(mc.Calls) == 0 {
		return ""
	}
	return mc.Calls[len(mc.Calls)-1]
}
