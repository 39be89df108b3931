package builtins

import (
	"image"

	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/object"
	"github.com/navionguy/koneko/palette"
)

// Color accepts a palette index or a color name
func Color(obj object.Object) (uint8, error) {
	switch c := obj.(type) {
	case *object.Integer:
		if !palette.Valid(c.Value) {
			return 0, berrors.New(berrors.RangeError, "Color %d is not in the palette", c.Value)
		}
		return uint8(c.Value), nil
	case *object.String:
		idx, ok := palette.Lookup(c.Value)
		if !ok {
			return 0, berrors.New(berrors.RangeError, "Unknown color %s", c.Value)
		}
		return idx, nil
	}

	return 0, berrors.New(berrors.TypeError, "Expected color, got %s", object.ToString(obj, true))
}

// Point converts a two element array {x, y}
func Point(obj object.Object) (image.Point, error) {
	arr, ok := obj.(*object.Array)
	if !ok || len(arr.Elements) != 2 {
		return image.Point{}, berrors.New(berrors.TypeError, "Expected array of length 2, got %s", object.ToString(obj, true))
	}

	x, err := object.ToInteger(arr.Elements[0])
	if err != nil {
		return image.Point{}, err
	}
	y, err := object.ToInteger(arr.Elements[1])
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(int(x), int(y)), nil
}

// Polygon sorts out the two ways of passing vertices.
// poly {{x, y}, {x, y}, {x, y}} color hands over a list of points,
// poly {x, y} {x, y} {x, y} color passes each point on its own.
func Polygon(args []object.Object) ([]image.Point, uint8, error) {
	if len(args) == 2 {
		if list, ok := args[0].(*object.Array); ok && len(list.Elements) > 2 {
			return pointsAndColor(list.Elements, args[1])
		}
	}

	if len(args) < 4 {
		return nil, 0, berrors.New(berrors.ParseError, "Expected at least 4 arguments, got %d", len(args))
	}
	return pointsAndColor(args[:len(args)-1], args[len(args)-1])
}

func pointsAndColor(vertices []object.Object, clr object.Object) ([]image.Point, uint8, error) {
	points := make([]image.Point, 0, len(vertices))
	for _, v := range vertices {
		pt, err := Point(v)
		if err != nil {
			return nil, 0, err
		}
		points = append(points, pt)
	}

	c, err := Color(clr)
	if err != nil {
		return nil, 0, err
	}
	return points, c, nil
}
