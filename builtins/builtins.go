// Package builtins holds the commands that only need their arguments' values
package builtins

import (
	"math"
	"time"

	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/object"
)

// BuiltinFunction gets the already evaluated arguments
type BuiltinFunction func(env *object.Environment, args ...object.Object) (object.Object, error)

// Builtin is one entry in the command table
type Builtin struct {
	Fn BuiltinFunction
}

// Builtins maps each command name to its handler
var Builtins = map[string]*Builtin{
	"sin": { // sine of radians
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return trig(math.Sin, args)
		},
	},

	"cos": { // cosine of radians
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			return trig(math.Cos, args)
		},
	},

	"rad": { // degrees to radians
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			v, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Float{Value: v * math.Pi / 180}, nil
		},
	},

	"deg": { // radians to degrees
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			v, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Float{Value: v * 180 / math.Pi}, nil
		},
	},

	"str": { // render anything as a string
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			return &object.String{Value: object.ToString(args[0], false)}, nil
		},
	},

	"int": { // convert to an integer, floats truncate
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			v, err := object.ToInteger(args[0])
			if err != nil {
				return nil, err
			}
			return &object.Integer{Value: v}, nil
		},
	},

	"chr": { // character for a code
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			code, ok := args[0].(*object.Integer)
			if !ok {
				return nil, berrors.New(berrors.TypeError, "Expected integer, got %s", object.ToString(args[0], true))
			}
			if code.Value < 0 || code.Value > 255 {
				return nil, berrors.New(berrors.RangeError, "Character code %d out of range", code.Value)
			}
			return &object.String{Value: string(rune(code.Value))}, nil
		},
	},

	"rnd": { // random float in [min, max)
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 2); err != nil {
				return nil, err
			}
			min, err := object.ToFloat(args[0])
			if err != nil {
				return nil, err
			}
			max, err := object.ToFloat(args[1])
			if err != nil {
				return nil, err
			}
			if min >= max {
				return nil, berrors.New(berrors.RangeError, "Invalid range %s to %s", args[0].Inspect(), args[1].Inspect())
			}
			return &object.Float{Value: env.Random(min, max)}, nil
		},
	},

	"time": { // seconds since the session started
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 0); err != nil {
				return nil, err
			}
			return &object.Float{Value: env.Clock().Seconds()}, nil
		},
	},

	"delay": { // block for a number of milliseconds
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			ms, err := object.ToInteger(args[0])
			if err != nil {
				return nil, err
			}
			if ms > 0 {
				env.Clock().Sleep(time.Duration(ms) * time.Millisecond)
			}
			return object.NIL, nil
		},
	},

	"refresh": { // end the current batch so the host can draw
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 0); err != nil {
				return nil, err
			}
			env.SetRefresh(true)
			return object.NIL, nil
		},
	},

	"print": {
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 1); err != nil {
				return nil, err
			}
			env.Terminal().Println(object.ToString(args[0], true))
			return object.NIL, nil
		},
	},

	"inkey$": { // next waiting key, nil when there isn't one
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 0); err != nil {
				return nil, err
			}
			key, ok := env.Input().ReadKey()
			if !ok {
				return object.NIL, nil
			}
			return &object.String{Value: key}, nil
		},
	},

	"cls": { // clear the screen, black unless told otherwise
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if len(args) > 1 {
				return nil, berrors.New(berrors.ParseError, "Expected 0 or 1 arguments, got %d", len(args))
			}

			var clr uint8
			if len(args) == 1 {
				var err error
				if clr, err = Color(args[0]); err != nil {
					return nil, err
				}
			}
			env.Canvas().Clear(clr)
			return object.NIL, nil
		},
	},

	"dot": { // dot x y color
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 3); err != nil {
				return nil, err
			}
			x, err := object.ToInteger(args[0])
			if err != nil {
				return nil, err
			}
			y, err := object.ToInteger(args[1])
			if err != nil {
				return nil, err
			}
			clr, err := Color(args[2])
			if err != nil {
				return nil, err
			}
			env.Canvas().Pixel(int(x), int(y), clr)
			return object.NIL, nil
		},
	},

	"line": { // line {x, y} {x, y} color
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if err := expectArgs(args, 3); err != nil {
				return nil, err
			}
			p1, err := Point(args[0])
			if err != nil {
				return nil, err
			}
			p2, err := Point(args[1])
			if err != nil {
				return nil, err
			}
			clr, err := Color(args[2])
			if err != nil {
				return nil, err
			}
			env.Canvas().Line(p1, p2, clr)
			return object.NIL, nil
		},
	},

	"poly": { // filled polygon
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			points, clr, err := Polygon(args)
			if err != nil {
				return nil, err
			}
			if err := env.Canvas().FilledPolygon(points, clr); err != nil {
				return nil, canvasError(err)
			}
			return object.NIL, nil
		},
	},

	"rim": { // polygon outline
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			points, clr, err := Polygon(args)
			if err != nil {
				return nil, err
			}
			if err := env.Canvas().OutlinePolygon(points, clr); err != nil {
				return nil, canvasError(err)
			}
			return object.NIL, nil
		},
	},

	"text": { // text s x y color [shadow [background]]
		Fn: func(env *object.Environment, args ...object.Object) (object.Object, error) {
			if len(args) < 4 || len(args) > 6 {
				return nil, berrors.New(berrors.ParseError, "Expected 4 to 6 arguments, got %d", len(args))
			}

			x, err := object.ToInteger(args[1])
			if err != nil {
				return nil, err
			}
			y, err := object.ToInteger(args[2])
			if err != nil {
				return nil, err
			}
			clr, err := Color(args[3])
			if err != nil {
				return nil, err
			}

			var optional [2]*uint8
			for i, arg := range args[4:] {
				c, err := Color(arg)
				if err != nil {
					return nil, err
				}
				optional[i] = &c
			}

			env.Canvas().Text(object.ToString(args[0], false), int(x), int(y), clr, optional[0], optional[1])
			return object.NIL, nil
		},
	},
}

// Lookup finds the handler for name
func Lookup(name string) (*Builtin, bool) {
	bi, ok := Builtins[name]
	return bi, ok
}

func expectArgs(args []object.Object, n int) error {
	if len(args) != n {
		return berrors.New(berrors.ParseError, "Expected %d arguments, got %d", n, len(args))
	}
	return nil
}

func trig(fn func(float64) float64, args []object.Object) (object.Object, error) {
	if err := expectArgs(args, 1); err != nil {
		return nil, err
	}

	switch arg := args[0].(type) {
	case *object.Integer:
		return &object.Float{Value: fn(float64(arg.Value))}, nil
	case *object.Float:
		return &object.Float{Value: fn(arg.Value)}, nil
	}
	return nil, berrors.New(berrors.TypeError, "Expected integer or float, got %s", object.ToString(args[0], true))
}

func canvasError(err error) error {
	if berrors.KindOf(err) != 0 {
		return err
	}
	return berrors.New(berrors.RangeError, "%s", err.Error())
}
