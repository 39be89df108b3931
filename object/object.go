// Package object how the interpreter holds values during execution
package object

import (
	"math"
	"strconv"
	"strings"

	"github.com/navionguy/koneko/berrors"
)

// ObjectType can always be displayed as a string
type ObjectType string

// Object is a runtime value
type Object interface {
	Type() ObjectType
	Inspect() string
}

const (
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	STRING_OBJ  = "STRING"
	ARRAY_OBJ   = "ARRAY"
	NIL_OBJ     = "NIL"
)

// NIL is the one and only nil value
var NIL = &Nil{}

// Integer is a 64 bit signed value
type Integer struct {
	Value int64
}

// Type returns my type
func (i *Integer) Type() ObjectType { return INTEGER_OBJ }

// Inspect returns my value as a string
func (i *Integer) Inspect() string { return strconv.FormatInt(i.Value, 10) }

// Float is a 64 bit floating value
type Float struct {
	Value float64
}

// Type returns my type
func (f *Float) Type() ObjectType { return FLOAT_OBJ }

// Inspect returns my value as a string
func (f *Float) Inspect() string { return strconv.FormatFloat(f.Value, 'f', -1, 64) }

// String holds a string of bytes
type String struct {
	Value string
}

// Type returns my type
func (s *String) Type() ObjectType { return STRING_OBJ }

// Inspect returns my value
func (s *String) Inspect() string { return s.Value }

// Array is an ordered list of values, they can be of mixed type
type Array struct {
	Elements []Object
}

// Type returns my type
func (ao *Array) Type() ObjectType { return ARRAY_OBJ }

// Inspect returns {a, b, c}
func (ao *Array) Inspect() string { return ToString(ao, true) }

// Nil is the absence of a value
type Nil struct{}

// Type returns my type
func (n *Nil) Type() ObjectType { return NIL_OBJ }

// Inspect returns nil
func (n *Nil) Inspect() string { return "nil" }

// ToString renders a value, delimiters controls the {, } around arrays
func ToString(obj Object, delimiters bool) string {
	arr, ok := obj.(*Array)
	if !ok {
		if obj == nil {
			return NIL.Inspect()
		}
		return obj.Inspect()
	}

	var out strings.Builder
	if delimiters {
		out.WriteString("{")
	}
	for i, el := range arr.Elements {
		out.WriteString(ToString(el, delimiters))
		if delimiters && i != len(arr.Elements)-1 {
			out.WriteString(", ")
		}
	}
	if delimiters {
		out.WriteString("}")
	}
	return out.String()
}

// Truthy decides if a value counts as true
func Truthy(obj Object) bool {
	switch o := obj.(type) {
	case *Integer:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *String:
		return len(o.Value) > 0
	case *Array:
		return len(o.Elements) > 0
	}
	return false
}

// Bool turns a go bool into Integer 1 or 0
func Bool(b bool) *Integer {
	if b {
		return &Integer{Value: 1}
	}
	return &Integer{Value: 0}
}

// Equal is structural equality, values of different kinds are never equal
func Equal(a, b Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}

	switch l := a.(type) {
	case *Integer:
		return l.Value == b.(*Integer).Value
	case *Float:
		return l.Value == b.(*Float).Value
	case *String:
		return l.Value == b.(*String).Value
	case *Array:
		r := b.(*Array)
		if len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !Equal(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	case *Nil:
		return true
	}
	return false
}

// ComparisonValue is the number used by the ordering operators, nil counts as zero
func ComparisonValue(obj Object) (float64, error) {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value), nil
	case *Float:
		return o.Value, nil
	case *Nil:
		return 0, nil
	case *String:
		return 0, berrors.New(berrors.TypeError, "Cannot compare string %q!", o.Value)
	}
	return 0, berrors.New(berrors.TypeError, "Cannot compare array %s!", ToString(obj, true))
}

// ToInteger converts, floats are truncated and strings parsed
func ToInteger(obj Object) (int64, error) {
	switch o := obj.(type) {
	case *Integer:
		return o.Value, nil
	case *Float:
		return int64(o.Value), nil
	case *Nil:
		return 0, nil
	case *String:
		s := strings.TrimSpace(o.Value)
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v, nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return int64(v), nil
		}
		return 0, berrors.New(berrors.TypeError, "Cannot convert string %q to integer!", o.Value)
	}
	return 0, berrors.New(berrors.TypeError, "Cannot convert array %s to integer!", ToString(obj, true))
}

// ToFloat converts, strings are parsed
func ToFloat(obj Object) (float64, error) {
	switch o := obj.(type) {
	case *Integer:
		return float64(o.Value), nil
	case *Float:
		return o.Value, nil
	case *Nil:
		return 0, nil
	case *String:
		v, err := strconv.ParseFloat(strings.TrimSpace(o.Value), 64)
		if err != nil {
			return 0, berrors.New(berrors.TypeError, "Cannot convert string %q to float!", o.Value)
		}
		return v, nil
	}
	return 0, berrors.New(berrors.TypeError, "Cannot convert array %s to float!", ToString(obj, true))
}

// Copy makes a deep copy, only arrays actually need it
func Copy(obj Object) Object {
	switch o := obj.(type) {
	case *Integer:
		return &Integer{Value: o.Value}
	case *Float:
		return &Float{Value: o.Value}
	case *String:
		return &String{Value: o.Value}
	case *Array:
		elems := make([]Object, len(o.Elements))
		for i, el := range o.Elements {
			elems[i] = Copy(el)
		}
		return &Array{Elements: elems}
	}
	return NIL
}
