package evaluator

import (
	"math"

	"github.com/navionguy/koneko/ast"
	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/builtins"
	"github.com/navionguy/koneko/object"
)

// comparisons closer than this count as equal for <= and >=
const epsilon = 0.0000001

// Eval returns the object at a node
func Eval(node ast.Node, env *object.Environment) (object.Object, error) {
	switch node := node.(type) {
	// Statements
	case *ast.ForStatement:
		return evalForStatement(node, env)

	case *ast.IfExpression:
		return evalIfExpression(node, env)

	case *ast.EndStatement:
		return evalEndStatement(env)

	case *ast.BuiltinCommand:
		return evalBuiltinCommand(node, env)

	case *ast.AssignExpression:
		val, err := Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		env.Set(node.Name, val)
		return object.Copy(val), nil

	case *ast.IndexAssign:
		return evalIndexAssign(node, env)

	// Expressions
	case *ast.IntegerLiteral:
		return &object.Integer{Value: node.Value}, nil

	case *ast.FloatLiteral:
		return &object.Float{Value: node.Value}, nil

	case *ast.StringLiteral:
		return &object.String{Value: node.Value}, nil

	case *ast.NilLiteral:
		return object.NIL, nil

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.ArrayLiteral:
		elems, err := evalExpressions(node.Elements, env)
		if err != nil {
			return nil, err
		}
		return &object.Array{Elements: elems}, nil

	case *ast.EmptyArray:
		return evalEmptyArray(node, env)

	case *ast.IndexExpression:
		return evalIndexExpression(node, env)

	case *ast.PrefixExpression:
		right, err := Eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		return evalPrefixExpression(node.Operator, right)

	case *ast.InfixExpression:
		left, err := Eval(node.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		return evalInfixExpression(node.Operator, left, right)
	}

	if node == nil {
		return object.NIL, nil
	}
	return nil, berrors.New(berrors.ParseError, "Cannot evaluate %s", node.String())
}

// for loops refuse to reuse a variable that is still bound
func evalForStatement(node *ast.ForStatement, env *object.Environment) (object.Object, error) {
	if env.Exists(node.Name) {
		return nil, berrors.New(berrors.NameError, "Variable %s already exists!", node.Name)
	}

	start, err := Eval(node.Start, env)
	if err != nil {
		return nil, err
	}
	end, err := Eval(node.End, env)
	if err != nil {
		return nil, err
	}
	step, err := Eval(node.Step, env)
	if err != nil {
		return nil, err
	}

	env.Set(node.Name, start)
	env.PushFor(object.ForFrame{Origin: env.Cursor(), End: end, Step: step})
	return object.NIL, nil
}

func evalIfExpression(node *ast.IfExpression, env *object.Environment) (object.Object, error) {
	cond, err := Eval(node.Condition, env)
	if err != nil {
		return nil, err
	}

	if object.Truthy(cond) {
		return Eval(node.Consequence, env)
	}
	return Eval(node.Alternative, env)
}

// end moves the cursor past the last line
func evalEndStatement(env *object.Environment) (object.Object, error) {
	env.Jump(env.Program().Len())
	return object.NIL, nil
}

// control commands get their raw arguments, everything else gets values
func evalBuiltinCommand(node *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if cmd, ok := commands[node.Name]; ok {
		return cmd(node, env)
	}

	bi, ok := builtins.Lookup(node.Name)
	if !ok {
		return nil, berrors.New(berrors.NameError, "Unknown builtin command %s", node.Name)
	}

	args, err := evalExpressions(node.Args, env)
	if err != nil {
		return nil, err
	}
	return bi.Fn(env, args...)
}

func evalExpressions(exps []ast.Node, env *object.Environment) ([]object.Object, error) {
	result := make([]object.Object, 0, len(exps))

	for _, e := range exps {
		evaluated, err := Eval(e, env)
		if err != nil {
			return nil, err
		}
		result = append(result, evaluated)
	}

	return result, nil
}

func evalIdentifier(node *ast.Identifier, env *object.Environment) (object.Object, error) {
	val, ok := env.Get(node.Value)
	if !ok {
		return nil, berrors.New(berrors.NameError, "Variable %s not found!", node.Value)
	}
	return val, nil
}

// MaxArraySize is the most elements [n] will allocate
const MaxArraySize = 1 << 20

func evalEmptyArray(node *ast.EmptyArray, env *object.Environment) (object.Object, error) {
	sz, err := Eval(node.Size, env)
	if err != nil {
		return nil, err
	}
	size, err := object.ToInteger(sz)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, berrors.New(berrors.RangeError, "Array size %d is negative", size)
	}
	if size > MaxArraySize {
		return nil, berrors.New(berrors.RangeError, "Array size %d is too large", size)
	}

	elems := make([]object.Object, size)
	for i := range elems {
		elems[i] = object.NIL
	}
	return &object.Array{Elements: elems}, nil
}

func evalIndexExpression(node *ast.IndexExpression, env *object.Environment) (object.Object, error) {
	idx, err := Eval(node.Index, env)
	if err != nil {
		return nil, err
	}
	index, ok := idx.(*object.Integer)
	if !ok {
		return nil, berrors.New(berrors.TypeError, "Expected integer, got %s", object.ToString(idx, true))
	}

	arr, err := arrayVariable(node.Name, env)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(index.Value, arr); err != nil {
		return nil, err
	}
	return object.Copy(arr.Elements[index.Value]), nil
}

// writes go straight into the stored array
func evalIndexAssign(node *ast.IndexAssign, env *object.Environment) (object.Object, error) {
	idx, err := Eval(node.Index, env)
	if err != nil {
		return nil, err
	}
	index, err := object.ToInteger(idx)
	if err != nil {
		return nil, err
	}
	val, err := Eval(node.Value, env)
	if err != nil {
		return nil, err
	}

	arr, err := arrayVariable(node.Name, env)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(index, arr); err != nil {
		return nil, err
	}

	arr.Elements[index] = val
	return object.NIL, nil
}

func arrayVariable(name string, env *object.Environment) (*object.Array, error) {
	v, ok := env.GetRef(name)
	if !ok {
		return nil, berrors.New(berrors.NameError, "Variable %s not found!", name)
	}

	arr, ok := v.(*object.Array)
	if !ok {
		return nil, berrors.New(berrors.TypeError, "Expected array, got %s", object.ToString(v, true))
	}
	return arr, nil
}

func checkBounds(index int64, arr *object.Array) error {
	if index < 0 || index >= int64(len(arr.Elements)) {
		return berrors.New(berrors.RangeError, "Index %d out of bounds for array of length %d", index, len(arr.Elements))
	}
	return nil
}

func evalPrefixExpression(operator string, right object.Object) (object.Object, error) {
	switch operator {
	case "!":
		return object.Bool(!object.Truthy(right)), nil
	case "-":
		return evalMinusPrefixOperatorExpression(right)
	case "+":
		switch right.(type) {
		case *object.Integer, *object.Float:
			return right, nil
		}
		return nil, berrors.New(berrors.TypeError, "Cannot apply + to %s", object.ToString(right, true))
	}
	return nil, berrors.New(berrors.ParseError, "Unknown unary operator %s", operator)
}

func evalMinusPrefixOperatorExpression(right object.Object) (object.Object, error) {
	switch r := right.(type) {
	case *object.Integer:
		return &object.Integer{Value: -r.Value}, nil
	case *object.Float:
		return &object.Float{Value: -r.Value}, nil
	}
	return nil, berrors.New(berrors.TypeError, "Cannot negate %s", object.ToString(right, true))
}

// the operators that work on any pair of values
func evalInfixExpression(operator string, left, right object.Object) (object.Object, error) {
	switch operator {
	case "==":
		return object.Bool(object.Equal(left, right)), nil
	case "<>":
		return object.Bool(!object.Equal(left, right)), nil
	case "&":
		return object.Bool(object.Truthy(left) && object.Truthy(right)), nil
	case "|":
		return object.Bool(object.Truthy(left) || object.Truthy(right)), nil
	case "<", ">", "<=", ">=":
		return evalComparison(operator, left, right)
	}

	fn, ok := typeConverters[string(left.Type())+string(right.Type())]
	if !ok {
		return nil, typeMismatch(operator, left, right)
	}
	return fn(operator, left, right)
}

type infixFn func(operator string, left, right object.Object) (object.Object, error)

// arithmetic is only defined for these pairings
var typeConverters = map[string]infixFn{
	object.INTEGER_OBJ + object.INTEGER_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalIntegerInfixExpression(op, l.(*object.Integer).Value, r.(*object.Integer).Value, l, r)
	},
	object.FLOAT_OBJ + object.FLOAT_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalFloatInfixExpression(op, l.(*object.Float).Value, r.(*object.Float).Value, l, r)
	},
	object.INTEGER_OBJ + object.FLOAT_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalFloatInfixExpression(op, float64(l.(*object.Integer).Value), r.(*object.Float).Value, l, r)
	},
	object.FLOAT_OBJ + object.INTEGER_OBJ: func(op string, l, r object.Object) (object.Object, error) {
		return evalFloatInfixExpression(op, l.(*object.Float).Value, float64(r.(*object.Integer).Value), l, r)
	},
	object.STRING_OBJ + object.STRING_OBJ: evalStringInfixExpression,
}

func evalIntegerInfixExpression(operator string, leftVal, rightVal int64, l, r object.Object) (object.Object, error) {
	switch operator {
	case "+":
		return &object.Integer{Value: leftVal + rightVal}, nil
	case "-":
		return &object.Integer{Value: leftVal - rightVal}, nil
	case "*":
		return &object.Integer{Value: leftVal * rightVal}, nil
	case "/":
		if rightVal == 0 {
			return nil, berrors.New(berrors.RangeError, "Division by zero")
		}
		return &object.Integer{Value: leftVal / rightVal}, nil
	case "%":
		if rightVal == 0 {
			return nil, berrors.New(berrors.RangeError, "Division by zero")
		}
		return &object.Integer{Value: leftVal % rightVal}, nil
	}
	return nil, typeMismatch(operator, l, r)
}

func evalFloatInfixExpression(operator string, leftVal, rightVal float64, l, r object.Object) (object.Object, error) {
	switch operator {
	case "+":
		return &object.Float{Value: leftVal + rightVal}, nil
	case "-":
		return &object.Float{Value: leftVal - rightVal}, nil
	case "*":
		return &object.Float{Value: leftVal * rightVal}, nil
	case "/":
		return &object.Float{Value: leftVal / rightVal}, nil
	case "%":
		return &object.Float{Value: math.Mod(leftVal, rightVal)}, nil
	}
	return nil, typeMismatch(operator, l, r)
}

func evalStringInfixExpression(operator string, left, right object.Object) (object.Object, error) {
	if operator != "+" {
		return nil, typeMismatch(operator, left, right)
	}
	return &object.String{Value: left.(*object.String).Value + right.(*object.String).Value}, nil
}

// <= and >= forgive tiny floating point differences
func evalComparison(operator string, left, right object.Object) (object.Object, error) {
	l, err := object.ComparisonValue(left)
	if err != nil {
		return nil, err
	}
	r, err := object.ComparisonValue(right)
	if err != nil {
		return nil, err
	}

	near := math.Abs(l-r) < epsilon
	switch operator {
	case "<":
		return object.Bool(l < r), nil
	case ">":
		return object.Bool(l > r), nil
	case "<=":
		return object.Bool(l < r || near), nil
	}
	return object.Bool(l > r || near), nil
}

func typeMismatch(operator string, left, right object.Object) error {
	return berrors.New(berrors.TypeError, "Cannot apply %s to %s and %s", operator, describe(left), describe(right))
}

// strings get quoted so "1" and 1 read differently
func describe(obj object.Object) string {
	if s, ok := obj.(*object.String); ok {
		return `"` + s.Value + `"`
	}
	return object.ToString(obj, true)
}
