package evaluator

import (
	"strings"

	"github.com/navionguy/koneko/ast"
	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/highlight"
	"github.com/navionguy/koneko/object"
)

// command handlers see the unevaluated arguments
// so next can name its variable and loop can look back at its while
type command func(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error)

var commands map[string]command

// filled in here since load feeds lines back through Eval
func init() {
	commands = map[string]command{
		"goto":  evalGotoCommand,
		"gosub": evalGosubCommand,
		"ret":   evalRetCommand,
		"next":  evalNextCommand,
		"while": evalWhileCommand,
		"loop":  evalLoopCommand,
		"end":   evalEndCommand,
		"run":   evalRunCommand,
		"new":   evalNewCommand,
		"save":  evalSaveCommand,
		"load":  evalLoadCommand,
		"files": evalFilesCommand,
		"list":  evalListCommand,
	}
}

func expectArgs(cmd *ast.BuiltinCommand, n int) error {
	if len(cmd.Args) != n {
		return berrors.New(berrors.ParseError, "Expected %d arguments, got %d", n, len(cmd.Args))
	}
	return nil
}

// lineTarget evaluates the single argument to a line number and finds its index
func lineTarget(cmd *ast.BuiltinCommand, verb string, env *object.Environment) (int, error) {
	if err := expectArgs(cmd, 1); err != nil {
		return 0, err
	}

	arg, err := Eval(cmd.Args[0], env)
	if err != nil {
		return 0, err
	}
	lineNum, err := object.ToInteger(arg)
	if err != nil {
		return 0, err
	}

	idx, ok := env.Program().Find(int(lineNum))
	if !ok {
		return 0, berrors.New(berrors.RangeError, "%s: Could not find line %d", verb, lineNum)
	}
	return idx, nil
}

func evalGotoCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	idx, err := lineTarget(cmd, "Goto", env)
	if err != nil {
		return nil, err
	}

	env.Jump(idx)
	env.SetRun(true)
	return object.NIL, nil
}

// gosub remembers where it was called from, ret resumes one past that
func evalGosubCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	idx, err := lineTarget(cmd, "Gosub", env)
	if err != nil {
		return nil, err
	}

	env.Push(env.Cursor())
	env.Jump(idx)
	env.SetRun(true)
	return object.NIL, nil
}

func evalRetCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	ret, ok := env.Pop()
	if !ok {
		return nil, berrors.New(berrors.ControlStackError, "Cannot return; callstack is empty!")
	}
	env.SetCursor(ret)
	return object.NIL, nil
}

// next steps the loop variable, the loop runs while it hasn't passed the end
func evalNextCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 1); err != nil {
		return nil, err
	}
	ident, ok := cmd.Args[0].(*ast.Identifier)
	if !ok {
		return nil, berrors.New(berrors.ParseError, "Expected variable name, got %s", cmd.Args[0].String())
	}

	// the frame stays put until the step is known to be good
	ff, ok := env.PeekFor()
	if !ok {
		return nil, berrors.New(berrors.ControlStackError, "Cannot next; for stack is empty!")
	}

	cur, ok := env.Get(ident.Value)
	if !ok {
		return nil, berrors.New(berrors.NameError, "Variable %s not found!", ident.Value)
	}
	switch cur.(type) {
	case *object.Integer, *object.Float:
	default:
		return nil, berrors.New(berrors.TypeError, "Expected integer or float, got %s", object.ToString(cur, true))
	}

	val, err := evalInfixExpression("+", cur, ff.Step)
	if err != nil {
		return nil, err
	}

	step, err := object.ComparisonValue(ff.Step)
	if err != nil {
		return nil, err
	}
	sign := 1.0
	if step < 0 {
		sign = -1
	}

	v, err := object.ComparisonValue(val)
	if err != nil {
		return nil, err
	}
	end, err := object.ComparisonValue(ff.End)
	if err != nil {
		return nil, err
	}

	if v*sign <= end*sign {
		env.Set(ident.Value, val)
		env.SetCursor(ff.Origin)
		return object.NIL, nil
	}

	env.PopFor()
	env.Delete(ident.Value)
	return object.NIL, nil
}

// a false while skips ahead to its matching loop
func evalWhileCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 1); err != nil {
		return nil, err
	}

	cond, err := Eval(cmd.Args[0], env)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		env.PushWhile(env.Cursor())
		return object.NIL, nil
	}

	depth := 0
	prog := env.Program()
	for i := env.Cursor() + 1; i < prog.Len(); i++ {
		bc, ok := prog.At(i).Node.(*ast.BuiltinCommand)
		if !ok {
			continue
		}

		switch bc.Name {
		case "while":
			depth++
		case "loop":
			if depth == 0 {
				env.SetCursor(i)
				return object.NIL, nil
			}
			depth--
		}
	}

	return nil, berrors.New(berrors.ControlStackError, "Cannot skip while; no matching loop!")
}

func evalLoopCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	origin, ok := env.PeekWhile()
	if !ok {
		return nil, berrors.New(berrors.ControlStackError, "Cannot loop; while stack is empty!")
	}

	line := env.Program().At(origin)
	var wc *ast.BuiltinCommand
	if line != nil {
		wc, _ = line.Node.(*ast.BuiltinCommand)
	}
	if wc == nil || wc.Name != "while" {
		return nil, berrors.New(berrors.ControlStackError, "Expected while statement at index %d", origin)
	}
	if err := expectArgs(wc, 1); err != nil {
		return nil, err
	}

	cond, err := Eval(wc.Args[0], env)
	if err != nil {
		return nil, err
	}
	if object.Truthy(cond) {
		env.SetCursor(origin)
		return object.NIL, nil
	}

	env.PopWhile()
	return object.NIL, nil
}

func evalEndCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}
	return evalEndStatement(env)
}

// run starts the stored program from the top with a clean slate
func evalRunCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	env.ResetProgramState()
	env.Jump(0)
	env.SetRun(true)
	return object.NIL, nil
}

func evalNewCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	env.Program().Clear()
	env.ResetProgramState()
	env.SetRun(false)
	return object.NIL, nil
}

// save writes the source of every line, in order
func evalSaveCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	file, err := fileName(cmd, env)
	if err != nil {
		return nil, err
	}

	if err := env.Storage().WriteFile(file, []byte(env.Program().String())); err != nil {
		return nil, berrors.New(berrors.IOError, "Could not create file %s: %s", file, err.Error())
	}
	return object.NIL, nil
}

// load replaces the program, every line goes through the same path as typed lines
func evalLoadCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	file, err := fileName(cmd, env)
	if err != nil {
		return nil, err
	}

	data, err := env.Storage().ReadFile(file)
	if err != nil {
		return nil, berrors.New(berrors.IOError, "Could not open file %s: %s", file, err.Error())
	}

	env.Program().Clear()
	for _, src := range strings.Split(string(data), "\n") {
		src = strings.TrimRight(src, "\r")
		if len(src) == 0 {
			continue
		}

		if _, err := AddLine(src, env); err != nil {
			return nil, err
		}
	}
	return object.NIL, nil
}

func fileName(cmd *ast.BuiltinCommand, env *object.Environment) (string, error) {
	if err := expectArgs(cmd, 1); err != nil {
		return "", err
	}

	arg, err := Eval(cmd.Args[0], env)
	if err != nil {
		return "", err
	}
	name, ok := arg.(*object.String)
	if !ok {
		return "", berrors.New(berrors.TypeError, "Expected string, got %s", object.ToString(arg, true))
	}
	return name.Value, nil
}

func evalFilesCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	files, err := env.Storage().Files()
	if err != nil {
		return nil, berrors.New(berrors.IOError, "Could not list files: %s", err.Error())
	}

	for _, f := range files {
		env.Terminal().Println(f)
	}
	return object.NIL, nil
}

// list prints the program with color escapes around every token
func evalListCommand(cmd *ast.BuiltinCommand, env *object.Environment) (object.Object, error) {
	if err := expectArgs(cmd, 0); err != nil {
		return nil, err
	}

	for _, ln := range env.Program().Lines() {
		env.Terminal().Println(highlight.Highlight(ln.Source, Registry))
	}
	return object.NIL, nil
}
