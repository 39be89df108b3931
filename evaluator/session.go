package evaluator

import (
	"time"

	"github.com/navionguy/koneko/ast"
	"github.com/navionguy/koneko/berrors"
	"github.com/navionguy/koneko/builtins"
	"github.com/navionguy/koneko/object"
	"github.com/navionguy/koneko/parser"
)

// DefaultBudget is how long one batch may run before it has to refresh
const DefaultBudget = time.Second

type commandSet struct{}

// IsBuiltin reports if name is a command, either kind
func (commandSet) IsBuiltin(name string) bool {
	if _, ok := commands[name]; ok {
		return true
	}
	_, ok := builtins.Lookup(name)
	return ok
}

// Registry knows every command name the evaluator can run
var Registry parser.Registry = commandSet{}

// AddLine takes one line of typed or loaded source.
// Lines without a number come back to be executed once,
// numbered lines update the stored program and return nil.
func AddLine(src string, env *object.Environment) (ast.Node, error) {
	line, err := parser.ParseLine(src, Registry)
	if err != nil {
		return nil, err
	}

	switch {
	case line.Immediate():
		return line.Node, nil
	case line.Deletion():
		env.Program().RemoveLine(line.LineNum)
	default:
		env.Program().AddLine(line)
	}
	return nil, nil
}

// Immediate executes a line that was never stored
func Immediate(node ast.Node, env *object.Environment) (object.Object, error) {
	env.TakeJump()
	res, err := Eval(node, env)
	env.TakeJump()
	return res, err
}

// Finished reports if the cursor has left the program
func Finished(env *object.Environment) bool {
	return env.Cursor() >= env.Program().Len()
}

// Step executes the line at the cursor, then moves to the next line
// unless the line jumped somewhere itself.
// A failing line leaves the cursor where it was.
func Step(env *object.Environment) (object.Object, error) {
	line := env.Program().At(env.Cursor())
	if line == nil {
		return nil, berrors.New(berrors.RangeError, "Program buffer empty!")
	}

	env.TakeJump()
	res, err := Eval(line.Node, env)
	jumped := env.TakeJump()
	if err != nil {
		return nil, berrors.AtLine(err, line.LineNum)
	}

	if !jumped {
		env.SetCursor(env.Cursor() + 1)
	}
	return res, nil
}

// RunBatch steps until the program ends, asks for a refresh,
// or uses up its time budget.  A timeout leaves everything
// in place so the next batch picks up where this one stopped.
func RunBatch(env *object.Environment, budget time.Duration) error {
	defer env.SetRefresh(false)

	clock := env.Clock()
	start := clock.Seconds()

	for {
		if Finished(env) {
			env.SetRun(false)
			return nil
		}

		if clock.Seconds()-start >= budget.Seconds() {
			return berrors.New(berrors.TimeoutError, "Timeout, try adding a refresh statement")
		}

		if env.Input().BreakCheck() {
			env.SetRun(false)
			return berrors.AtLine(berrors.New(berrors.Break, "Program interrupted"), env.Program().At(env.Cursor()).LineNum)
		}

		if _, err := Step(env); err != nil {
			return err
		}

		if env.Refresh() {
			return nil
		}
	}
}

// Run keeps calling RunBatch until the program stops, between batches
// it calls yield so the host can draw.  Timeouts and failures stop the run.
func Run(env *object.Environment, budget time.Duration, yield func()) error {
	env.SetRun(true)
	for env.ProgramRunning() {
		err := RunBatch(env, budget)
		if yield != nil {
			yield()
		}
		if err != nil {
			env.SetRun(false)
			return err
		}
	}
	return nil
}
