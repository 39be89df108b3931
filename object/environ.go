package object

import (
	"math/rand"

	"github.com/navionguy/koneko/ast"
)

// ForFrame records an active for loop
type ForFrame struct {
	Origin int    // index of the for statement
	End    Object // loop limit
	Step   Object // added by each next
}

// Environment is one interpreter session.
// It owns the variables, the program, the execution cursor,
// the for/while/call stacks and the capabilities commands talk to.
type Environment struct {
	store    map[string]Object // variables, one global scope
	forLoops []ForFrame        // active for loops
	whiles   []int             // origin index of each active while
	stack    []int             // return addresses for gosub/ret
	program  *ast.Program      // the stored lines

	cursor  int  // index of the next line to execute
	jumped  bool // cursor was set absolutely, don't advance
	refresh bool // program asked to yield the batch
	run     bool // a program is running

	rnd *rand.Rand // random number generator

	canvas  Canvas
	input   Input
	clock   Clock
	storage Storage
	term    Console
}

// NewEnvironment creates a session that writes to term
// every other capability starts out as a do-nothing placeholder
func NewEnvironment(term Console) *Environment {
	if term == nil {
		term = nullConsole{}
	}

	e := &Environment{
		store:   make(map[string]Object),
		program: &ast.Program{},
		canvas:  nullCanvas{},
		input:   nullInput{},
		clock:   NewSystemClock(),
		storage: nullStorage{},
		term:    term,
	}
	e.Randomize(37)
	return e
}

// Get returns a copy of a variable, false if it isn't bound
func (e *Environment) Get(name string) (Object, bool) {
	v, ok := e.store[name]
	if !ok {
		return nil, false
	}
	return Copy(v), true
}

// GetRef returns the stored variable itself so arrays can be updated in place
func (e *Environment) GetRef(name string) (Object, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Set stores an object in the environment
func (e *Environment) Set(name string, val Object) {
	e.store[name] = val
}

// Delete unbinds a variable
func (e *Environment) Delete(name string) {
	delete(e.store, name)
}

// Exists reports if the variable is bound
func (e *Environment) Exists(name string) bool {
	_, ok := e.store[name]
	return ok
}

// ClearVars empties the map of environment objects
func (e *Environment) ClearVars() {
	e.store = make(map[string]Object)
}

// PushFor starts tracking a for loop
func (e *Environment) PushFor(ff ForFrame) {
	e.forLoops = append(e.forLoops, ff)
}

// PeekFor returns the newest for loop without removing it
func (e *Environment) PeekFor() (ForFrame, bool) {
	l := len(e.forLoops)
	if l == 0 {
		return ForFrame{}, false
	}
	return e.forLoops[l-1], true
}

// PopFor removes the newest for loop, false if there isn't one
func (e *Environment) PopFor() (ForFrame, bool) {
	ff, ok := e.PeekFor()
	if ok {
		e.forLoops = e.forLoops[:len(e.forLoops)-1]
	}
	return ff, ok
}

// ForDepth is how many for loops are active
func (e *Environment) ForDepth() int {
	return len(e.forLoops)
}

// PushWhile records the index of a while whose condition held
func (e *Environment) PushWhile(origin int) {
	e.whiles = append(e.whiles, origin)
}

// PeekWhile returns the newest while origin without removing it
func (e *Environment) PeekWhile() (int, bool) {
	l := len(e.whiles)
	if l == 0 {
		return 0, false
	}
	return e.whiles[l-1], true
}

// PopWhile removes the newest while origin
func (e *Environment) PopWhile() (int, bool) {
	origin, ok := e.PeekWhile()
	if ok {
		e.whiles = e.whiles[:len(e.whiles)-1]
	}
	return origin, ok
}

// WhileDepth is how many while loops are active
func (e *Environment) WhileDepth() int {
	return len(e.whiles)
}

// Push a return address, returns stack size
func (e *Environment) Push(ret int) int {
	e.stack = append(e.stack, ret)
	return len(e.stack)
}

// Pop a return address, false means stack is empty
func (e *Environment) Pop() (int, bool) {
	l := len(e.stack)
	if l == 0 {
		return 0, false
	}

	ret := e.stack[l-1]
	e.stack = e.stack[:l-1]

	return ret, true
}

// CallDepth is how many gosubs are waiting for a ret
func (e *Environment) CallDepth() int {
	return len(e.stack)
}

// ResetProgramState clears variables, all three stacks and the cursor
// the stored lines are left alone
func (e *Environment) ResetProgramState() {
	e.ClearVars()
	e.forLoops = nil
	e.whiles = nil
	e.stack = nil
	e.cursor = 0
	e.jumped = false
	e.refresh = false
}

// Program returns the stored lines
func (e *Environment) Program() *ast.Program {
	return e.program
}

// Cursor is the index of the line about to execute
func (e *Environment) Cursor() int {
	return e.cursor
}

// SetCursor moves the cursor, the step still advances past it
func (e *Environment) SetCursor(i int) {
	e.cursor = i
}

// Jump moves the cursor to an absolute target, the step won't advance
func (e *Environment) Jump(i int) {
	e.cursor = i
	e.jumped = true
}

// TakeJump reports and clears the jump flag
func (e *Environment) TakeJump() bool {
	j := e.jumped
	e.jumped = false
	return j
}

// SetRefresh asks the host to end the current batch
func (e *Environment) SetRefresh(r bool) {
	e.refresh = r
}

// Refresh reports if a yield was requested
func (e *Environment) Refresh() bool {
	return e.refresh
}

// SetRun controls the "a program is running"
func (e *Environment) SetRun(run bool) {
	e.run = run
}

// ProgramRunning quick test to see if program is currently running
func (e *Environment) ProgramRunning() bool {
	return e.run
}

// Random returns a value in [min, max)
func (e *Environment) Random(min, max float64) float64 {
	return min + e.rnd.Float64()*(max-min)
}

// Randomize takes in a new seed and starts a new random series
func (e *Environment) Randomize(seed int64) {
	e.rnd = rand.New(rand.NewSource(seed))
}

// Terminal allows access to the console
func (e *Environment) Terminal() Console {
	return e.term
}

// Canvas returns the drawing surface
func (e *Environment) Canvas() Canvas {
	return e.canvas
}

// SetCanvas attaches a drawing surface
func (e *Environment) SetCanvas(c Canvas) {
	e.canvas = c
}

// Input returns the key source
func (e *Environment) Input() Input {
	return e.input
}

// SetInput attaches a key source
func (e *Environment) SetInput(in Input) {
	e.input = in
}

// Clock returns the time source
func (e *Environment) Clock() Clock {
	return e.clock
}

// SetClock attaches a time source
func (e *Environment) SetClock(c Clock) {
	e.clock = c
}

// Storage returns the program drive
func (e *Environment) Storage() Storage {
	return e.storage
}

// SetStorage attaches a program drive
func (e *Environment) SetStorage(s Storage) {
	e.storage = s
}
