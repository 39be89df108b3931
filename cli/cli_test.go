package cli

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/navionguy/koneko/keybuffer"
	"github.com/navionguy/koneko/mocks"
	"github.com/navionguy/koneko/object"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(opts Options) (*Session, *object.Environment, *mocks.MockTerm) {
	trm := &mocks.MockTerm{}
	env := object.NewEnvironment(trm)
	return New(env, opts), env, trm
}

func TestExecCommand(t *testing.T) {
	tests := []struct {
		inp string
		exp []string
	}{
		{inp: "x = 5", exp: []string{"x = 5 -> 5"}},
		{inp: "x * 2", exp: []string{"x * 2 -> 10"}},
		{inp: "a = {1, \"b\"}", exp: []string{"a = {1, \"b\"} -> {1, b}"}},
		{inp: "10 print x", exp: nil},
		{inp: "20 print x + 1", exp: nil},
		{inp: "run", exp: []string{"run -> nil", "5", "6"}},
		{inp: "goto 20", exp: []string{"goto 20 -> nil", "6"}},
		{inp: "y", exp: []string{"Error: NameError: Variable y not found!"}},
		{inp: "\"a\" + 1", exp: []string{"Error: TypeError: Cannot apply + to \"a\" and 1"}},
		{inp: "20", exp: nil},
		{inp: "list", exp: []string{"list -> nil"}},
	}

	ss, _, trm := newSession(Options{})
	for _, tt := range tests {
		trm.Reset()
		ss.Exec(tt.inp)

		if tt.inp == "list" {
			// the listing comes first, highlighted
			require.Len(t, trm.Lines, 2)
			assert.Equal(t, "10 print x", Render(trm.Lines[0], false))
			assert.Equal(t, tt.exp[0], trm.Lines[1])
			continue
		}
		assert.Equal(t, tt.exp, trm.Lines, tt.inp)
	}
}

func TestExecRejected(t *testing.T) {
	var logs bytes.Buffer
	ss, env, trm := newSession(Options{Log: zerolog.New(&logs).Level(zerolog.DebugLevel)})

	ss.Exec("10 print (")
	require.Len(t, trm.Lines, 1)
	assert.True(t, strings.HasPrefix(trm.Lines[0], "Error: ParseError: "), trm.Lines[0])
	assert.Equal(t, 0, env.Program().Len())
	assert.Contains(t, logs.String(), "line rejected")

	trm.Reset()
	ss.Exec("x = #")
	require.Len(t, trm.Lines, 1)
	assert.True(t, strings.HasPrefix(trm.Lines[0], "Error: LexError: "), trm.Lines[0])
}

func TestRunFailures(t *testing.T) {
	ss, env, trm := newSession(Options{})
	env.SetClock(&mocks.MockClock{Tick: 0.01})

	ss.Exec("10 goto 10")
	ss.Exec("run")
	assert.Equal(t, []string{"run -> nil", "Error: TimeoutError: Timeout, try adding a refresh statement"}, trm.Lines)
	assert.False(t, env.ProgramRunning())

	trm.Reset()
	env.SetInput(&mocks.MockInput{Break: true})
	ss.Exec("run")
	assert.Equal(t, []string{"run -> nil", "Error: Break: Program interrupted in 10"}, trm.Lines)

	trm.Reset()
	env.SetInput(&mocks.MockInput{})
	ss.Exec("10 ret")
	ss.Exec("run")
	assert.Equal(t, "Error: ControlStackError: Cannot return; callstack is empty! in 10", trm.Lines[1])
}

func TestYieldAndKeys(t *testing.T) {
	yields := 0
	kb := keybuffer.New()
	ss, env, trm := newSession(Options{Yield: func() { yields++ }, Keys: kb})
	env.SetInput(kb)

	require.NoError(t, ss.Script(strings.NewReader("10 for i = 1 to 2\r\n20 refresh\r\n\r\n30 next i\r\nrun\r\n")))
	// three batches, then the run line itself
	assert.Equal(t, 4, yields)
	assert.Equal(t, []string{"run -> nil"}, trm.Lines)
}

func TestForwardBreaks(t *testing.T) {
	kb := keybuffer.New()
	sig := make(chan os.Signal)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		forwardBreaks(sig, done, kb)
	}()

	sig <- os.Interrupt
	close(done)
	wg.Wait()

	assert.True(t, kb.BreakCheck())
	assert.Equal(t, 0, kb.Size())
}

func TestScript(t *testing.T) {
	ss, _, trm := newSession(Options{})

	err := ss.Script(strings.NewReader("10 print \"hi\"\n   \nrun\nprint 2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"run -> nil", "hi", "2", "print 2 -> nil"}, trm.Lines)

	err = ss.Script(mocks.NewReader([]byte("x = 1\n")))
	assert.ErrorIs(t, err, mocks.ErrMockRead)
}

func TestRender(t *testing.T) {
	tests := []struct {
		inp   string
		color bool
		exp   string
	}{
		{inp: "plain", exp: "plain"},
		{inp: "`2hi`r there", exp: "hi there"},
		{inp: "`2hi`r there", color: true, exp: "\x1b[38;2;177;62;83mhi\x1b[0m there"},
		{inp: "`chi", color: true, exp: "\x1b[38;2;244;244;244mhi\x1b[0m"},
		{inp: "`zoo", exp: "zoo"},
		{inp: "end`", exp: "end"},
		{inp: "`r", color: true, exp: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, Render(tt.inp, tt.color), "Render(%q, %v)", tt.inp, tt.color)
	}
}

func TestConsole(t *testing.T) {
	var out bytes.Buffer
	con := NewConsole(&out, false)

	con.Println("`3one")
	con.Println("two")
	assert.Equal(t, "one\ntwo\n", out.String())
}
