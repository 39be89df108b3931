// Package cli is the text front end: it reads lines, runs programs
// and shows their output on a terminal
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/goforj/godump"
	"github.com/navionguy/koneko/evaluator"
	"github.com/navionguy/koneko/keybuffer"
	"github.com/navionguy/koneko/object"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

// Keys is where an interrupt gets turned into a break
type Keys interface {
	SaveKeyStroke(key string) bool
}

// Options for a Session, the zero value is usable
type Options struct {
	Budget time.Duration
	Dump   bool   // dump the tree of each immediate line
	Yield  func() // called between batches of a running program and after each immediate line
	Keys   Keys   // receives a break on ctrl-c while a program runs
	Log    zerolog.Logger
}

// Session feeds typed lines to one environment
type Session struct {
	env  *object.Environment
	opts Options
}

// New starts a session on env
func New(env *object.Environment, opts Options) *Session {
	if opts.Budget <= 0 {
		opts.Budget = evaluator.DefaultBudget
	}
	return &Session{env: env, opts: opts}
}

// Exec handles one line of input.
// Numbered lines edit the program, anything else runs right away
// and its value is echoed back.
func (s *Session) Exec(line string) {
	node, err := evaluator.AddLine(line, s.env)
	if err != nil {
		s.opts.Log.Debug().Err(err).Str("line", line).Msg("line rejected")
		s.giveError(err)
		return
	}
	if node == nil {
		return
	}

	if s.opts.Dump {
		godump.Dump(node)
	}
	defer s.settle()

	res, err := evaluator.Immediate(node, s.env)
	if err != nil {
		s.giveError(err)
		return
	}
	s.env.Terminal().Println(line + " -> " + object.ToString(res, true))

	if s.env.ProgramRunning() {
		s.runProgram()
	}
}

// runProgram keeps going until the program ends or fails
func (s *Session) runProgram() {
	if s.opts.Keys != nil {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)

		done := make(chan struct{})
		defer close(done)
		go forwardBreaks(sig, done, s.opts.Keys)
	}

	start := time.Now()
	err := evaluator.Run(s.env, s.opts.Budget, s.opts.Yield)
	if err != nil {
		s.opts.Log.Debug().Err(err).Int("cursor", s.env.Cursor()).Msg("run stopped")
		s.giveError(err)
		return
	}
	s.opts.Log.Debug().Dur("took", time.Since(start)).Msg("run finished")
}

// forwardBreaks turns each interrupt into a break key until done closes
func forwardBreaks(sig <-chan os.Signal, done <-chan struct{}, keys Keys) {
	for {
		select {
		case <-sig:
			keys.SaveKeyStroke(keybuffer.BreakKey)
		case <-done:
			return
		}
	}
}

// settle lets the host know the screen holds a finished picture
func (s *Session) settle() {
	if s.opts.Yield != nil {
		s.opts.Yield()
	}
}

func (s *Session) giveError(err error) {
	s.env.Terminal().Println("Error: " + err.Error())
}

// Script runs every non blank line of in
func (s *Session) Script(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		s.Exec(line)
	}
	return scanner.Err()
}

// Interactive prompts with line editing until end of input.
// History is read from and saved to the named file when there is one.
func (s *Session) Interactive(prompt, history string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if len(history) > 0 {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	for {
		src, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if len(strings.TrimSpace(src)) == 0 {
			continue
		}
		line.AppendHistory(src)
		s.Exec(src)
	}

	if len(history) > 0 {
		f, err := os.Create(history)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := line.WriteHistory(f); err != nil {
			return err
		}
	}
	return nil
}
