package berrors

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the interpreter can report
type Kind int

const (
	LexError Kind = iota + 1
	ParseError
	NameError
	TypeError
	RangeError
	ControlStackError
	IOError
	TimeoutError
	Break
)

// TextForError returns the display name of an error kind
func TextForError(kind Kind) string {
	switch kind {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case RangeError:
		return "RangeError"
	case ControlStackError:
		return "ControlStackError"
	case IOError:
		return "IOError"
	case TimeoutError:
		return "TimeoutError"
	case Break:
		return "Break"
	}

	return "Unprintable error"
}

// BasicError is what every failing statement hands back
type BasicError struct {
	Kind Kind
	Msg  string
	Line int // stored line number that was executing, zero for immediate lines
}

func (be *BasicError) Error() string {
	msg := TextForError(be.Kind) + ": " + be.Msg
	if be.Line > 0 {
		msg = fmt.Sprintf("%s in %d", msg, be.Line)
	}
	return msg
}

// New builds an error of the given kind
func New(kind Kind, format string, args ...interface{}) *BasicError {
	return &BasicError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf digs the Kind out of err, zero if it isn't one of mine
func KindOf(err error) Kind {
	var be *BasicError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

// AtLine tags err with the line number it happened on
// an error already carrying a line keeps it
func AtLine(err error, line int) error {
	var be *BasicError
	if !errors.As(err, &be) || be.Line != 0 || line == 0 {
		return err
	}

	tagged := *be
	tagged.Line = line
	return &tagged
}
