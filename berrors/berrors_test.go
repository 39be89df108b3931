package berrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextForError(t *testing.T) {
	tests := []struct {
		inp Kind
		exp string
	}{
		{inp: LexError, exp: "LexError"},
		{inp: ParseError, exp: "ParseError"},
		{inp: NameError, exp: "NameError"},
		{inp: TypeError, exp: "TypeError"},
		{inp: RangeError, exp: "RangeError"},
		{inp: ControlStackError, exp: "ControlStackError"},
		{inp: IOError, exp: "IOError"},
		{inp: TimeoutError, exp: "TimeoutError"},
		{inp: Break, exp: "Break"},
		{inp: 100, exp: "Unprintable error"},
	}

	for _, tt := range tests {
		rc := TextForError(tt.inp)

		assert.EqualValuesf(t, tt.exp, rc, "TextForError(%d) got %s, wanted %s", tt.inp, rc, tt.exp)
	}
}

func TestBasicError(t *testing.T) {
	tests := []struct {
		err  *BasicError
		line int
		exp  string
	}{
		{err: New(NameError, "Variable %s not found!", "x"), exp: "NameError: Variable x not found!"},
		{err: New(RangeError, "Goto: Could not find line %d", 999), line: 20, exp: "RangeError: Goto: Could not find line 999 in 20"},
		{err: &BasicError{Kind: TypeError, Msg: "bad", Line: 10}, line: 20, exp: "TypeError: bad in 10"},
	}

	for _, tt := range tests {
		err := AtLine(tt.err, tt.line)

		assert.Equal(t, tt.exp, err.Error())
		assert.Equal(t, tt.err.Kind, KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", New(IOError, "Could not open file"))

	assert.Equal(t, IOError, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
}

func TestAtLineLeavesOthersAlone(t *testing.T) {
	plain := errors.New("plain")

	assert.Equal(t, plain, AtLine(plain, 10))

	be := New(LexError, "Unknown token: ?")
	assert.Equal(t, error(be), AtLine(be, 0))
}
