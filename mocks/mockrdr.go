package mocks

import (
	"errors"
	"io"
)

// ErrMockRead is what a MockRdr fails with
var ErrMockRead = errors.New("i live to fail")

// MockRdr hands out data and then fails instead of reporting io.EOF
type MockRdr struct {
	data []byte
	Done bool // report io.EOF instead of failing
}

func NewReader(b []byte) *MockRdr {
	return &MockRdr{data: b}
}

func (rdr *MockRdr) Read(p []byte) (int, error) {
	if len(rdr.data) == 0 {
		if rdr.Done {
			return 0, io.EOF
		}
		return 0, ErrMockRead
	}

	n := copy(p, rdr.data)
	rdr.data = rdr.data[n:]
	return n, nil
}
