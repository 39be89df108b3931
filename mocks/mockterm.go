package mocks

import (
	"fmt"
	"strings"
)

// MockTerm collects everything printed to the console
type MockTerm struct {
	Lines []string
	Echo  bool // also write the lines to stdout
}

func (mt *MockTerm) Println(msg string) {
	mt.Lines = append(mt.Lines, msg)
	if mt.Echo {
		fmt.Println(msg)
	}
}

// Output returns the printed lines joined with newlines
func (mt *MockTerm) Output() string {
	return strings.Join(mt.Lines, "\n")
}

// Reset forgets what was printed
func (mt *MockTerm) Reset() {
	mt.Lines = nil
}
