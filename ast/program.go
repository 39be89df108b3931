package ast

import (
	"bytes"
)

// Line is one parsed line of source
// LineNum zero marks an immediate line that never gets stored
type Line struct {
	LineNum int
	Node    Node
	Source  string
}

// Immediate is true for lines entered without a line number
func (l Line) Immediate() bool {
	return l.LineNum == 0
}

// Deletion is true when only a line number was entered
func (l Line) Deletion() bool {
	if l.LineNum == 0 {
		return false
	}
	_, ok := l.Node.(*NilLiteral)
	return ok || l.Node == nil
}

// Program holds the stored lines, always sorted by ascending line number
// with each number appearing at most once
type Program struct {
	lines []Line
}

// TokenLiteral returns string representation of the program
func (p *Program) TokenLiteral() string { return "Program" }

// String lists the source of every stored line
func (p *Program) String() string {
	var out bytes.Buffer
	for _, ln := range p.lines {
		out.WriteString(ln.Source)
		out.WriteString("\n")
	}
	return out.String()
}

// AddLine adds, or replaces, a line of code
func (p *Program) AddLine(nl Line) {
	// *most* of the time, adding to the end of the program
	if nl.LineNum > p.MaxLineNum() {
		p.lines = append(p.lines, nl)
		return
	}

	i, found := p.findLine(nl.LineNum)

	if found {
		p.lines[i] = nl
		return
	}

	// insert it into the array
	p.lines = append(p.lines[:i], append([]Line{nl}, p.lines[i:]...)...)
}

// RemoveLine drops the line, returns false if it wasn't there
func (p *Program) RemoveLine(lineNum int) bool {
	i, found := p.findLine(lineNum)
	if !found {
		return false
	}

	p.lines = append(p.lines[:i], p.lines[i+1:]...)
	return true
}

// Find returns the index of a line number
func (p *Program) Find(lineNum int) (int, bool) {
	return p.findLine(lineNum)
}

// tries to find the requested line number in the array of lines
// returns index into lines and true if found
// returns index to insert it and false if not found
func (p *Program) findLine(lNum int) (int, bool) {
	for i := range p.lines {
		if p.lines[i].LineNum == lNum {
			return i, true //found him!
		}

		if p.lines[i].LineNum > lNum {
			return i, false // time to insert a new line
		}
	}

	// line doesn't exist
	return len(p.lines), false
}

// MaxLineNum finds the highest line number currently stored
func (p *Program) MaxLineNum() int {
	// if array of code lines is empty
	if len(p.lines) == 0 {
		return 0
	}
	return p.lines[len(p.lines)-1].LineNum
}

// Len tells caller how many lines I have
func (p *Program) Len() int {
	return len(p.lines)
}

// At returns the line at index i, nil when i is out of range
func (p *Program) At(i int) *Line {
	if i < 0 || i >= len(p.lines) {
		return nil
	}
	return &p.lines[i]
}

// Lines returns a copy of the stored lines in order
func (p *Program) Lines() []Line {
	lines := make([]Line, len(p.lines))
	copy(lines, p.lines)
	return lines
}

// Clear removes every line
func (p *Program) Clear() {
	p.lines = nil
}
