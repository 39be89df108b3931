package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/navionguy/koneko/token"
)

// Node defines interface for all node types
type Node interface {
	TokenLiteral() string
	String() string
}

// ForStatement starts a counted loop
// for name = start to end [step step]
type ForStatement struct {
	Token token.Token
	Name  string
	Start Node
	End   Node
	Step  Node
}

// TokenLiteral returns my token literal
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }

func (fs *ForStatement) String() string {
	return fmt.Sprintf("for %s = %s to %s step %s", fs.Name, fs.Start.String(), fs.End.String(), fs.Step.String())
}

// IfExpression picks one of two statements
// the Alternative is a NilLiteral when there was no else
type IfExpression struct {
	Token       token.Token
	Condition   Node
	Consequence Node
	Alternative Node
}

// TokenLiteral returns my token literal
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }

func (ie *IfExpression) String() string {
	var out bytes.Buffer

	out.WriteString("if ")
	out.WriteString(ie.Condition.String())
	out.WriteString(" then ")
	out.WriteString(ie.Consequence.String())

	if _, ok := ie.Alternative.(*NilLiteral); !ok && ie.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(ie.Alternative.String())
	}

	return out.String()
}

// AssignExpression binds a variable, it evaluates to the value stored
type AssignExpression struct {
	Token token.Token // the identifier
	Name  string
	Value Node
}

// TokenLiteral returns my token literal
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Literal }

func (ae *AssignExpression) String() string {
	return ae.Name + " = " + ae.Value.String()
}

// InfixExpression is any binary operator
type InfixExpression struct {
	Token    token.Token // The operator token, e.g. +
	Left     Node
	Operator string
	Right    Node
}

// TokenLiteral returns my token literal
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// PrefixExpression is unary -, + or !
type PrefixExpression struct {
	Token    token.Token // The prefix token, e.g. !
	Operator string
	Right    Node
}

// TokenLiteral returns my token literal
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }

func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

// BuiltinCommand invokes a registered command
// Call is set when it was written name(args)
type BuiltinCommand struct {
	Token token.Token
	Name  string
	Args  []Node
	Call  bool
}

// TokenLiteral returns my token literal
func (bc *BuiltinCommand) TokenLiteral() string { return bc.Token.Literal }

func (bc *BuiltinCommand) String() string {
	args := []string{}
	for _, a := range bc.Args {
		args = append(args, a.String())
	}

	if bc.Call {
		return bc.Name + "(" + strings.Join(args, ", ") + ")"
	}

	if len(args) == 0 {
		return bc.Name
	}
	return bc.Name + " " + strings.Join(args, " ")
}

// IntegerLiteral holds a 64 bit integer constant
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

// TokenLiteral returns my token literal
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return strconv.FormatInt(il.Value, 10) }

// FloatLiteral holds a floating point constant
type FloatLiteral struct {
	Token token.Token
	Value float64
}

// TokenLiteral returns my token literal
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }

func (fl *FloatLiteral) String() string {
	s := strconv.FormatFloat(fl.Value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// StringLiteral holds a string constant
type StringLiteral struct {
	Token token.Token
	Value string
}

// TokenLiteral returns my token literal
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return `"` + sl.Value + `"` }

// Identifier reads a variable
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

// TokenLiteral returns my token literal
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// ArrayLiteral builds an array from its elements, {1, 2, 3}
type ArrayLiteral struct {
	Token    token.Token // the '{'
	Elements []Node
}

// TokenLiteral returns my token literal
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Literal }

func (al *ArrayLiteral) String() string {
	elems := []string{}
	for _, el := range al.Elements {
		elems = append(elems, el.String())
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

// EmptyArray builds an array of Size nils, [10]
type EmptyArray struct {
	Token token.Token // the '['
	Size  Node
}

// TokenLiteral returns my token literal
func (ea *EmptyArray) TokenLiteral() string { return ea.Token.Literal }
func (ea *EmptyArray) String() string       { return "[" + ea.Size.String() + "]" }

// IndexExpression reads one element of an array variable
type IndexExpression struct {
	Token token.Token // the identifier
	Name  string
	Index Node
}

// TokenLiteral returns my token literal
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string       { return ie.Name + "[" + ie.Index.String() + "]" }

// IndexAssign stores into one element of an array variable
type IndexAssign struct {
	Token token.Token // the identifier
	Name  string
	Index Node
	Value Node
}

// TokenLiteral returns my token literal
func (ia *IndexAssign) TokenLiteral() string { return ia.Token.Literal }

func (ia *IndexAssign) String() string {
	return ia.Name + "[" + ia.Index.String() + "] = " + ia.Value.String()
}

// EndStatement stops the running program
type EndStatement struct {
	Token token.Token
}

// TokenLiteral returns my token literal
func (es *EndStatement) TokenLiteral() string { return es.Token.Literal }
func (es *EndStatement) String() string       { return "end" }

// NilLiteral is the empty statement
// a numbered line holding one is a request to delete that line
type NilLiteral struct {
	Token token.Token
}

// TokenLiteral returns my token literal
func (nl *NilLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NilLiteral) String() string       { return "" }
