// Package ast defines the term tree produced by the parser.
//
// Terms are immutable: every transformation (resolution, substitution)
// rebuilds the nodes it changes and shares the rest. Nothing in this
// package or its consumers mutates a node after construction, so
// structural sharing across independent branches is always safe.
package ast

import (
	"fmt"
	"strings"

	"github.com/funvibe/cam/internal/token"
	"github.com/funvibe/cam/internal/typesystem"
)

// Term is the interface implemented by every node of the tree.
// Case analysis is done with exhaustive type switches.
type Term interface {
	GetToken() token.Token
	String() string
	termNode()
}

// Variable is a named reference. Index is the lexical (de Bruijn) index
// assigned by the resolver; -1 means unresolved.
type Variable struct {
	Token token.Token
	Name  string
	Index int
}

func (v *Variable) termNode()             {}
func (v *Variable) GetToken() token.Token { return v.Token }
func (v *Variable) String() string {
	if v.Index >= 0 {
		return fmt.Sprintf("%s#%d", v.Name, v.Index)
	}
	return v.Name
}

// IntegerLiteral is a numeric constant.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) termNode()             {}
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }
func (il *IntegerLiteral) String() string        { return fmt.Sprintf("%d", il.Value) }

// Lambda is a single-parameter abstraction. ParamType is the optional
// declared parameter type (nil when the binder is unannotated).
type Lambda struct {
	Token     token.Token // the 'lambda' token
	Param     string
	ParamType typesystem.Type
	Body      Term
}

func (l *Lambda) termNode()             {}
func (l *Lambda) GetToken() token.Token { return l.Token }
func (l *Lambda) String() string {
	var sb strings.Builder
	sb.WriteString("(lambda ")
	sb.WriteString(l.Param)
	if l.ParamType != nil {
		sb.WriteString(":")
		sb.WriteString(l.ParamType.String())
	}
	sb.WriteString(". ")
	sb.WriteString(l.Body.String())
	sb.WriteString(")")
	return sb.String()
}

// Application applies Fn to Arg.
type Application struct {
	Token token.Token // the '(' token
	Fn    Term
	Arg   Term
}

func (a *Application) termNode()             {}
func (a *Application) GetToken() token.Token { return a.Token }
func (a *Application) String() string {
	return fmt.Sprintf("(%s %s)", a.Fn.String(), a.Arg.String())
}

// BinaryOp is integer arithmetic over two sub-terms. Op is "+" or "*".
type BinaryOp struct {
	Token token.Token // the operator token
	Op    string
	Left  Term
	Right Term
}

func (b *BinaryOp) termNode()             {}
func (b *BinaryOp) GetToken() token.Token { return b.Token }
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Op, b.Right.String())
}
