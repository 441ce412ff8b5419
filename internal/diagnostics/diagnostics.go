// Package diagnostics defines the discriminated error values shared by
// every pipeline stage. Each error carries a stable code and the source
// position of the offending token, so the CLI and tests can match on the
// kind of failure rather than on message text.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/cam/internal/token"
)

// ErrorCode is a stable identifier for a diagnostic kind.
type ErrorCode string

const (
	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // missing terminator
	ErrP003 ErrorCode = "P003" // unterminated construct
	ErrP004 ErrorCode = "P004" // trailing input after a complete term

	// Resolver
	ErrR001 ErrorCode = "R001" // unbound variable

	// Type checker
	ErrT001 ErrorCode = "T001" // type mismatch

	// Compiler
	ErrC001 ErrorCode = "C001" // access index out of scope
)

// DiagnosticError is an error produced by a pipeline stage.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError creates a diagnostic for the given code and token.
func NewError(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(format, args...),
	}
}
