package parser

import (
	"fmt"

	"github.com/funvibe/cam/internal/lexer"
	"github.com/funvibe/cam/internal/token"
	"github.com/funvibe/cam/internal/typesystem"
)

// ParseTypeString parses a standalone type expression such as "Int",
// "Bool -> Bool" or "(Int -> Int) -> Int". Used by the configuration
// layer for typing-context entries.
func ParseTypeString(s string) (typesystem.Type, error) {
	p := New(lexer.New(s).Tokens())
	t := p.parseType()
	if t == nil {
		return nil, fmt.Errorf("invalid type %q: %s", s, p.errors[0].Message)
	}
	if !p.curTokenIs(token.EOF) {
		return nil, fmt.Errorf("invalid type %q: trailing %q", s, p.curToken.Lexeme)
	}
	return t, nil
}
