// Package lexer turns source text into a stream of tokens.
package lexer

import (
	"unicode/utf8"

	"github.com/funvibe/cam/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	var tok token.Token

	switch l.ch {
	case '(':
		tok = newToken(token.LPAREN, l.ch, l.line, l.column)
	case ')':
		tok = newToken(token.RPAREN, l.ch, l.line, l.column)
	case '.':
		tok = newToken(token.DOT, l.ch, l.line, l.column)
	case ':':
		tok = newToken(token.COLON, l.ch, l.line, l.column)
	case '+':
		tok = newToken(token.PLUS, l.ch, l.line, l.column)
	case '*':
		tok = newToken(token.STAR, l.ch, l.line, l.column)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			tok = token.Token{Type: token.ARROW, Lexeme: "->", Line: l.line, Column: l.column}
		} else {
			tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
		}
	case 0:
		tok = token.Token{Type: token.EOF, Lexeme: "", Line: l.line, Column: l.column}
	default:
		if isLetter(l.ch) {
			line, col := l.line, l.column
			ident := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Line: line, Column: col}
		}
		if isDigit(l.ch) {
			line, col := l.line, l.column
			num := l.readNumber()
			return token.Token{Type: token.NUMBER, Lexeme: num, Line: line, Column: col}
		}
		tok = newToken(token.ILLEGAL, l.ch, l.line, l.column)
	}

	l.readChar()
	return tok
}

// Tokens lexes the whole input, always ending with an EOF token.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// Identifiers are [A-Za-z][A-Za-z0-9_]*; anything beyond ASCII letters
// is ILLEGAL.
func isLetter(ch rune) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func newToken(t token.Type, ch rune, line, column int) token.Token {
	return token.Token{Type: t, Lexeme: string(ch), Line: line, Column: column}
}
