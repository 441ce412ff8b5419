// Package parser builds the term tree from a token stream.
//
// The grammar is parenthesized and needs a single token of lookahead:
//
//	term    := NUMBER | IDENT | '(' form ')'
//	form    := 'lambda' IDENT [':' type] '.' term
//	        |  term ('+'|'*') term
//	        |  term term...            (application, folded left)
//	type    := tyatom ['->' type]
//	tyatom  := IDENT | '(' type ')'
package parser

import (
	"strconv"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/token"
	"github.com/funvibe/cam/internal/typesystem"
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.DiagnosticError
}

func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes nothing itself; it consumes the token stream and returns
// the root term. A complete parse must consume every token: trailing
// input after a well-formed term is an error.
func (p *Parser) Parse() (ast.Term, []*diagnostics.DiagnosticError) {
	term := p.parseTerm()
	if term != nil && !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP004, p.curToken, "unexpected %q after complete term", p.curToken.Lexeme)
		return nil, p.errors
	}
	if term == nil {
		return nil, p.errors
	}
	return term, p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	}
}

func (p *Parser) curTokenIs(t token.Type) bool { return p.curToken.Type == t }

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, format, args...))
}

func (p *Parser) parseTerm() ast.Term {
	switch p.curToken.Type {
	case token.NUMBER:
		return p.parseIntegerLiteral()

	case token.IDENT:
		v := &ast.Variable{Token: p.curToken, Name: p.curToken.Lexeme, Index: -1}
		p.nextToken()
		return v

	case token.LPAREN:
		return p.parseForm()

	case token.EOF:
		p.addError(diagnostics.ErrP003, p.curToken, "unexpected end of input")
		return nil

	default:
		p.addError(diagnostics.ErrP001, p.curToken, "unexpected %q", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) parseIntegerLiteral() ast.Term {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.addError(diagnostics.ErrP001, tok, "could not parse %q as integer", tok.Lexeme)
		return nil
	}
	p.nextToken()
	return &ast.IntegerLiteral{Token: tok, Value: value}
}

// parseForm parses everything between '(' and ')'.
func (p *Parser) parseForm() ast.Term {
	lparen := p.curToken
	p.nextToken() // consume '('

	if p.curTokenIs(token.LAMBDA) {
		return p.parseLambda(lparen)
	}

	first := p.parseTerm()
	if first == nil {
		return nil
	}

	if p.curTokenIs(token.PLUS) || p.curTokenIs(token.STAR) {
		opTok := p.curToken
		p.nextToken()
		right := p.parseTerm()
		if right == nil {
			return nil
		}
		if !p.expectRParen(lparen) {
			return nil
		}
		return &ast.BinaryOp{Token: opTok, Op: opTok.Lexeme, Left: first, Right: right}
	}

	// Application: one or more further terms, folded left. A bare
	// parenthesized term is also accepted.
	result := first
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP003, lparen, "unterminated form: missing ')'")
			return nil
		}
		arg := p.parseTerm()
		if arg == nil {
			return nil
		}
		result = &ast.Application{Token: lparen, Fn: result, Arg: arg}
	}
	p.nextToken() // consume ')'
	return result
}

func (p *Parser) parseLambda(lparen token.Token) ast.Term {
	lambdaTok := p.curToken
	p.nextToken() // consume 'lambda'

	if !p.curTokenIs(token.IDENT) {
		p.addError(diagnostics.ErrP001, p.curToken, "expected parameter name after 'lambda', got %q", p.curToken.Lexeme)
		return nil
	}
	param := p.curToken.Lexeme
	p.nextToken()

	var paramType typesystem.Type
	if p.curTokenIs(token.COLON) {
		p.nextToken()
		paramType = p.parseType()
		if paramType == nil {
			return nil
		}
	}

	if !p.curTokenIs(token.DOT) {
		p.addError(diagnostics.ErrP001, p.curToken, "expected '.' after lambda parameter, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()

	body := p.parseTerm()
	if body == nil {
		return nil
	}
	if !p.expectRParen(lparen) {
		return nil
	}
	return &ast.Lambda{Token: lambdaTok, Param: param, ParamType: paramType, Body: body}
}

func (p *Parser) parseType() typesystem.Type {
	left := p.parseTypeAtom()
	if left == nil {
		return nil
	}
	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		right := p.parseType() // right-associative
		if right == nil {
			return nil
		}
		return typesystem.TArrow{From: left, To: right}
	}
	return left
}

func (p *Parser) parseTypeAtom() typesystem.Type {
	switch p.curToken.Type {
	case token.IDENT:
		t := typesystem.TCon{Name: p.curToken.Lexeme}
		p.nextToken()
		return t
	case token.LPAREN:
		p.nextToken()
		t := p.parseType()
		if t == nil {
			return nil
		}
		if !p.curTokenIs(token.RPAREN) {
			p.addError(diagnostics.ErrP002, p.curToken, "expected ')' in type, got %q", p.curToken.Lexeme)
			return nil
		}
		p.nextToken()
		return t
	default:
		p.addError(diagnostics.ErrP001, p.curToken, "expected type, got %q", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) expectRParen(lparen token.Token) bool {
	if p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP003, lparen, "unterminated form: missing ')'")
		return false
	}
	if !p.curTokenIs(token.RPAREN) {
		p.addError(diagnostics.ErrP002, p.curToken, "expected ')', got %q", p.curToken.Lexeme)
		return false
	}
	p.nextToken()
	return true
}
