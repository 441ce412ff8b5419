package parser

import (
	"testing"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/lexer"
	"github.com/funvibe/cam/internal/typesystem"
)

func parseTerm(t *testing.T, input string) ast.Term {
	t.Helper()
	term, errs := New(lexer.New(input).Tokens()).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse error: %s", errs[0].Error())
	}
	return term
}

func expectError(t *testing.T, input string, code diagnostics.ErrorCode) {
	t.Helper()
	_, errs := New(lexer.New(input).Tokens()).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected error %s for %q, got none", code, input)
	}
	if errs[0].Code != code {
		t.Fatalf("wrong error code for %q. got=%s (%s), want=%s", input, errs[0].Code, errs[0].Message, code)
	}
}

func TestParseNumber(t *testing.T) {
	term := parseTerm(t, "42")
	lit, ok := term.(*ast.IntegerLiteral)
	if !ok {
		t.Fatalf("term is not IntegerLiteral. got=%T", term)
	}
	if lit.Value != 42 {
		t.Errorf("value: got=%d, want=42", lit.Value)
	}
}

func TestParseVariable(t *testing.T) {
	term := parseTerm(t, "x")
	v, ok := term.(*ast.Variable)
	if !ok {
		t.Fatalf("term is not Variable. got=%T", term)
	}
	if v.Name != "x" {
		t.Errorf("name: got=%q, want=%q", v.Name, "x")
	}
	if v.Index != -1 {
		t.Errorf("index before resolution: got=%d, want=-1", v.Index)
	}
}

func TestParseLambda(t *testing.T) {
	term := parseTerm(t, "(lambda x. x)")
	lam, ok := term.(*ast.Lambda)
	if !ok {
		t.Fatalf("term is not Lambda. got=%T", term)
	}
	if lam.Param != "x" {
		t.Errorf("param: got=%q, want=%q", lam.Param, "x")
	}
	if lam.ParamType != nil {
		t.Errorf("param type: got=%v, want=nil", lam.ParamType)
	}
	if _, ok := lam.Body.(*ast.Variable); !ok {
		t.Errorf("body is not Variable. got=%T", lam.Body)
	}
}

func TestParseAnnotatedLambda(t *testing.T) {
	term := parseTerm(t, "(lambda x:Bool. x)")
	lam := term.(*ast.Lambda)
	tcon, ok := lam.ParamType.(typesystem.TCon)
	if !ok {
		t.Fatalf("param type is not TCon. got=%T", lam.ParamType)
	}
	if tcon.Name != "Bool" {
		t.Errorf("param type: got=%q, want=%q", tcon.Name, "Bool")
	}
}

func TestParseArrowAnnotation(t *testing.T) {
	term := parseTerm(t, "(lambda f:Int -> Int. (f 1))")
	lam := term.(*ast.Lambda)
	arrow, ok := lam.ParamType.(typesystem.TArrow)
	if !ok {
		t.Fatalf("param type is not TArrow. got=%T", lam.ParamType)
	}
	if arrow.String() != "Int -> Int" {
		t.Errorf("param type: got=%q, want=%q", arrow.String(), "Int -> Int")
	}
}

func TestParseApplication(t *testing.T) {
	term := parseTerm(t, "((lambda x. x) 42)")
	app, ok := term.(*ast.Application)
	if !ok {
		t.Fatalf("term is not Application. got=%T", term)
	}
	if _, ok := app.Fn.(*ast.Lambda); !ok {
		t.Errorf("fn is not Lambda. got=%T", app.Fn)
	}
	if _, ok := app.Arg.(*ast.IntegerLiteral); !ok {
		t.Errorf("arg is not IntegerLiteral. got=%T", app.Arg)
	}
}

func TestApplicationFoldsLeft(t *testing.T) {
	term := parseTerm(t, "(f a b)")
	outer, ok := term.(*ast.Application)
	if !ok {
		t.Fatalf("term is not Application. got=%T", term)
	}
	inner, ok := outer.Fn.(*ast.Application)
	if !ok {
		t.Fatalf("fn is not Application. got=%T", outer.Fn)
	}
	if inner.Fn.(*ast.Variable).Name != "f" {
		t.Errorf("innermost fn: got=%q, want=%q", inner.Fn.String(), "f")
	}
	if outer.Arg.(*ast.Variable).Name != "b" {
		t.Errorf("outer arg: got=%q, want=%q", outer.Arg.String(), "b")
	}
}

func TestParseBinaryOps(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"(1 + 2)", "+"},
		{"(3 * 4)", "*"},
	}
	for _, tt := range tests {
		term := parseTerm(t, tt.input)
		binop, ok := term.(*ast.BinaryOp)
		if !ok {
			t.Fatalf("%q: term is not BinaryOp. got=%T", tt.input, term)
		}
		if binop.Op != tt.op {
			t.Errorf("%q: op got=%q, want=%q", tt.input, binop.Op, tt.op)
		}
	}
}

func TestParseNestedTerm(t *testing.T) {
	term := parseTerm(t, "((lambda x. ((lambda y. (x + y)) 10)) 32)")
	want := "((lambda x. ((lambda y. (x + y)) 10)) 32)"
	if term.String() != want {
		t.Errorf("round-trip: got=%q, want=%q", term.String(), want)
	}
}

func TestParseGroupedTerm(t *testing.T) {
	term := parseTerm(t, "(x)")
	if _, ok := term.(*ast.Variable); !ok {
		t.Fatalf("grouped term is not Variable. got=%T", term)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.ErrorCode
	}{
		{")", diagnostics.ErrP001},
		{"(lambda 1. x)", diagnostics.ErrP001},
		{"(lambda x x)", diagnostics.ErrP001},
		{"(lambda x. x", diagnostics.ErrP003},
		{"(f a", diagnostics.ErrP003},
		{"", diagnostics.ErrP003},
		{"x y", diagnostics.ErrP004},
		{"42 43", diagnostics.ErrP004},
		{"(lambda x:. x)", diagnostics.ErrP001},
	}
	for _, tt := range tests {
		expectError(t, tt.input, tt.code)
	}
}

func TestParseTypeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Int", "Int"},
		{"Bool -> Bool", "Bool -> Bool"},
		{"Int -> Int -> Int", "Int -> Int -> Int"},
		{"(Int -> Int) -> Int", "(Int -> Int) -> Int"},
	}
	for _, tt := range tests {
		typ, err := ParseTypeString(tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %s", tt.input, err)
		}
		if typ.String() != tt.want {
			t.Errorf("%q: got=%q, want=%q", tt.input, typ.String(), tt.want)
		}
	}

	if _, err := ParseTypeString("Int ->"); err == nil {
		t.Errorf("expected error for %q", "Int ->")
	}
	if _, err := ParseTypeString("Int Bool"); err == nil {
		t.Errorf("expected error for trailing input")
	}
}
