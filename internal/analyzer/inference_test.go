package analyzer

import (
	"errors"
	"testing"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/lexer"
	"github.com/funvibe/cam/internal/parser"
	"github.com/funvibe/cam/internal/typesystem"
)

func parse(t *testing.T, input string) ast.Term {
	t.Helper()
	term, errs := parser.New(lexer.New(input).Tokens()).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse error: %s", errs[0].Error())
	}
	return term
}

func inferType(t *testing.T, input string, ctx Context) typesystem.Type {
	t.Helper()
	typ, err := New().Infer(parse(t, input), ctx)
	if err != nil {
		t.Fatalf("inference error: %s", err)
	}
	return typ
}

func boolContext() Context {
	return Context{
		"true":  typesystem.BoolType,
		"false": typesystem.BoolType,
	}
}

func TestInferIntegerLiteral(t *testing.T) {
	if got := inferType(t, "42", nil); got.String() != "Int" {
		t.Errorf("got=%s, want=Int", got)
	}
}

func TestInferContextVariable(t *testing.T) {
	if got := inferType(t, "true", boolContext()); got.String() != "Bool" {
		t.Errorf("got=%s, want=Bool", got)
	}
}

func TestInferAnnotatedIdentity(t *testing.T) {
	got := inferType(t, "(lambda x:Bool. x)", nil)
	if got.String() != "Bool -> Bool" {
		t.Errorf("got=%s, want=Bool -> Bool", got)
	}
}

func TestInferIdentityApplication(t *testing.T) {
	got := inferType(t, "((lambda x:Bool. x) true)", boolContext())
	if got.String() != "Bool" {
		t.Errorf("got=%s, want=Bool", got)
	}
}

func TestInferMismatchedApplication(t *testing.T) {
	_, err := New().Infer(parse(t, "((lambda x:Bool. x) 0)"), boolContext())
	if err == nil {
		t.Fatalf("expected type mismatch")
	}

	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not ApplicationError: %T (%s)", err, err)
	}
	if appErr.FnType.String() != "Bool -> Bool" {
		t.Errorf("function type in error: got=%s, want=Bool -> Bool", appErr.FnType)
	}
	if appErr.ArgType.String() != "Int" {
		t.Errorf("argument type in error: got=%s, want=Int", appErr.ArgType)
	}

	var mismatch *typesystem.MismatchError
	if !errors.As(err, &mismatch) {
		t.Errorf("cause is not MismatchError: %T", errors.Unwrap(err))
	}
}

func TestInferUnannotatedIdentity(t *testing.T) {
	got := inferType(t, "(lambda x. x)", nil)
	if got.String() != "t0 -> t0" {
		t.Errorf("got=%s, want=t0 -> t0", got)
	}
}

func TestInferHigherOrder(t *testing.T) {
	// (lambda f:Bool -> Bool. (f true)) applied to the Bool identity.
	got := inferType(t, "((lambda f:Bool -> Bool. (f true)) (lambda x:Bool. x))", boolContext())
	if got.String() != "Bool" {
		t.Errorf("got=%s, want=Bool", got)
	}
}

func TestInferArithmetic(t *testing.T) {
	got := inferType(t, "((lambda x. (x + 1)) 41)", nil)
	if got.String() != "Int" {
		t.Errorf("got=%s, want=Int", got)
	}
}

func TestInferArithmeticRejectsBool(t *testing.T) {
	_, err := New().Infer(parse(t, "(true + 1)"), boolContext())
	if err == nil {
		t.Fatalf("expected type mismatch for Bool operand")
	}
}

func TestInferSelfApplicationFails(t *testing.T) {
	// (lambda x:Bool. (x x)): Bool is not an arrow, so the inner
	// application cannot unify.
	_, err := New().Infer(parse(t, "(lambda x:Bool. (x x))"), nil)
	if err == nil {
		t.Fatalf("expected type error for self-application")
	}
}

func TestInferUnannotatedSelfApplicationFails(t *testing.T) {
	// (lambda x. (x x)): the parameter would need the infinite type
	// t0 = t0 -> t1. Inference must reject it, not chase the cyclic
	// substitution until the stack runs out.
	_, err := New().Infer(parse(t, "(lambda x. (x x))"), nil)
	if err == nil {
		t.Fatalf("expected type error for unannotated self-application")
	}
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not ApplicationError: %T (%s)", err, err)
	}
	var mismatch *typesystem.MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("cause is not MismatchError: %T", errors.Unwrap(err))
	}
}

func TestInferUnboundVariable(t *testing.T) {
	_, err := New().Infer(parse(t, "z"), nil)
	if err == nil {
		t.Fatalf("expected unbound variable error")
	}
	var unbound *UnboundVariableError
	if !errors.As(err, &unbound) {
		t.Fatalf("error is not UnboundVariableError: %T", err)
	}
	if unbound.Name != "z" {
		t.Errorf("name: got=%q, want=%q", unbound.Name, "z")
	}
}

func TestInferErrorLocatesFailingSubterm(t *testing.T) {
	// The mismatch is in the inner application on line 2, not at the
	// root lambda on line 1.
	input := "(lambda f:Bool -> Bool.\n  (f 1))"
	_, err := New().Infer(parse(t, input), nil)
	if err == nil {
		t.Fatalf("expected type mismatch")
	}
	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("error is not ApplicationError: %T (%s)", err, err)
	}
	if appErr.Token.Line != 2 {
		t.Errorf("error line: got=%d, want=2", appErr.Token.Line)
	}
}

func TestInferOperandErrorLocatesOperand(t *testing.T) {
	input := "(1 +\n  true)"
	_, err := New().Infer(parse(t, input), boolContext())
	if err == nil {
		t.Fatalf("expected type mismatch")
	}
	var opErr *OperandError
	if !errors.As(err, &opErr) {
		t.Fatalf("error is not OperandError: %T (%s)", err, err)
	}
	if opErr.Op != "+" || opErr.Token.Line != 2 {
		t.Errorf("operand error: op=%q line=%d, want op=+ line=2", opErr.Op, opErr.Token.Line)
	}
}

func TestInferDeterministicAcrossRuns(t *testing.T) {
	// Independent inferencers produce identical variable ids.
	const input = "(lambda f. (lambda x. (f x)))"
	first, err := New().Infer(parse(t, input), nil)
	if err != nil {
		t.Fatalf("inference error: %s", err)
	}
	second, err := New().Infer(parse(t, input), nil)
	if err != nil {
		t.Fatalf("inference error: %s", err)
	}
	if first.String() != second.String() {
		t.Errorf("runs differ: %s vs %s", first, second)
	}
}

func TestInferAfterGeneratorReset(t *testing.T) {
	const input = "(lambda x. x)"
	gen := typesystem.NewTVarGen()

	first, err := NewWithGen(gen).Infer(parse(t, input), nil)
	if err != nil {
		t.Fatalf("inference error: %s", err)
	}

	gen.Reset()
	second, err := NewWithGen(gen).Infer(parse(t, input), nil)
	if err != nil {
		t.Fatalf("inference error: %s", err)
	}

	if first.String() != second.String() {
		t.Errorf("reset runs differ: %s vs %s", first, second)
	}
}
