package resolver

import (
	"testing"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/lexer"
	"github.com/funvibe/cam/internal/parser"
	"github.com/funvibe/cam/internal/prettyprinter"
)

func parse(t *testing.T, input string) ast.Term {
	t.Helper()
	term, errs := parser.New(lexer.New(input).Tokens()).Parse()
	if len(errs) > 0 {
		t.Fatalf("parse error: %s", errs[0].Error())
	}
	return term
}

func mustResolve(t *testing.T, input string, globals ...string) ast.Term {
	t.Helper()
	resolved, err := Resolve(parse(t, input), globals)
	if err != nil {
		t.Fatalf("resolve error: %s", err.Error())
	}
	return resolved
}

func TestResolveIdentity(t *testing.T) {
	resolved := mustResolve(t, "(lambda x. x)")
	got := prettyprinter.Indexed(resolved)
	if got != `(\. #0)` {
		t.Errorf("got=%q, want=%q", got, `(\. #0)`)
	}
}

func TestResolveNestedScopes(t *testing.T) {
	// x is one binder out from y's body.
	resolved := mustResolve(t, "(lambda x. (lambda y. (x + y)))")
	got := prettyprinter.Indexed(resolved)
	if got != `(\. (\. (#1 + #0)))` {
		t.Errorf("got=%q, want=%q", got, `(\. (\. (#1 + #0)))`)
	}
}

func TestResolveShadowing(t *testing.T) {
	// The inner x shadows the outer one.
	resolved := mustResolve(t, "(lambda x. (lambda x. x))")
	got := prettyprinter.Indexed(resolved)
	if got != `(\. (\. #0))` {
		t.Errorf("got=%q, want=%q", got, `(\. (\. #0))`)
	}
}

func TestResolveShadowingDoesNotLeak(t *testing.T) {
	// After the inner binder's scope ends, the outer x is visible again.
	resolved := mustResolve(t, "(lambda x. (((lambda x. x) 1) + x))")
	got := prettyprinter.Indexed(resolved)
	if got != `(\. (((\. #0) 1) + #0))` {
		t.Errorf("got=%q, want=%q", got, `(\. (((\. #0) 1) + #0))`)
	}
}

func TestResolveGlobals(t *testing.T) {
	// Globals sit below every lambda binder, in declaration order:
	// the later-declared global is closer to the top.
	resolved := mustResolve(t, "(lambda x. ((x + a) + b))", "a", "b")
	got := prettyprinter.Indexed(resolved)
	if got != `(\. ((#0 + #2) + #1))` {
		t.Errorf("got=%q, want=%q", got, `(\. ((#0 + #2) + #1))`)
	}
}

func TestResolveTopLevelGlobal(t *testing.T) {
	resolved := mustResolve(t, "y", "y")
	v := resolved.(*ast.Variable)
	if v.Index != 0 {
		t.Errorf("index: got=%d, want=0", v.Index)
	}
}

func TestUnboundVariable(t *testing.T) {
	_, err := Resolve(parse(t, "x"), nil)
	if err == nil {
		t.Fatalf("expected unbound variable error")
	}
	if err.Code != diagnostics.ErrR001 {
		t.Errorf("error code: got=%s, want=%s", err.Code, diagnostics.ErrR001)
	}
}

func TestUnboundVariableInsideLambda(t *testing.T) {
	_, err := Resolve(parse(t, "(lambda x. y)"), nil)
	if err == nil {
		t.Fatalf("expected unbound variable error")
	}
	if err.Code != diagnostics.ErrR001 {
		t.Errorf("error code: got=%s, want=%s", err.Code, diagnostics.ErrR001)
	}
}

func TestResolveLeavesInputUntouched(t *testing.T) {
	term := parse(t, "(lambda x. x)")
	if _, err := Resolve(term, nil); err != nil {
		t.Fatalf("resolve error: %s", err.Error())
	}

	// The original tree must still be unresolved.
	lam := term.(*ast.Lambda)
	if lam.Body.(*ast.Variable).Index != -1 {
		t.Errorf("input tree was mutated: index=%d", lam.Body.(*ast.Variable).Index)
	}
}

func TestResolveDeterminism(t *testing.T) {
	const input = "((lambda x. ((lambda y. (x + y)) 10)) 32)"

	first := prettyprinter.Indexed(mustResolve(t, input))
	for i := 0; i < 10; i++ {
		again := prettyprinter.Indexed(mustResolve(t, input))
		if again != first {
			t.Fatalf("run %d differs: got=%q, want=%q", i, again, first)
		}
	}
}
