// Package resolver assigns lexical (de Bruijn) indices to variables.
//
// Every variable's index is its distance outward from the nearest
// enclosing binder of its name: 0 for the innermost binder, 1 for the
// next one out, and so on. Declared free identifiers sit below every
// lambda binder, in declaration order, matching the machine's
// pre-seeded environment.
package resolver

import (
	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
)

// Resolve rebuilds term with every Variable carrying its lexical index.
// globals lists the declared free identifiers in declaration order. The
// input tree is never mutated; unchanged branches are shared.
func Resolve(term ast.Term, globals []string) (ast.Term, *diagnostics.DiagnosticError) {
	scope := make(map[string]int, len(globals))
	for i, name := range globals {
		scope[name] = i
	}
	return resolve(term, len(globals), scope)
}

// resolve threads the binding level through the descent. level is the
// number of binders (globals included) enclosing the current position;
// scope maps each visible name to the level at which it was bound.
func resolve(term ast.Term, level int, scope map[string]int) (ast.Term, *diagnostics.DiagnosticError) {
	switch term := term.(type) {
	case *ast.Variable:
		bound, ok := scope[term.Name]
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrR001, term.Token, "unbound variable: %s", term.Name)
		}
		return &ast.Variable{Token: term.Token, Name: term.Name, Index: level - bound - 1}, nil

	case *ast.IntegerLiteral:
		return term, nil

	case *ast.Lambda:
		// Shadow without touching the caller's scope.
		inner := make(map[string]int, len(scope)+1)
		for k, v := range scope {
			inner[k] = v
		}
		inner[term.Param] = level
		body, err := resolve(term.Body, level+1, inner)
		if err != nil {
			return nil, err
		}
		return &ast.Lambda{Token: term.Token, Param: term.Param, ParamType: term.ParamType, Body: body}, nil

	case *ast.Application:
		fn, err := resolve(term.Fn, level, scope)
		if err != nil {
			return nil, err
		}
		arg, err := resolve(term.Arg, level, scope)
		if err != nil {
			return nil, err
		}
		return &ast.Application{Token: term.Token, Fn: fn, Arg: arg}, nil

	case *ast.BinaryOp:
		left, err := resolve(term.Left, level, scope)
		if err != nil {
			return nil, err
		}
		right, err := resolve(term.Right, level, scope)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryOp{Token: term.Token, Op: term.Op, Left: left, Right: right}, nil

	default:
		return term, nil
	}
}
