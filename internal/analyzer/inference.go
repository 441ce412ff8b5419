// Package analyzer implements syntax-directed type inference over the
// named term tree, using unification from the typesystem package.
package analyzer

import (
	"fmt"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/token"
	"github.com/funvibe/cam/internal/typesystem"
)

// Context maps free identifiers to their declared types.
type Context map[string]typesystem.Type

// UnboundVariableError reports a variable with no binder and no
// context entry.
type UnboundVariableError struct {
	Name  string
	Token token.Token
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// ApplicationError wraps a unification failure at an application site
// with the inferred function and argument types for diagnostics. Token
// locates the failing application in the source.
type ApplicationError struct {
	FnType  typesystem.Type
	ArgType typesystem.Type
	Token   token.Token
	Cause   error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("cannot apply %s to %s: %s", e.FnType, e.ArgType, e.Cause)
}

func (e *ApplicationError) Unwrap() error { return e.Cause }

// OperandError wraps a unification failure on an arithmetic operand.
type OperandError struct {
	Op    string
	Type  typesystem.Type
	Token token.Token
	Cause error
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("operand of %s must be Int, got %s", e.Op, e.Type)
}

func (e *OperandError) Unwrap() error { return e.Cause }

// Inferencer runs type inference. It owns the type-variable generator
// and the substitution built during a run, so independent runs never
// share state.
type Inferencer struct {
	gen  *typesystem.TVarGen
	subs typesystem.Subst
}

// New creates an Inferencer with a fresh generator.
func New() *Inferencer {
	return NewWithGen(typesystem.NewTVarGen())
}

// NewWithGen creates an Inferencer around an existing generator. Useful
// when the caller wants deterministic ids across a controlled sequence
// of runs.
func NewWithGen(gen *typesystem.TVarGen) *Inferencer {
	return &Inferencer{gen: gen, subs: make(typesystem.Subst)}
}

// Infer computes the type of term under ctx. The returned type is fully
// substituted. Lambda parameters without an annotation get a fresh
// type variable.
func (inf *Inferencer) Infer(term ast.Term, ctx Context) (typesystem.Type, error) {
	t, err := inf.infer(term, ctx)
	if err != nil {
		return nil, err
	}
	return t.Apply(inf.subs), nil
}

func (inf *Inferencer) infer(term ast.Term, ctx Context) (typesystem.Type, error) {
	switch term := term.(type) {
	case *ast.IntegerLiteral:
		return typesystem.IntType, nil

	case *ast.Variable:
		t, ok := ctx[term.Name]
		if !ok {
			return nil, &UnboundVariableError{Name: term.Name, Token: term.Token}
		}
		return t, nil

	case *ast.Lambda:
		paramType := term.ParamType
		if paramType == nil {
			paramType = inf.gen.Fresh()
		}
		// Extend a copy: the caller's context must not see the binder.
		inner := make(Context, len(ctx)+1)
		for k, v := range ctx {
			inner[k] = v
		}
		inner[term.Param] = paramType
		bodyType, err := inf.infer(term.Body, inner)
		if err != nil {
			return nil, err
		}
		return typesystem.TArrow{From: paramType, To: bodyType}, nil

	case *ast.Application:
		fnType, err := inf.infer(term.Fn, ctx)
		if err != nil {
			return nil, err
		}
		argType, err := inf.infer(term.Arg, ctx)
		if err != nil {
			return nil, err
		}
		result := inf.gen.Fresh()
		want := typesystem.TArrow{From: argType, To: result}
		if err := typesystem.Unify(fnType, want, inf.subs); err != nil {
			return nil, &ApplicationError{
				FnType:  fnType.Apply(inf.subs),
				ArgType: argType.Apply(inf.subs),
				Token:   term.Token,
				Cause:   err,
			}
		}
		return result.Apply(inf.subs), nil

	case *ast.BinaryOp:
		leftType, err := inf.infer(term.Left, ctx)
		if err != nil {
			return nil, err
		}
		if err := typesystem.Unify(leftType, typesystem.IntType, inf.subs); err != nil {
			return nil, &OperandError{Op: term.Op, Type: leftType.Apply(inf.subs), Token: term.Left.GetToken(), Cause: err}
		}
		rightType, err := inf.infer(term.Right, ctx)
		if err != nil {
			return nil, err
		}
		if err := typesystem.Unify(rightType, typesystem.IntType, inf.subs); err != nil {
			return nil, &OperandError{Op: term.Op, Type: rightType.Apply(inf.subs), Token: term.Right.GetToken(), Cause: err}
		}
		return typesystem.IntType, nil

	default:
		return nil, fmt.Errorf("analyzer: unknown term %T", term)
	}
}
