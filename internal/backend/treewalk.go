package backend

import (
	"fmt"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/pipeline"
)

// TreeWalkBackend evaluates the named term tree directly, call by
// value, with environment-captured closures. It is the reference
// implementation the machine is checked against: both must agree on
// every integer result.
type TreeWalkBackend struct{}

// NewTreeWalk creates a new tree-walk backend.
func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

func (b *TreeWalkBackend) Name() string { return "tree" }

// ClosureObject is a lambda paired with its defining environment.
type ClosureObject struct {
	Lambda *ast.Lambda
	Env    *environment
}

func (o *ClosureObject) Inspect() string { return "<closure " + o.Lambda.String() + ">" }

// environment is a persistent name-to-value list; inner bindings
// shadow outer ones with the same name.
type environment struct {
	name  string
	value Object
	next  *environment
}

func (e *environment) bind(name string, value Object) *environment {
	return &environment{name: name, value: value, next: e}
}

func (e *environment) lookup(name string) (Object, bool) {
	for node := e; node != nil; node = node.next {
		if node.name == name {
			return node.value, true
		}
	}
	return nil, false
}

// Run evaluates the named tree under the declared globals. The
// resolver is not needed: names are looked up directly.
func (b *TreeWalkBackend) Run(ctx *pipeline.Context) (Object, error) {
	if ctx.AstRoot == nil {
		return nil, fmt.Errorf("no term to evaluate")
	}

	var env *environment
	for i, name := range ctx.Globals {
		env = env.bind(name, &IntObject{Value: ctx.GlobalValues[i]})
	}
	return eval(ctx.AstRoot, env)
}

func eval(term ast.Term, env *environment) (Object, error) {
	switch term := term.(type) {
	case *ast.IntegerLiteral:
		return &IntObject{Value: term.Value}, nil

	case *ast.Variable:
		v, ok := env.lookup(term.Name)
		if !ok {
			return nil, fmt.Errorf("unbound variable: %s", term.Name)
		}
		return v, nil

	case *ast.Lambda:
		// Definition-time capture, same timing as the machine's
		// CLOSURE instruction.
		return &ClosureObject{Lambda: term, Env: env}, nil

	case *ast.Application:
		// Argument before function, matching the compiled order.
		arg, err := eval(term.Arg, env)
		if err != nil {
			return nil, err
		}
		fn, err := eval(term.Fn, env)
		if err != nil {
			return nil, err
		}
		closure, ok := fn.(*ClosureObject)
		if !ok {
			return nil, fmt.Errorf("value %s is not callable", fn.Inspect())
		}
		return eval(closure.Lambda.Body, closure.Env.bind(closure.Lambda.Param, arg))

	case *ast.BinaryOp:
		left, err := evalInt(term.Left, env, term.Op)
		if err != nil {
			return nil, err
		}
		right, err := evalInt(term.Right, env, term.Op)
		if err != nil {
			return nil, err
		}
		if term.Op == "+" {
			return &IntObject{Value: left + right}, nil
		}
		return &IntObject{Value: left * right}, nil

	default:
		return nil, fmt.Errorf("unknown term %T", term)
	}
}

func evalInt(term ast.Term, env *environment, op string) (int64, error) {
	v, err := eval(term, env)
	if err != nil {
		return 0, err
	}
	i, ok := v.(*IntObject)
	if !ok {
		return 0, fmt.Errorf("%s requires integer operands, got %s", op, v.Inspect())
	}
	return i.Value, nil
}
