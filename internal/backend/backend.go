// Package backend provides an interface for different execution
// backends. This allows switching between the tree-walk interpreter
// and the bytecode machine.
package backend

import (
	"fmt"

	"github.com/funvibe/cam/internal/pipeline"
)

// Object is the result of executing a term.
type Object interface {
	Inspect() string
}

// IntObject is an integer result.
type IntObject struct {
	Value int64
}

func (o *IntObject) Inspect() string { return fmt.Sprintf("%d", o.Value) }

// Backend is the interface for execution backends.
type Backend interface {
	// Run executes the program from the pipeline context.
	Run(ctx *pipeline.Context) (Object, error)

	// Name returns the backend name for display.
	Name() string
}

// New returns the backend with the given name ("vm" or "tree").
func New(name string) (Backend, error) {
	switch name {
	case "vm":
		return NewVM(), nil
	case "tree":
		return NewTreeWalk(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}
