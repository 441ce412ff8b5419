package backend

import (
	"fmt"

	"github.com/funvibe/cam/internal/pipeline"
	"github.com/funvibe/cam/internal/vm"
)

// VMBackend executes programs on the bytecode machine.
type VMBackend struct{}

// NewVM creates a new VM backend.
func NewVM() *VMBackend {
	return &VMBackend{}
}

func (b *VMBackend) Name() string { return "vm" }

// VMClosureObject wraps a closure result from the machine. Opaque to
// callers beyond its rendering.
type VMClosureObject struct {
	Value vm.Value
}

func (o *VMClosureObject) Inspect() string { return o.Value.String() }

// Run compiles the resolved term and executes it.
func (b *VMBackend) Run(ctx *pipeline.Context) (Object, error) {
	if ctx.Resolved == nil {
		return nil, fmt.Errorf("no resolved term to compile")
	}

	chunk, err := vm.NewCompiler(len(ctx.Globals)).Compile(ctx.Resolved)
	if err != nil {
		return nil, err
	}

	values := make([]vm.Value, len(ctx.GlobalValues))
	for i, v := range ctx.GlobalValues {
		values[i] = vm.IntVal(v)
	}

	result, err := vm.New().Run(chunk, vm.NewEnv(values...))
	if err != nil {
		return nil, err
	}
	if result.IsInt() {
		return &IntObject{Value: result.AsInt()}, nil
	}
	return &VMClosureObject{Value: result}, nil
}
