package vm

import (
	"fmt"

	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
)

// Compiler turns a resolved term tree into a Chunk. It tracks the
// binder depth at every point so an out-of-range variable index is a
// compile-time error, never a runtime surprise.
type Compiler struct {
	chunk   *Chunk
	globals int // pre-seeded free bindings below every lambda binder
}

// NewCompiler creates a compiler. numGlobals is the number of declared
// free identifiers the machine's initial environment will carry.
func NewCompiler(numGlobals int) *Compiler {
	return &Compiler{chunk: NewChunk(), globals: numGlobals}
}

// Compile compiles a resolved term. The term must have passed through
// the resolver: an unresolved variable is an internal error.
func (c *Compiler) Compile(term ast.Term) (*Chunk, error) {
	if err := c.compile(term, 0); err != nil {
		return nil, err
	}
	return c.chunk, nil
}

// compile emits code for term with depth enclosing lambda binders.
func (c *Compiler) compile(term ast.Term, depth int) error {
	switch term := term.(type) {
	case *ast.Variable:
		if term.Index < 0 {
			return fmt.Errorf("compiler: unresolved variable %q", term.Name)
		}
		if term.Index >= depth+c.globals {
			return diagnostics.NewError(diagnostics.ErrC001, term.Token,
				"variable %q: index %d out of scope (depth %d, %d globals)",
				term.Name, term.Index, depth, c.globals)
		}
		line := term.Token.Line
		c.chunk.WriteOp(OP_ACCESS, line)
		c.chunk.WriteU16(term.Index, line)
		return nil

	case *ast.IntegerLiteral:
		line := term.Token.Line
		idx := c.chunk.AddConstant(term.Value)
		c.chunk.WriteOp(OP_CONST, line)
		c.chunk.WriteU16(idx, line)
		return nil

	case *ast.Lambda:
		line := term.Token.Line
		// The body is laid out inline: CLOSURE skips over it at run
		// time and records its entry point. Length is patched once the
		// body size is known.
		c.chunk.WriteOp(OP_CLOSURE, line)
		operandAt := c.chunk.Len()
		c.chunk.WriteU16(0, line)

		bodyStart := c.chunk.Len()
		c.chunk.WriteOp(OP_GRAB, line)
		if err := c.compile(term.Body, depth+1); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_RETURN, line)
		c.chunk.PatchU16(operandAt, c.chunk.Len()-bodyStart)
		return nil

	case *ast.Application:
		// Argument first, then function, then APPLY. The machine pops
		// in the reverse order; changing this breaks closure capture.
		if err := c.compile(term.Arg, depth); err != nil {
			return err
		}
		if err := c.compile(term.Fn, depth); err != nil {
			return err
		}
		c.chunk.WriteOp(OP_APPLY, term.Token.Line)
		return nil

	case *ast.BinaryOp:
		if err := c.compile(term.Left, depth); err != nil {
			return err
		}
		if err := c.compile(term.Right, depth); err != nil {
			return err
		}
		switch term.Op {
		case "+":
			c.chunk.WriteOp(OP_ADD, term.Token.Line)
		case "*":
			c.chunk.WriteOp(OP_MUL, term.Token.Line)
		default:
			return fmt.Errorf("compiler: unknown operator %q", term.Op)
		}
		return nil

	default:
		return fmt.Errorf("compiler: unknown term %T", term)
	}
}
