// Package pipeline wires the compilation stages together. Each stage is
// a Processor that reads and extends a shared Context.
package pipeline

import (
	"github.com/funvibe/cam/internal/ast"
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/token"
	"github.com/funvibe/cam/internal/typesystem"
)

// Context carries the intermediate results of a single compilation.
type Context struct {
	Source   string
	FilePath string

	Tokens       []token.Token
	AstRoot      ast.Term
	Resolved     ast.Term
	InferredType typesystem.Type

	// TypingContext types the declared free identifiers (for inference).
	TypingContext map[string]typesystem.Type

	// Globals names the declared free identifiers in declaration order;
	// the resolver seeds them below every lambda binder and the machine
	// pre-seeds its environment to match.
	Globals []string

	// GlobalValues holds the machine values of the declared free
	// identifiers, aligned with Globals.
	GlobalValues []int64

	Errors []*diagnostics.DiagnosticError
}

// NewContext creates a context for the given source text.
func NewContext(source string) *Context {
	return &Context{Source: source}
}

// Failed reports whether any stage recorded a diagnostic.
func (ctx *Context) Failed() bool {
	return len(ctx.Errors) > 0
}

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. Later stages skip themselves when an
// earlier stage failed but the pipeline keeps going, so a harness can
// collect diagnostics from every stage in one pass.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
