package parser

import (
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/pipeline"
	"github.com/funvibe/cam/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Tokens == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	root, errs := New(ctx.Tokens).Parse()
	ctx.AstRoot = root
	ctx.Errors = append(ctx.Errors, errs...)

	for _, err := range ctx.Errors {
		if err.File == "" {
			err.File = ctx.FilePath
		}
	}
	return ctx
}
