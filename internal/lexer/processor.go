package lexer

import "github.com/funvibe/cam/internal/pipeline"

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	ctx.Tokens = New(ctx.Source).Tokens()
	return ctx
}
