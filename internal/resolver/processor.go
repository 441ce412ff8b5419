package resolver

import "github.com/funvibe/cam/internal/pipeline"

type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	resolved, err := Resolve(ctx.AstRoot, ctx.Globals)
	if err != nil {
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Resolved = resolved
	return ctx
}
