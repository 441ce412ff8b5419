package analyzer

import (
	"github.com/funvibe/cam/internal/diagnostics"
	"github.com/funvibe/cam/internal/pipeline"
)

// TypeProcessor runs inference over the named tree. It is optional: the
// pipeline only includes it when type checking is requested.
type TypeProcessor struct{}

func (tp *TypeProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}

	typingCtx := make(Context, len(ctx.TypingContext))
	for name, t := range ctx.TypingContext {
		typingCtx[name] = t
	}

	inferred, err := New().Infer(ctx.AstRoot, typingCtx)
	if err != nil {
		// Point the diagnostic at the failing sub-term, not the root.
		code := diagnostics.ErrT001
		tok := ctx.AstRoot.GetToken()
		switch err := err.(type) {
		case *UnboundVariableError:
			code = diagnostics.ErrR001
			tok = err.Token
		case *ApplicationError:
			tok = err.Token
		case *OperandError:
			tok = err.Token
		}
		diag := diagnostics.NewError(code, tok, "%s", err.Error())
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.InferredType = inferred
	return ctx
}
