package astio

import (
	"errors"

	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/pipeline"
	"github.com/funvibe/tigersem/internal/token"
)

// DecodeProcessor turns ctx.SourceCode into ctx.AstRoot.
type DecodeProcessor struct{}

func (dp *DecodeProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	root, err := Decode(ctx.SourceCode, ctx.FilePath)
	if err != nil {
		tok := token.Token{}
		var de *DecodeError
		if errors.As(err, &de) {
			tok = de.Token()
			err = errors.New(de.Msg)
		}
		diag := diagnostics.NewError(diagnostics.ErrD001, tok, err.Error())
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.AstRoot = root
	ctx.Decoded = true
	return ctx
}
