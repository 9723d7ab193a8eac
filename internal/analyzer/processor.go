package analyzer

import (
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/pipeline"
)

// SemanticAnalyzerProcessor type-checks the decoded tree of a pipeline context.
type SemanticAnalyzerProcessor struct {
	// SkipBuiltins leaves the standard library out of the base environment.
	SkipBuiltins bool

	// ReadOnlyLoopVars rejects assignment to for loop variables.
	ReadOnlyLoopVars bool

	// Prelude, when set, adds host bindings to the base environment after
	// the standard library.
	Prelude func(e *env.Env)
}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if !ctx.Decoded {
		return ctx
	}

	e := env.New()
	if !sap.SkipBuiltins {
		RegisterBuiltins(e)
	}
	if sap.Prelude != nil {
		sap.Prelude(e)
	}

	analyzer := New(e)
	analyzer.File = ctx.FilePath
	analyzer.ReadOnlyLoopVars = sap.ReadOnlyLoopVars
	_, errors := analyzer.Check(ctx.AstRoot)

	ctx.TypeMap = analyzer.TypeMap // Export resolved types to context
	ctx.ResultType = analyzer.ResultType

	if len(errors) > 0 {
		ctx.Errors = append(ctx.Errors, errors...)
	}

	return ctx
}
