package pipeline

import (
	"context"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries the state of one check run between stages.
type PipelineContext struct {
	Context    context.Context
	FilePath   string
	SourceCode []byte

	AstRoot    ast.Exp
	Decoded    bool                         // AstRoot holds a successfully decoded tree (possibly empty)
	TypeMap    map[ast.Exp]typesystem.Type  // Resolved type of every checked expression
	ResultType typesystem.Type              // Type of the whole program
	Errors     []*diagnostics.DiagnosticError
	RunID      string // Set when the run was recorded
}

// NewPipelineContext creates a context for checking source.
func NewPipelineContext(source []byte) *PipelineContext {
	return &PipelineContext{
		Context:    context.Background(),
		SourceCode: source,
	}
}

// HasErrors reports whether any stage produced a diagnostic.
func (c *PipelineContext) HasErrors() bool {
	return len(c.Errors) > 0
}
