package store

import (
	"log"

	"github.com/funvibe/tigersem/internal/pipeline"
)

// Recorder is a pipeline stage that records each run it sees. Recording
// failures are logged and do not affect the run.
type Recorder struct {
	Store *Store
}

func (r *Recorder) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if r.Store == nil {
		return ctx
	}
	id, err := r.Store.RecordRun(ctx.Context, ctx.FilePath, ctx.Errors)
	if err != nil {
		log.Printf("store: %v", err)
		return ctx
	}
	ctx.RunID = id.String()
	return ctx
}
