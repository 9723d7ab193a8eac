package server

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/token"
)

// Result is the decoded answer to a Check call.
type Result struct {
	OK          bool
	ResultType  string
	RunID       string
	Diagnostics []*diagnostics.DiagnosticError
}

// Check sends source to a Checker service over conn.
func Check(ctx context.Context, conn grpc.ClientConnInterface, file string, source []byte) (*Result, error) {
	md, err := checkMethod()
	if err != nil {
		return nil, err
	}

	req := dynamic.NewMessage(md.GetInputType())
	if err := setField(req, "file", file); err != nil {
		return nil, err
	}
	if err := setField(req, "source", string(source)); err != nil {
		return nil, err
	}

	resp := dynamic.NewMessage(md.GetOutputType())
	if err := conn.Invoke(ctx, CheckMethod, req, resp); err != nil {
		return nil, fmt.Errorf("calling %s: %w", CheckMethod, err)
	}

	res := &Result{
		OK:         boolField(resp, "ok"),
		ResultType: stringField(resp, "result_type"),
		RunID:      stringField(resp, "run_id"),
	}
	for _, dm := range repeatedMessages(resp, "diagnostics") {
		tok := token.Token{Line: intField(dm, "line"), Column: intField(dm, "column")}
		d := diagnostics.NewError(diagnostics.ErrorCode(stringField(dm, "code")), tok, stringField(dm, "message"))
		d.File = stringField(dm, "file")
		res.Diagnostics = append(res.Diagnostics, d)
	}
	return res, nil
}
