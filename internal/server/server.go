// Package server exposes the checker as a gRPC service.
//
// The service is described by an embedded .proto file and served with
// dynamic messages, so no generated code is needed. Server reflection is
// registered alongside it for tools such as grpcurl.
package server

import (
	"context"
	"errors"
	"log"
	"net"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/funvibe/tigersem/internal/analyzer"
	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/pipeline"
	"github.com/funvibe/tigersem/internal/store"
)

// Options configure a Server.
type Options struct {
	SkipBuiltins     bool
	ReadOnlyLoopVars bool

	// Store records every check when set.
	Store *store.Store
}

// Server answers Check requests.
type Server struct {
	opts   Options
	method *desc.MethodDescriptor
}

// New prepares a server. It fails only if the embedded service definition
// cannot be loaded.
func New(opts Options) (*Server, error) {
	md, err := checkMethod()
	if err != nil {
		return nil, err
	}
	return &Server{opts: opts, method: md}, nil
}

// Register adds the Checker service and server reflection to gs.
func (s *Server) Register(gs *grpc.Server) {
	sd := s.method.GetService()
	gs.RegisterService(&grpc.ServiceDesc{
		ServiceName: sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{{
			MethodName: s.method.GetName(),
			Handler:    s.handleCheck,
		}},
		Streams:  []grpc.StreamDesc{},
		Metadata: sd.GetFile().GetName(),
	}, s)
	reflection.Register(gs)
}

// Serve runs a gRPC server on lis until ctx is cancelled, then stops it
// gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	gs := grpc.NewServer()
	s.Register(gs)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			gs.GracefulStop()
		case <-done:
		}
	}()

	log.Printf("serving %s on %s", ServiceName, lis.Addr())
	err := gs.Serve(lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) handleCheck(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := dynamic.NewMessage(s.method.GetInputType())
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return s.check(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: CheckMethod}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.check(ctx, req.(*dynamic.Message))
	})
}

func (s *Server) check(ctx context.Context, req *dynamic.Message) (interface{}, error) {
	file := stringField(req, "file")
	if file == "" {
		file = "<request>"
	}

	pctx := pipeline.NewPipelineContext([]byte(stringField(req, "source")))
	pctx.Context = ctx
	pctx.FilePath = file
	pctx = pipeline.New(
		&astio.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{
			SkipBuiltins:     s.opts.SkipBuiltins,
			ReadOnlyLoopVars: s.opts.ReadOnlyLoopVars,
		},
		&store.Recorder{Store: s.opts.Store},
	).Run(pctx)

	resp, err := s.response(pctx)
	if err != nil {
		log.Printf("check %s: building response: %v", file, err)
		return nil, status.Errorf(codes.Internal, "building response: %v", err)
	}
	log.Printf("check %s: %d diagnostics", file, len(pctx.Errors))
	return resp, nil
}

func (s *Server) response(pctx *pipeline.PipelineContext) (*dynamic.Message, error) {
	out := s.method.GetOutputType()
	resp := dynamic.NewMessage(out)
	if err := setField(resp, "ok", !pctx.HasErrors()); err != nil {
		return nil, err
	}
	if pctx.ResultType != nil {
		if err := setField(resp, "result_type", pctx.ResultType.String()); err != nil {
			return nil, err
		}
	}
	if err := setField(resp, "run_id", pctx.RunID); err != nil {
		return nil, err
	}

	diagType := out.FindFieldByName("diagnostics").GetMessageType()
	for _, d := range pctx.Errors {
		dm := dynamic.NewMessage(diagType)
		for _, f := range []struct {
			name  string
			value interface{}
		}{
			{"code", string(d.Code)},
			{"line", d.Token.Line},
			{"column", d.Token.Column},
			{"message", d.Message},
			{"file", d.File},
		} {
			if err := setField(dm, f.name, f.value); err != nil {
				return nil, err
			}
		}
		if err := setField(resp, "diagnostics", dm); err != nil {
			return nil, err
		}
	}
	return resp, nil
}
