// Package toolservice implements the modelgateway.ToolService gRPC service.
package toolservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/codex-k8s/sandbox-gateway/internal/audit"
	"github.com/codex-k8s/sandbox-gateway/internal/codec"
	"github.com/codex-k8s/sandbox-gateway/internal/pb"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime/executor"
)

// Dispatcher executes a canonical tool request.
type Dispatcher interface {
	Dispatch(ctx context.Context, toolName string, args codec.Value) (executor.Result, error)
}

// Server adapts ToolService calls to a Dispatcher.
type Server struct {
	pb.UnimplementedToolServiceServer

	dispatcher Dispatcher
	audit      audit.Logger
}

// New returns a ToolService server.
func New(dispatcher Dispatcher, recorder audit.Logger) *Server {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Server{dispatcher: dispatcher, audit: recorder}
}

// ExecuteTool decodes args_json, dispatches the call and maps the result 1:1.
func (s *Server) ExecuteTool(ctx context.Context, req *pb.ToolRequest) (*pb.ToolResponse, error) {
	event := audit.Event{
		Method:   pb.ToolService_ExecuteTool_FullMethodName,
		Path:     "grpc",
		ToolName: req.GetToolName(),
	}

	if strings.TrimSpace(req.GetToolName()) == "" {
		return nil, s.reject(ctx, event, codec.MissingField("tool_name"))
	}
	args, err := codec.Decode(req.GetArgsJson())
	if err != nil {
		return nil, s.reject(ctx, event, err)
	}

	event.Message, event.Arguments = "executing tool", args
	s.audit.Record(ctx, event)

	started := time.Now()
	res, err := s.dispatcher.Dispatch(ctx, req.GetToolName(), args)
	event.Arguments, event.Duration = nil, time.Since(started)
	if err != nil {
		event.Message, event.Err = "tool execution failed", err
		s.audit.Record(ctx, event)
		return nil, status.Error(codeFor(err), protocol.MessageExecutionFailed)
	}

	event.Message, event.Status = "tool executed", res.Status
	s.audit.Record(ctx, event)
	return &pb.ToolResponse{
		Status: res.Status,
		Stdout: res.Stdout,
		Stderr: res.Stderr,
	}, nil
}

func (s *Server) reject(ctx context.Context, event audit.Event, err error) error {
	event.Message, event.Err = "request rejected", err
	s.audit.Record(ctx, event)

	var argErr *codec.ArgumentError
	if errors.As(err, &argErr) && argErr.Kind == codec.KindMalformed {
		return status.Error(codeFor(err), fmt.Sprintf("invalid args_json: %v", argErr.Err))
	}
	return status.Error(codeFor(err), err.Error())
}

// codeFor maps an error kind to a gRPC status code.
func codeFor(err error) codes.Code {
	var argErr *codec.ArgumentError
	if errors.As(err, &argErr) {
		return codes.InvalidArgument
	}
	return codes.Internal
}
