package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/sandbox-gateway/internal/audit"
	"github.com/codex-k8s/sandbox-gateway/internal/codec"
	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

// ToolName is the MCP tool exposing the dispatcher.
const ToolName = "execute_tool"

// ExecuteToolInput is the MCP tool input.
type ExecuteToolInput struct {
	ToolName  string `json:"tool_name" jsonschema:"name of the sandbox tool to execute"`
	Arguments any    `json:"arguments,omitempty" jsonschema:"tool arguments, any JSON value"`
}

// ExecuteToolOutput is the MCP tool structured output.
type ExecuteToolOutput struct {
	Status string `json:"status" jsonschema:"execution status"`
	Stdout string `json:"stdout" jsonschema:"captured standard output"`
	Stderr string `json:"stderr" jsonschema:"captured standard error"`
	Result any    `json:"result,omitempty" jsonschema:"structured result, when the backend produced one"`
}

// Builder constructs the MCP server over a Dispatcher.
type Builder struct {
	// Dispatcher executes tool calls.
	Dispatcher *Dispatcher
	// Audit records tool events.
	Audit audit.Logger
	// Extractor derives correlation ids from MCP HTTP headers.
	Extractor correlation.Extractor
	// Logger is used for structured logging.
	Logger *slog.Logger
}

// Build creates an MCP server exposing the execute_tool tool.
func (b Builder) Build(identity protocol.Identity) *mcp.Server {
	var opts *mcp.ServerOptions
	if b.Logger != nil {
		opts = &mcp.ServerOptions{Logger: b.Logger}
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    identity.Service,
		Version: identity.Version,
	}, opts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Title:       "Execute sandbox tool",
		Description: "Executes a named tool in the sandbox backend and returns its status and output.",
	}, b.executeTool)
	return server
}

func (b Builder) executeTool(ctx context.Context, req *mcp.CallToolRequest, in ExecuteToolInput) (*mcp.CallToolResult, ExecuteToolOutput, error) {
	ctx = b.withCorrelation(ctx, req)
	recorder := b.audit()
	event := audit.Event{Method: "tools/call", Path: ToolName, ToolName: in.ToolName}

	if strings.TrimSpace(in.ToolName) == "" {
		err := codec.MissingField("tool_name")
		event.Message, event.Err = "request rejected", err
		recorder.Record(ctx, event)
		return nil, ExecuteToolOutput{}, err
	}

	args, err := codec.FromBody(rawArguments(req), nil)
	if err != nil {
		event.Message, event.Err = "request rejected", err
		recorder.Record(ctx, event)
		return nil, ExecuteToolOutput{}, err
	}

	event.Message, event.Arguments = "executing tool", args
	recorder.Record(ctx, event)

	started := time.Now()
	res, err := b.Dispatcher.Dispatch(ctx, in.ToolName, args)
	event.Arguments, event.Duration = nil, time.Since(started)
	if err != nil {
		event.Message, event.Err = "tool execution failed", err
		recorder.Record(ctx, event)
		return nil, ExecuteToolOutput{}, errors.New(protocol.MessageExecutionFailed)
	}

	event.Message, event.Status = "tool executed", res.Status
	recorder.Record(ctx, event)
	return nil, ExecuteToolOutput{
		Status: res.Status,
		Stdout: res.Stdout,
		Stderr: res.Stderr,
		Result: res.Value,
	}, nil
}

func (b Builder) withCorrelation(ctx context.Context, req *mcp.CallToolRequest) context.Context {
	if req != nil && req.Extra != nil && req.Extra.Header != nil {
		return correlation.With(ctx, b.Extractor.FromHeader(req.Extra.Header))
	}
	return correlation.With(ctx, correlation.From(ctx))
}

func (b Builder) audit() audit.Logger {
	if b.Audit == nil {
		return audit.Nop{}
	}
	return b.Audit
}

// rawArguments returns the original "arguments" member so numbers survive unchanged.
func rawArguments(req *mcp.CallToolRequest) json.RawMessage {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	var envelope struct {
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &envelope); err != nil {
		return nil
	}
	return envelope.Arguments
}
