// Package rest serves the JSON tool execution endpoint.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codex-k8s/sandbox-gateway/internal/audit"
	"github.com/codex-k8s/sandbox-gateway/internal/codec"
	"github.com/codex-k8s/sandbox-gateway/internal/constants"
	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime/executor"
)

// Dispatcher executes a canonical tool request.
type Dispatcher interface {
	Dispatch(ctx context.Context, toolName string, args codec.Value) (executor.Result, error)
}

// Handler serves POST /api/v1/execute_tool.
type Handler struct {
	dispatcher   Dispatcher
	audit        audit.Logger
	maxBodyBytes int64
}

// New returns a Handler. A non-positive maxBodyBytes disables the body limit.
func New(dispatcher Dispatcher, recorder audit.Logger, maxBodyBytes int64) *Handler {
	if recorder == nil {
		recorder = audit.Nop{}
	}
	return &Handler{dispatcher: dispatcher, audit: recorder, maxBodyBytes: maxBodyBytes}
}

// Register mounts the handler routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodPost+" "+constants.RouteExecuteTool, h.ExecuteTool)
}

// ExecuteTool decodes the request, dispatches it and writes the result.
func (h *Handler) ExecuteTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	event := audit.Event{Method: r.Method, Path: r.URL.Path}

	toolName, args, err := h.decode(w, r)
	event.ToolName = toolName
	if err != nil {
		event.Message, event.Err = "request rejected", err
		h.audit.Record(ctx, event)
		h.writeError(w, r, err)
		return
	}

	event.Message, event.Arguments = "executing tool", args
	h.audit.Record(ctx, event)

	started := time.Now()
	res, err := h.dispatcher.Dispatch(ctx, toolName, args)
	event.Arguments, event.Duration = nil, time.Since(started)
	if err != nil {
		event.Message, event.Err = "tool execution failed", err
		h.audit.Record(ctx, event)
		h.writeError(w, r, err)
		return
	}

	event.Message, event.Status = "tool executed", res.Status
	h.audit.Record(ctx, event)
	writeJSON(w, http.StatusOK, protocol.ExecuteToolResponse{
		ToolStatus: res.Status,
		Result:     res.Value,
		Stdout:     res.Stdout,
		Stderr:     res.Stderr,
	})
}

var errMalformedBody = errors.New("malformed request body")

type bodyError struct {
	err error
}

func (e *bodyError) Error() string {
	return fmt.Sprintf("%v: %v", errMalformedBody, e.err)
}

func (e *bodyError) Unwrap() error {
	return e.err
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (string, codec.Value, error) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req protocol.ExecuteToolRequest
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&req); err != nil {
		return "", nil, &bodyError{err: err}
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after request object")
		}
		return "", nil, &bodyError{err: err}
	}

	if req.ToolName == nil || strings.TrimSpace(*req.ToolName) == "" {
		return "", nil, codec.MissingField("tool_name")
	}
	toolName := *req.ToolName

	args, err := codec.FromBody(req.Arguments, req.Code)
	if err != nil {
		return toolName, nil, err
	}
	return toolName, args, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	resp := protocol.ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: correlation.RequestID(r.Context()),
	}
	if code == protocol.CodeExecutionFailed {
		resp.Error = protocol.MessageExecutionFailed
	}
	var argErr *codec.ArgumentError
	if errors.As(err, &argErr) {
		resp.Field = argErr.Field
	}
	writeJSON(w, status, resp)
}

// statusFor maps an error kind to an HTTP status and error code.
func statusFor(err error) (int, string) {
	var (
		maxBytesErr *http.MaxBytesError
		bodyErr     *bodyError
		argErr      *codec.ArgumentError
		dispatchErr *runtime.DispatchError
	)
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, protocol.CodeBodyTooLarge
	case errors.As(err, &bodyErr):
		return http.StatusBadRequest, protocol.CodeMalformedBody
	case errors.As(err, &argErr):
		if argErr.Kind == codec.KindMissingField {
			return http.StatusBadRequest, protocol.CodeMissingField
		}
		return http.StatusBadRequest, protocol.CodeMalformedArgs
	case errors.As(err, &dispatchErr):
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout, protocol.CodeExecutionFailed
		}
		return http.StatusInternalServerError, protocol.CodeExecutionFailed
	default:
		return http.StatusInternalServerError, protocol.CodeExecutionFailed
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
