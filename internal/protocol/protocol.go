package protocol

import "encoding/json"

// Service identity reported by the health endpoint and the MCP server.
const (
	ServiceName    = "backend-rust-sandbox"
	ServiceVersion = "1.0.0"
	ServiceStatus  = "ok"
)

// Tool execution statuses.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusExecuted = "executed"
	StatusPending  = "pending"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeMalformedBody   = "malformed_body"
	CodeMalformedArgs   = "malformed_arguments"
	CodeMissingField    = "missing_field"
	CodeBodyTooLarge    = "body_too_large"
	CodeExecutionFailed = "execution_failed"
)

// MessageExecutionFailed is the only detail callers get about a failed dispatch.
const MessageExecutionFailed = "tool execution failed"

// Identity describes the running service.
type Identity struct {
	// Service is the service name.
	Service string `json:"service"`
	// Status is the static service status.
	Status string `json:"status"`
	// Version is the service version.
	Version string `json:"version"`
}

// DefaultIdentity returns the process-wide service identity.
func DefaultIdentity() Identity {
	return Identity{Service: ServiceName, Status: ServiceStatus, Version: ServiceVersion}
}

// ExecuteToolRequest is the REST request body for POST /api/v1/execute_tool.
type ExecuteToolRequest struct {
	// ToolName is the tool to execute; nil when the field is absent.
	ToolName *string `json:"tool_name"`
	// Code is an optional source snippet forwarded as the "code" argument.
	Code *string `json:"code,omitempty"`
	// Arguments holds structured tool arguments.
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ExecuteToolResponse is the REST response body for a completed execution.
type ExecuteToolResponse struct {
	// ToolStatus is the execution status.
	ToolStatus string `json:"tool_status"`
	// Result is the structured result, when the backend produced one.
	Result any `json:"result,omitempty"`
	// Stdout is the captured standard output.
	Stdout string `json:"stdout,omitempty"`
	// Stderr is the captured standard error.
	Stderr string `json:"stderr,omitempty"`
}

// ErrorResponse is the REST body returned for rejected or failed requests.
type ErrorResponse struct {
	// Error is a human-readable message.
	Error string `json:"error"`
	// Code classifies the failure.
	Code string `json:"code"`
	// Field names the offending request field, if any.
	Field string `json:"field,omitempty"`
	// RequestID echoes the correlation id.
	RequestID string `json:"request_id,omitempty"`
}

// ExecutorRequest is the JSON payload sent to a remote execution engine.
type ExecutorRequest struct {
	// ExecutionID is unique per call and keys the async callback.
	ExecutionID string `json:"execution_id"`
	// RequestID links the execution with gateway logs.
	RequestID string `json:"request_id"`
	// ToolName is the tool to execute.
	ToolName string `json:"tool_name"`
	// Arguments are the canonical tool arguments.
	Arguments any `json:"arguments"`
	// Callback is set when the engine should report asynchronously.
	Callback *ExecutorCallback `json:"callback,omitempty"`
}

// ExecutorCallback tells the engine where to deliver an async result.
type ExecutorCallback struct {
	// URL is the gateway callback endpoint.
	URL string `json:"url"`
}

// ExecutorResponse is the JSON response expected from a remote execution engine.
type ExecutorResponse struct {
	// Status is ok, failed or pending.
	Status string `json:"status"`
	// Stdout is the captured standard output.
	Stdout string `json:"stdout,omitempty"`
	// Stderr is the captured standard error.
	Stderr string `json:"stderr,omitempty"`
	// Result is an optional structured result.
	Result any `json:"result,omitempty"`
}

// ExecutorCallbackPayload is posted by an engine to the gateway callback endpoint.
type ExecutorCallbackPayload struct {
	// ExecutionID identifies the pending execution.
	ExecutionID string `json:"execution_id"`
	// RequestID is echoed for log correlation only.
	RequestID string `json:"request_id,omitempty"`
	ExecutorResponse
}
