package executor

import "context"

// Request contains tool execution inputs.
type Request struct {
	// ToolName is the tool being executed.
	ToolName string
	// Arguments are the canonical tool arguments.
	Arguments any
	// RequestID links the execution with gateway logs.
	RequestID string
}

// Result is the normalized outcome of one execution.
type Result struct {
	// Status is a short status such as ok or failed.
	Status string
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
	// Value is an optional structured result.
	Value any
}

// Executor executes a tool.
type Executor interface {
	// Execute runs the tool and returns exactly one result or error.
	Execute(ctx context.Context, req Request) (Result, error)
}
