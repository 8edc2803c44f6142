package executor

import (
	"context"

	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

// PlaceholderValue is the fixed result value of Placeholder.
const PlaceholderValue = 42

// Placeholder stands in for a real execution engine.
type Placeholder struct{}

// Execute ignores the request and reports a fixed result.
func (Placeholder) Execute(context.Context, Request) (Result, error) {
	return Result{Status: protocol.StatusExecuted, Value: PlaceholderValue}, nil
}
