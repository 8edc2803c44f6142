package runtime

import (
	"context"
	"fmt"

	"github.com/codex-k8s/sandbox-gateway/internal/codec"
	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime/executor"
)

// DispatchError reports a failed execution of Tool.
type DispatchError struct {
	Tool string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("execute tool %q: %v", e.Tool, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Dispatcher hands canonical requests to the configured executor.
// It neither validates, retries nor times out a call.
type Dispatcher struct {
	exec executor.Executor
}

// NewDispatcher returns a Dispatcher over exec. A nil exec selects the placeholder.
func NewDispatcher(exec executor.Executor) *Dispatcher {
	if exec == nil {
		exec = executor.Placeholder{}
	}
	return &Dispatcher{exec: exec}
}

// Dispatch executes toolName with args exactly once.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, args codec.Value) (executor.Result, error) {
	res, err := d.exec.Execute(ctx, executor.Request{
		ToolName:  toolName,
		Arguments: args,
		RequestID: correlation.RequestID(ctx),
	})
	if err != nil {
		return executor.Result{}, &DispatchError{Tool: toolName, Err: err}
	}
	return res, nil
}
