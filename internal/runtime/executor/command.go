package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/codex-k8s/sandbox-gateway/internal/executil"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

// Command runs an external sandbox command per execution.
// The arguments JSON is written to its stdin.
type Command struct {
	// Command is the command template to execute.
	Command string
	// Args are command argument templates.
	Args []string
	// Env adds environment variables.
	Env map[string]string
	// Timeout bounds a single run when positive.
	Timeout time.Duration
}

// Execute runs the configured command. A non-zero exit is a failed result, not an error.
func (c Command) Execute(ctx context.Context, req Request) (Result, error) {
	stdin, err := json.Marshal(req.Arguments)
	if err != nil {
		return Result{}, fmt.Errorf("encode arguments: %w", err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	out, err := executil.RunCommand(ctx, c.Command, c.Args, c.Env, executil.TemplateData{
		Args:      req.Arguments,
		ToolName:  req.ToolName,
		RequestID: req.RequestID,
	}, stdin)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, fmt.Errorf("command interrupted: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("command failed to start: %w", err)
		}
		return Result{Status: protocol.StatusFailed, Stdout: out.Stdout, Stderr: out.Stderr}, nil
	}
	return Result{Status: protocol.StatusOK, Stdout: out.Stdout, Stderr: out.Stderr}, nil
}
