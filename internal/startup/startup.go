// Package startup runs the configured hooks before the gateway starts serving.
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/codex-k8s/sandbox-gateway/internal/dsl"
	"github.com/codex-k8s/sandbox-gateway/internal/executil"
)

// Run executes hooks sequentially and stops at the first failure.
func Run(ctx context.Context, hooks []dsl.HookConfig, logger *slog.Logger) error {
	for idx, hook := range hooks {
		if strings.TrimSpace(hook.Command) == "" {
			continue
		}
		if err := runHook(ctx, idx, hook, logger); err != nil {
			return err
		}
	}
	return nil
}

func runHook(ctx context.Context, idx int, hook dsl.HookConfig, logger *slog.Logger) error {
	if strings.TrimSpace(hook.Timeout) != "" {
		timeout, err := time.ParseDuration(strings.TrimSpace(hook.Timeout))
		if err != nil {
			return fmt.Errorf("startup hook %d: invalid timeout: %w", idx, err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if logger != nil {
		logger.Info("running startup hook", "index", idx, "command", hook.Command)
	}

	out, err := executil.RunCommand(ctx, hook.Command, hook.Args, hook.Env, executil.TemplateData{}, nil)
	output := strings.TrimSpace(out.Combined())
	if err != nil {
		if logger != nil && output != "" {
			logger.Error("startup hook failed", "index", idx, "exit_code", out.ExitCode, "output", output)
		}
		return fmt.Errorf("startup hook %d failed: %w", idx, err)
	}
	if logger != nil && output != "" {
		logger.Info("startup hook output", "index", idx, "output", output)
	}
	return nil
}
