package runtime

import (
	"fmt"

	"github.com/codex-k8s/sandbox-gateway/internal/constants"
	"github.com/codex-k8s/sandbox-gateway/internal/dsl"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime/executor"
	"github.com/codex-k8s/sandbox-gateway/internal/timeutil"
)

// BuildExecutor creates the executor selected by cfg. pending is required for
// async http executors and ignored otherwise.
func BuildExecutor(cfg dsl.ExecutorConfig, pending *executor.PendingStore) (executor.Executor, error) {
	timeout := timeutil.ParseDurationOrDefault(cfg.Timeout, 0)

	switch cfg.Type {
	case "", constants.ExecutorPlaceholder:
		return executor.Placeholder{}, nil
	case constants.ExecutorCommand:
		return executor.Command{
			Command: cfg.Command,
			Args:    cfg.Args,
			Env:     cfg.Env,
			Timeout: timeout,
		}, nil
	case constants.ExecutorHTTP:
		if cfg.Async && pending == nil {
			return nil, fmt.Errorf("async http executor requires a pending store")
		}
		return executor.HTTP{
			URL:         cfg.URL,
			Method:      cfg.Method,
			Headers:     cfg.Headers,
			Timeout:     timeout,
			Async:       cfg.Async,
			CallbackURL: cfg.CallbackURL,
			Pending:     pending,
		}, nil
	default:
		return nil, fmt.Errorf("unknown executor type: %s", cfg.Type)
	}
}

// NeedsCallback reports whether cfg expects async results on the callback route.
func NeedsCallback(cfg dsl.ExecutorConfig) bool {
	return cfg.Type == constants.ExecutorHTTP && cfg.Async
}
