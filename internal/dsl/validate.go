package dsl

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codex-k8s/sandbox-gateway/internal/constants"
)

// Defaults applied by Validate.
const (
	DefaultListenHost   = "0.0.0.0"
	DefaultReadTimeout  = "15s"
	DefaultWriteTimeout = "120s"
	DefaultIdleTimeout  = "60s"
	DefaultMaxBodyBytes = 1 << 20
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}
	return validateExecutor(&cfg.Executor)
}

func validateServer(server *ServerConfig) error {
	if err := checkDuration("server.shutdown_timeout", server.ShutdownTimeout); err != nil {
		return err
	}

	httpCfg := &server.HTTP
	if strings.TrimSpace(httpCfg.ListenHost) == "" {
		httpCfg.ListenHost = DefaultListenHost
	}
	httpCfg.ReadTimeout = orDefault(httpCfg.ReadTimeout, DefaultReadTimeout)
	httpCfg.WriteTimeout = orDefault(httpCfg.WriteTimeout, DefaultWriteTimeout)
	httpCfg.IdleTimeout = orDefault(httpCfg.IdleTimeout, DefaultIdleTimeout)
	for name, value := range map[string]string{
		"server.http.read_timeout":  httpCfg.ReadTimeout,
		"server.http.write_timeout": httpCfg.WriteTimeout,
		"server.http.idle_timeout":  httpCfg.IdleTimeout,
	} {
		if err := checkDuration(name, value); err != nil {
			return err
		}
	}
	if httpCfg.MaxBodyBytes < 0 {
		return fmt.Errorf("server.http.max_body_bytes must be >= 0")
	}
	if httpCfg.MaxBodyBytes == 0 {
		httpCfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if strings.TrimSpace(server.MCP.Path) == "" {
		server.MCP.Path = constants.RouteMCP
	}
	if !strings.HasPrefix(server.MCP.Path, "/") {
		return fmt.Errorf("server.mcp.path must start with /")
	}

	for i, hook := range server.StartupHooks {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("server.startup_hooks[%d].command is required", i)
		}
		if err := checkDuration(fmt.Sprintf("server.startup_hooks[%d].timeout", i), hook.Timeout); err != nil {
			return err
		}
	}
	return nil
}

func validateExecutor(exec *ExecutorConfig) error {
	exec.Type = strings.ToLower(strings.TrimSpace(exec.Type))
	if exec.Type == "" {
		exec.Type = constants.ExecutorPlaceholder
	}
	if err := checkDuration("executor.timeout", exec.Timeout); err != nil {
		return err
	}

	switch exec.Type {
	case constants.ExecutorPlaceholder:
		return nil
	case constants.ExecutorCommand:
		if strings.TrimSpace(exec.Command) == "" {
			return fmt.Errorf("executor.command is required for command executor")
		}
		return nil
	case constants.ExecutorHTTP:
	default:
		return fmt.Errorf("unknown executor type: %s", exec.Type)
	}

	if _, err := parseAbsoluteURL(exec.URL); err != nil {
		return fmt.Errorf("executor.url is invalid: %w", err)
	}
	exec.Method = strings.ToUpper(strings.TrimSpace(exec.Method))
	switch exec.Method {
	case "":
		exec.Method = http.MethodPost
	case http.MethodPost, http.MethodPut:
	default:
		return fmt.Errorf("executor.method must be POST or PUT")
	}
	if !exec.Async {
		return nil
	}
	if strings.TrimSpace(exec.CallbackPath) == "" {
		exec.CallbackPath = constants.RouteExecutorCallback
	}
	if !strings.HasPrefix(exec.CallbackPath, "/") {
		return fmt.Errorf("executor.callback_path must start with /")
	}
	if strings.TrimSpace(exec.CallbackURL) == "" {
		return fmt.Errorf("async http executor requires executor.callback_url")
	}
	if _, err := parseAbsoluteURL(exec.CallbackURL); err != nil {
		return fmt.Errorf("executor.callback_url is invalid: %w", err)
	}
	return nil
}

func checkDuration(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if _, err := time.ParseDuration(value); err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	return nil
}

func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("url must use http or https")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("url must be absolute")
	}
	return parsed, nil
}
