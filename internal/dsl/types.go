package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes listeners and lifecycle settings.
	Server ServerConfig `yaml:"server"`
	// Executor selects and configures the execution collaborator.
	Executor ExecutorConfig `yaml:"executor"`
}

// ServerConfig defines gateway server settings.
type ServerConfig struct {
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// HTTP configures the REST listener.
	HTTP HTTPConfig `yaml:"http"`
	// GRPC configures the gRPC listener.
	GRPC GRPCConfig `yaml:"grpc"`
	// MCP configures the MCP streamable HTTP surface.
	MCP MCPConfig `yaml:"mcp"`
	// StartupHooks defines one-time commands executed on start.
	StartupHooks []HookConfig `yaml:"startup_hooks"`
}

// HTTPConfig configures the HTTP listener. The port comes from the environment.
type HTTPConfig struct {
	// ListenHost is the interface to bind.
	ListenHost string `yaml:"listen_host"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// MaxBodyBytes limits REST request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// GRPCConfig configures the gRPC listener. The port comes from the environment.
type GRPCConfig struct {
	// Enabled toggles the listener; nil means enabled.
	Enabled *bool `yaml:"enabled"`
	// Reflection registers the server reflection service.
	Reflection bool `yaml:"reflection"`
}

// IsEnabled reports whether the gRPC listener should run.
func (c GRPCConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// MCPConfig configures the MCP endpoint.
type MCPConfig struct {
	// Enabled mounts the MCP handler.
	Enabled bool `yaml:"enabled"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// ExecutorConfig defines how tools are executed.
type ExecutorConfig struct {
	// Type selects the executor implementation.
	Type string `yaml:"type"`
	// Command is the executable or shell command.
	Command string `yaml:"command"`
	// Args contains command arguments.
	Args []string `yaml:"args"`
	// Env adds environment variables for execution.
	Env map[string]string `yaml:"env"`
	// Timeout bounds a single command run or HTTP round trip.
	Timeout string `yaml:"timeout"`
	// URL is the remote engine endpoint.
	URL string `yaml:"url"`
	// Method overrides the HTTP method.
	Method string `yaml:"method"`
	// Headers adds HTTP headers.
	Headers map[string]string `yaml:"headers"`
	// Async enables callback-based results.
	Async bool `yaml:"async"`
	// CallbackPath is where the gateway accepts async results.
	CallbackPath string `yaml:"callback_path"`
	// CallbackURL is the absolute callback URL announced to the engine.
	CallbackURL string `yaml:"callback_url"`
}

// HookConfig defines a startup hook command.
type HookConfig struct {
	// Command is the startup command to run.
	Command string `yaml:"command"`
	// Args are optional arguments.
	Args []string `yaml:"args"`
	// Env adds environment variables for the hook.
	Env map[string]string `yaml:"env"`
	// Timeout controls hook execution duration.
	Timeout string `yaml:"timeout"`
}
