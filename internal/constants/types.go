package constants

// Executor type aliases.
const (
	ExecutorPlaceholder = "placeholder"
	ExecutorCommand     = "command"
	ExecutorHTTP        = "http"
)

// HTTP routes served by the gateway.
const (
	RouteHealth           = "/health"
	RouteReady            = "/readyz"
	RouteExecuteTool      = "/api/v1/execute_tool"
	RouteExecutorCallback = "/api/v1/executor/callback"
	RouteMCP              = "/mcp"
)

// DefaultConfigName is the embedded YAML config used when no path is given.
const DefaultConfigName = "gateway.yaml"
