package config

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Default listen ports.
const (
	DefaultHTTPPort Port = 8001
	DefaultGRPCPort Port = 50053
)

// Config stores environment-driven settings for the gateway.
type Config struct {
	// HTTPPort is the REST listen port.
	HTTPPort Port `env:"RUST_SANDBOX_PORT" envDefault:"8001"`
	// GRPCPort is the ToolService listen port.
	GRPCPort Port `env:"RUST_SANDBOX_GRPC_PORT" envDefault:"50053"`
	// LogLevel sets the logger level.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// ConfigPath points to an optional YAML gateway config; empty selects the embedded default.
	ConfigPath string `env:"SANDBOX_GATEWAY_CONFIG"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"SANDBOX_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// GenerateRequestID synthesizes request ids instead of using the "none" sentinel.
	GenerateRequestID bool `env:"SANDBOX_GENERATE_REQUEST_ID" envDefault:"false"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{FuncMap: lenientParsers()})
	if err != nil {
		return Config{}, err
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// LoadFrom parses the given environment map instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ, FuncMap: lenientParsers()})
	if err != nil {
		return Config{}, err
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// lenientParsers make unparsable durations and booleans fall back to their
// defaults, the way Port does, instead of failing the whole load.
func lenientParsers() map[reflect.Type]env.ParserFunc {
	return map[reflect.Type]env.ParserFunc{
		reflect.TypeOf(time.Duration(0)): func(v string) (any, error) {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				return time.Duration(0), nil
			}
			return d, nil
		},
		reflect.TypeOf(false): func(v string) (any, error) {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return false, nil
			}
			return b, nil
		},
	}
}

func (c *Config) applyFallbacks() {
	if c.HTTPPort == 0 {
		c.HTTPPort = DefaultHTTPPort
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = DefaultGRPCPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}
