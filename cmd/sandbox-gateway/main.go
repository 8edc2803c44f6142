package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/codex-k8s/sandbox-gateway/configs"
	"github.com/codex-k8s/sandbox-gateway/internal/app"
	"github.com/codex-k8s/sandbox-gateway/internal/audit"
	"github.com/codex-k8s/sandbox-gateway/internal/config"
	"github.com/codex-k8s/sandbox-gateway/internal/constants"
	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/dsl"
	"github.com/codex-k8s/sandbox-gateway/internal/log"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
	"github.com/codex-k8s/sandbox-gateway/internal/render"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime/executor"
	"github.com/codex-k8s/sandbox-gateway/internal/startup"
)

func main() {
	envFile := flag.String("env-file", ".env", "Load environment variables from this file when it exists")
	embeddedConfig := flag.String("embedded-config", "", "Use embedded config from configs/ (filename)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "env file error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel)

	if err := run(cfg, *embeddedConfig, logger); err != nil {
		var bootErr *app.BootstrapError
		if errors.As(err, &bootErr) {
			logger.Error("bootstrap failed", "stage", bootErr.Stage, "error", bootErr.Err)
		} else {
			logger.Error("runtime error", "error", err)
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, embeddedConfig string, logger *slog.Logger) error {
	gatewayCfg, err := loadGatewayConfig(cfg.ConfigPath, embeddedConfig)
	if err != nil {
		return err
	}

	extractor := correlation.Extractor{}
	if cfg.GenerateRequestID {
		extractor.Generate = uuid.NewString
	}
	recorder := audit.New(logger)
	identity := protocol.DefaultIdentity()

	var pending *executor.PendingStore
	if runtime.NeedsCallback(gatewayCfg.Executor) {
		pending = executor.NewPendingStore()
	}
	exec, err := runtime.BuildExecutor(gatewayCfg.Executor, pending)
	if err != nil {
		return &app.BootstrapError{Stage: "executor", Err: err}
	}
	dispatcher := runtime.NewDispatcher(exec)

	opts := app.Options{
		HTTPAddr:        net.JoinHostPort(gatewayCfg.Server.HTTP.ListenHost, cfg.HTTPPort.String()),
		GRPCAddr:        net.JoinHostPort(gatewayCfg.Server.HTTP.ListenHost, cfg.GRPCPort.String()),
		Server:          gatewayCfg.Server,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Identity:        identity,
		Dispatcher:      dispatcher,
		Audit:           recorder,
		Extractor:       extractor,
		Logger:          logger,
	}
	if gatewayCfg.Server.MCP.Enabled {
		opts.MCP = runtime.Builder{
			Dispatcher: dispatcher,
			Audit:      recorder,
			Extractor:  extractor,
			Logger:     logger,
		}.Build(identity)
	}
	if pending != nil {
		opts.Callback = &executor.CallbackHandler{Store: pending, Logger: logger}
		opts.CallbackPath = gatewayCfg.Executor.CallbackPath
	}

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	if err := startup.Run(baseCtx, gatewayCfg.Server.StartupHooks, logger); err != nil {
		return &app.BootstrapError{Stage: "startup hooks", Err: err}
	}

	application, err := app.New(baseCtx, opts)
	if err != nil {
		return &app.BootstrapError{Stage: "app", Err: err}
	}
	logger.Info("gateway configured",
		"executor", gatewayCfg.Executor.Type,
		"grpc", gatewayCfg.Server.GRPC.IsEnabled(),
		"mcp", gatewayCfg.Server.MCP.Enabled,
	)
	return application.Run(baseCtx)
}

func loadGatewayConfig(path, embedded string) (*dsl.Config, error) {
	var (
		rendered []byte
		err      error
	)
	if path != "" && embedded == "" {
		rendered, err = render.RenderFile(path)
	} else {
		name := embedded
		if name == "" {
			name = constants.DefaultConfigName
		}
		var raw []byte
		raw, err = configs.Load(name)
		if err != nil {
			return nil, &app.BootstrapError{Stage: "load config", Err: err}
		}
		rendered, err = render.RenderBytes(name, raw, nil)
	}
	if err != nil {
		return nil, &app.BootstrapError{Stage: "render config", Err: err}
	}

	cfg, err := dsl.Load(rendered)
	if err != nil {
		return nil, &app.BootstrapError{Stage: "parse config", Err: err}
	}
	return cfg, nil
}
