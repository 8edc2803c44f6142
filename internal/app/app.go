package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/codex-k8s/sandbox-gateway/internal/audit"
	"github.com/codex-k8s/sandbox-gateway/internal/constants"
	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/dsl"
	"github.com/codex-k8s/sandbox-gateway/internal/http/health"
	"github.com/codex-k8s/sandbox-gateway/internal/http/rest"
	"github.com/codex-k8s/sandbox-gateway/internal/pb"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
	"github.com/codex-k8s/sandbox-gateway/internal/rpc/toolservice"
	"github.com/codex-k8s/sandbox-gateway/internal/runtime"
	"github.com/codex-k8s/sandbox-gateway/internal/timeutil"
)

// BootstrapError reports a failure before the gateway started serving.
type BootstrapError struct {
	Stage string
	Err   error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *BootstrapError) Unwrap() error {
	return e.Err
}

// Options configures App.
type Options struct {
	// HTTPAddr is the REST listen address.
	HTTPAddr string
	// GRPCAddr is the ToolService listen address.
	GRPCAddr string
	// Server holds listener settings from the YAML config.
	Server dsl.ServerConfig
	// ShutdownTimeout is used when the YAML config does not set one.
	ShutdownTimeout time.Duration
	// Identity is reported by the health endpoint.
	Identity protocol.Identity
	// Dispatcher executes tool calls for every transport.
	Dispatcher *runtime.Dispatcher
	// Audit records request events.
	Audit audit.Logger
	// Extractor derives correlation ids.
	Extractor correlation.Extractor
	// MCP is mounted at Server.MCP.Path when non-nil.
	MCP *mcp.Server
	// Callback is mounted at CallbackPath when non-nil.
	Callback http.Handler
	// CallbackPath is the async executor callback route.
	CallbackPath string
	// Logger is used for lifecycle logging.
	Logger *slog.Logger
}

// App controls the HTTP and gRPC server lifecycle.
type App struct {
	baseCtx         context.Context
	httpServer      *http.Server
	grpcServer      *grpc.Server
	grpcHealth      *grpchealth.Server
	health          *health.Handler
	logger          *slog.Logger
	shutdownTimeout time.Duration

	grpcAddr     string
	httpListener net.Listener
	grpcListener net.Listener
}

// New wires handlers for every enabled transport. It does not bind sockets.
func New(baseCtx context.Context, opts Options) (*App, error) {
	if baseCtx == nil {
		return nil, fmt.Errorf("base context is nil")
	}
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is nil")
	}
	if opts.Audit == nil {
		opts.Audit = audit.Nop{}
	}

	healthHandler := health.New(opts.Identity)
	httpCfg := opts.Server.HTTP

	srv := &http.Server{
		Addr:         opts.HTTPAddr,
		Handler:      newHTTPHandler(opts, healthHandler),
		ReadTimeout:  timeutil.ParseDurationOrDefault(httpCfg.ReadTimeout, 15*time.Second),
		WriteTimeout: timeutil.ParseDurationOrDefault(httpCfg.WriteTimeout, 120*time.Second),
		IdleTimeout:  timeutil.ParseDurationOrDefault(httpCfg.IdleTimeout, 60*time.Second),
	}

	a := &App{
		baseCtx:         baseCtx,
		httpServer:      srv,
		health:          healthHandler,
		logger:          opts.Logger,
		shutdownTimeout: timeutil.ParseDurationOrDefault(opts.Server.ShutdownTimeout, opts.ShutdownTimeout),
	}
	if a.shutdownTimeout <= 0 {
		a.shutdownTimeout = 10 * time.Second
	}

	if opts.Server.GRPC.IsEnabled() {
		a.grpcAddr = opts.GRPCAddr
		a.grpcServer, a.grpcHealth = newGRPCServer(opts)
	}
	return a, nil
}

func newHTTPHandler(opts Options, healthHandler *health.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+constants.RouteHealth, healthHandler.Health)
	mux.HandleFunc(http.MethodGet+" "+constants.RouteReady, healthHandler.Readyz)
	rest.New(opts.Dispatcher, opts.Audit, opts.Server.HTTP.MaxBodyBytes).Register(mux)

	if opts.MCP != nil {
		server := opts.MCP
		mux.Handle(opts.Server.MCP.Path, mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return server
		}, &mcp.StreamableHTTPOptions{
			Stateless: opts.Server.MCP.Stateless,
		}))
	}
	if opts.Callback != nil && opts.CallbackPath != "" {
		mux.Handle(http.MethodPost+" "+opts.CallbackPath, opts.Callback)
	}
	return correlation.Middleware(opts.Extractor)(mux)
}

func newGRPCServer(opts Options) (*grpc.Server, *grpchealth.Server) {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(correlation.UnaryServerInterceptor(opts.Extractor)))
	pb.RegisterToolServiceServer(srv, toolservice.New(opts.Dispatcher, opts.Audit))

	healthSrv := grpchealth.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(pb.ToolService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Server.GRPC.Reflection {
		reflection.Register(srv)
	}
	return srv, healthSrv
}

// Handler returns the HTTP handler with all routes mounted.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Listen binds the HTTP and gRPC sockets.
func (a *App) Listen() error {
	httpLn, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return &BootstrapError{Stage: "http listen", Err: err}
	}
	a.httpListener = httpLn

	if a.grpcServer != nil {
		grpcLn, err := net.Listen("tcp", a.grpcAddr)
		if err != nil {
			_ = httpLn.Close()
			return &BootstrapError{Stage: "grpc listen", Err: err}
		}
		a.grpcListener = grpcLn
	}
	return nil
}

// HTTPAddr returns the bound HTTP address, or the configured one before Listen.
func (a *App) HTTPAddr() string {
	if a.httpListener != nil {
		return a.httpListener.Addr().String()
	}
	return a.httpServer.Addr
}

// GRPCAddr returns the bound gRPC address, or the configured one before Listen.
func (a *App) GRPCAddr() string {
	if a.grpcListener != nil {
		return a.grpcListener.Addr().String()
	}
	return a.grpcAddr
}

// Run binds the listeners if needed and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a.httpListener == nil {
		if err := a.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 2)
	go func() {
		a.logInfo("http server started", "addr", a.HTTPAddr())
		errCh <- a.httpServer.Serve(a.httpListener)
	}()
	if a.grpcServer != nil {
		go func() {
			a.logInfo("grpc server started", "addr", a.GRPCAddr())
			errCh <- a.grpcServer.Serve(a.grpcListener)
		}()
	}
	a.health.SetReady()

	for {
		select {
		case <-ctx.Done():
			a.logInfo("shutdown requested")
			return a.shutdown()
		case err := <-errCh:
			if err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, grpc.ErrServerStopped) {
				continue
			}
			if a.logger != nil {
				a.logger.Error("server error", "error", err)
			}
			_ = a.shutdown()
			return err
		}
	}
}

func (a *App) shutdown() error {
	a.health.SetNotReady()
	if a.grpcHealth != nil {
		a.grpcHealth.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(a.baseCtx), a.shutdownTimeout)
	defer cancel()

	var grpcDone chan struct{}
	if a.grpcServer != nil {
		grpcDone = make(chan struct{})
		go func() {
			a.grpcServer.GracefulStop()
			close(grpcDone)
		}()
	}

	err := a.httpServer.Shutdown(ctx)
	if grpcDone != nil {
		select {
		case <-grpcDone:
		case <-ctx.Done():
			a.grpcServer.Stop()
		}
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logInfo("shutdown complete")
	return nil
}

func (a *App) logInfo(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}
