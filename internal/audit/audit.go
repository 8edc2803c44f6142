package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/security"
)

// Event represents one structured log entry on the tool execution path.
type Event struct {
	// Method is the HTTP method or gRPC full method.
	Method string
	// Path is the HTTP path or transport name.
	Path string
	// Message is the human-readable event text.
	Message string
	// ToolName is the tool being executed.
	ToolName string
	// Status is the execution status, when known.
	Status string
	// Arguments are logged redacted and only at debug level.
	Arguments any
	// Duration is the time spent executing, when known.
	Duration time.Duration
	// Err elevates the event to error level.
	Err error
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event. It never fails.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event tagged with the request id from ctx.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}

	level := slog.LevelInfo
	if event.Err != nil {
		level = slog.LevelError
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		slog.String("request_id", correlation.RequestID(ctx)),
		slog.String("method", event.Method),
		slog.String("path", event.Path),
	}
	if event.ToolName != "" {
		attrs = append(attrs, slog.String("tool_name", event.ToolName))
	}
	if event.Status != "" {
		attrs = append(attrs, slog.String("status", event.Status))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Int64("duration_ms", event.Duration.Milliseconds()))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	if event.Arguments != nil && l.logger.Enabled(ctx, slog.LevelDebug) {
		attrs = append(attrs, slog.Any("arguments", security.RedactArguments(event.Arguments)))
	}
	l.logger.LogAttrs(ctx, level, event.Message, attrs...)
}

// Nop discards events.
type Nop struct{}

// Record implements Logger.
func (Nop) Record(context.Context, Event) {}
