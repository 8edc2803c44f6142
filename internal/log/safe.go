package log

import (
	"context"
	"log/slog"
)

// SafeHandler wraps a handler so that write errors and panics raised by the
// logging backend never reach the caller.
type SafeHandler struct {
	// Inner is the wrapped handler.
	Inner slog.Handler
}

// Enabled reports whether the inner handler handles records at level.
func (h SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.Inner == nil {
		return false
	}
	return h.Inner.Enabled(ctx, level)
}

// Handle forwards the record and discards any failure.
func (h SafeHandler) Handle(ctx context.Context, record slog.Record) error {
	if h.Inner == nil {
		return nil
	}
	defer func() { _ = recover() }()
	_ = h.Inner.Handle(ctx, record)
	return nil
}

// WithAttrs returns a SafeHandler over the inner handler with attrs applied.
func (h SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if h.Inner == nil {
		return h
	}
	return SafeHandler{Inner: h.Inner.WithAttrs(attrs)}
}

// WithGroup returns a SafeHandler over the inner handler with the group applied.
func (h SafeHandler) WithGroup(name string) slog.Handler {
	if h.Inner == nil {
		return h
	}
	return SafeHandler{Inner: h.Inner.WithGroup(name)}
}
