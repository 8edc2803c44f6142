package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// MessageKey replaces slog's default "msg" key in emitted records.
const MessageKey = "message"

// New builds a JSON slog logger with the given level that writes to stdout.
func New(level string) *slog.Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter builds a JSON slog logger writing to w. Backend failures are
// swallowed by SafeHandler.
func NewWithWriter(level string, w io.Writer) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: renameMessage,
	})
	return slog.New(SafeHandler{Inner: handler})
}

// ParseLevel maps a LOG_LEVEL value to a slog level; unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func renameMessage(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.MessageKey {
		attr.Key = MessageKey
	}
	return attr
}
