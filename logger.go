package snapjs

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates a slog logger writing to w with the level and handler format of conf.
// Unknown levels fall back to info and unknown formats to text.
func NewLogger(w io.Writer, conf LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(conf.Level)}

	switch strings.ToLower(conf.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts))
	default:
		return slog.New(slog.NewTextHandler(w, opts))
	}
}

func logLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
