package common

import (
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// NewLogger builds the application logger. Text output uses tint for
// readable development logs, anything else is JSON.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLogLevel(level)

	if strings.ToLower(format) == LogFormatText {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
			AddSource:  lvl == slog.LevelDebug,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}))
}

func ParseLogLevel(level string) slog.Level {
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
