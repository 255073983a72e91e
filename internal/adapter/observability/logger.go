// Package observability constructs the application logger.
package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/bkyoung/argus/internal/config"
)

// NewLogger builds a slog logger from config. Format "auto" picks
// tinted human-readable output when stderr is a terminal and JSON
// otherwise, so CI log collectors get machine-parseable lines without
// any workflow configuration.
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return newLogger(cfg, os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newLogger(cfg config.LoggingConfig, w io.Writer, isTerminal bool) *slog.Logger {
	level := parseLevel(cfg.Level)

	format := cfg.Format
	if format == "" || format == "auto" {
		if isTerminal {
			format = "text"
		} else {
			format = "json"
		}
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
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
