package logger

import (
	"log/slog"
	"os"

	"github.com/creativecommons/linkchecker/pkg/config"
)

// InitLogger installs the process-wide slog logger. verbose forces debug
// level regardless of the configured one; the original verbose-only
// diagnostics are debug-level events.
func InitLogger(cfg *config.Config, verbose bool) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	level := parseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				// Only use bunyan levels if JSON
				if cfg.Logging.Format != "text" {
					level := a.Value.Any().(slog.Level)
					return slog.Int(a.Key, bunyanLevel(level))
				}
			}
			return a
		},
	}

	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	logger := slog.New(handler).With(
		"name", "linkchecker",
		"pid", os.Getpid(),
		"hostname", hostname,
	)
	slog.SetDefault(logger)
}

func parseLevel(s string) slog.Level {
	switch s {
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

func bunyanLevel(level slog.Level) int {
	switch {
	case level >= slog.LevelError:
		return 50
	case level >= slog.LevelWarn:
		return 40
	case level >= slog.LevelInfo:
		return 30
	case level >= slog.LevelDebug:
		return 20
	default:
		return 10
	}
}
