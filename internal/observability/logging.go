package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/weather-mcp-service/internal/config"
)

// NewLogger builds a slog.Logger from the configured level and format.
// Output goes to stderr: stdout carries the MCP stdio session and must
// stay free of anything that is not protocol traffic.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.LogFormat) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
