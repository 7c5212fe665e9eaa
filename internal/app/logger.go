package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Eiad-Soufan/bm-requests-frontend/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the CLI logger from cfg and installs it with
// slog.SetDefault. Format "json" selects the JSON handler; anything else gets
// the text handler with source locations. Records go to stderr, or are
// appended to cfg.File when set; the returned closer releases that file.
func NewLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("app.NewLogger: open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := slog.New(newHandler(w, cfg))
	slog.SetDefault(logger)

	return logger, closer, nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
