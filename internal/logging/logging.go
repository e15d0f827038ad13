// Package logging configures the process wide slog logger.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log level and the optional rotating log file.
type Options struct {
	Level string
	File  string
	// Console receives the text output; os.Stderr when nil.
	Console io.Writer
}

// multiHandler dispatches log records to multiple handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h.handlers {
		if hh.Enabled(ctx, r.Level) {
			if err := hh.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		handlers[i] = hh.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, hh := range h.handlers {
		handlers[i] = hh.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// ParseLevel maps debug, info, warn and error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// New builds a logger writing text to the console at the configured level.
// When a log file is set, records are also written there as JSON at debug
// level, with rotation handled by lumberjack.
// The returned cleanup function closes the log file.
func New(opts Options) (*slog.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: level,
	})

	if opts.File == "" {
		return slog.New(consoleHandler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
	}

	fileHandler := slog.NewJSONHandler(lj, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})

	logger := slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})

	cleanup := func() {
		if err := lj.Close(); err != nil {
			logger.Error("Failed to close log file", "error", err)
		}
	}
	return logger, cleanup, nil
}
