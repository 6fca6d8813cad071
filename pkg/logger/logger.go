package logger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// New creates a structured slog.Logger based on the provided level string.
// Output goes to the console as text and to JSON files under logs/, with
// errors duplicated into a dedicated error log.
func New(level string) (*slog.Logger, error) {
	handlerLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, err
	}

	appFile, err := openLogFile("app.log")
	if err != nil {
		return nil, err
	}

	errorFile, err := openLogFile("error.log")
	if err != nil {
		return nil, err
	}

	handler := &splitHandler{
		console: slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: handlerLevel}),
		file:    slog.NewJSONHandler(appFile, &slog.HandlerOptions{Level: handlerLevel}),
		errFile: slog.NewJSONHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError}),
		level:   handlerLevel,
	}

	return slog.New(handler), nil
}

func openLogFile(name string) (*os.File, error) {
	return os.OpenFile(filepath.Join("logs", name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
}

// splitHandler fans records out to the console and file handlers, routing
// errors to the error log as well.
type splitHandler struct {
	console slog.Handler
	file    slog.Handler
	errFile slog.Handler
	level   slog.Leveler
}

func (h *splitHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.console.Handle(ctx, r); err != nil {
		return err
	}

	if err := h.file.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= slog.LevelError {
		return h.errFile.Handle(ctx, r)
	}

	return nil
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{
		console: h.console.WithAttrs(attrs),
		file:    h.file.WithAttrs(attrs),
		errFile: h.errFile.WithAttrs(attrs),
		level:   h.level,
	}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{
		console: h.console.WithGroup(name),
		file:    h.file.WithGroup(name),
		errFile: h.errFile.WithGroup(name),
		level:   h.level,
	}
}

func parseLevel(level string) (slog.Leveler, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return nil, errors.New("invalid log level")
	}
}
