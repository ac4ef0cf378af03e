// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// buildLogger wires the status bar handler together with an optional
// JSON file handler. The cleanup function closes the file; it is a
// no-op when no file output was requested.
func buildLogger(tuiHandler slog.Handler, output, level string) (*slog.Logger, func(), error) {
	if output == "" {
		return slog.New(tuiHandler), func() {}, nil
	}

	fileLevel, err := parseLogLevel(level)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output: %w", err)
	}
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: fileLevel})
	cleanup := func() { file.Close() }
	return slog.New(fanoutHandler{tuiHandler, fileHandler}), cleanup, nil
}

func parseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", level)
}

// fanoutHandler delivers each record to every wrapped handler that
// accepts its level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		wrapped[i] = handler.WithAttrs(attrs)
	}
	return wrapped
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	wrapped := make(fanoutHandler, len(handlers))
	for i, handler := range handlers {
		wrapped[i] = handler.WithGroup(name)
	}
	return wrapped
}
