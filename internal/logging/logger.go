// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package logging builds the structured logger shared by every
// forwarder component: the client handle, the background worker, and
// the CLI driver all log through the same *slog.Logger, tagged with a
// "component" attribute so a single aggregator connection's worker
// logs can be told apart from the client-side submit logs.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// componentKey is the attribute every forwarder subsystem attaches to
// its logger via Component, so log lines can be filtered by the part
// of the pipeline that emitted them (forwarder_client, forwarder_worker, ...).
const componentKey = "component"

// NewLogger builds a slog.Logger for the given level and format.
// Supported formats: "json" (default) and "text". Supported levels:
// "debug", "info" (default), "warn"/"warning", "error". When filePath
// is non-empty, log lines go to both stdout and the file; the returned
// io.Closer must be closed on shutdown to flush and release the file.
// When filePath is empty, the returned Closer is a no-op.
func NewLogger(level, format, filePath string) (*slog.Logger, io.Closer) {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{Level: lvl}

	var w io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(strings.NewReader(""))

	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			// Can't open the sink; fall back to stdout rather than fail startup.
			fmt.Fprintf(os.Stderr, "WARNING: could not open log file %q: %v (logging to stdout only)\n", filePath, err)
		} else {
			w = io.MultiWriter(os.Stdout, f)
			closer = f
		}
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler), closer
}

// Component derives a child logger tagged with name, e.g.
// logging.Component(base, "forwarder_worker"). Every long-lived
// forwarder subsystem (the Client facade, the background worker) calls
// this once at construction instead of hand-rolling its own
// logger.With("component", ...) call, so the attribute key stays
// consistent across the codebase.
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With(componentKey, name)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
