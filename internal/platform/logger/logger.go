// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the structured JSON logger shared by the API server
// and the batch CLI.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

// New returns a JSON [slog.Logger] writing to w with the global "app" attribute.
// A nil writer means stdout.
func New(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// SetDefault builds a logger with [New] and installs it as the process default.
func SetDefault(w io.Writer, debug bool) *slog.Logger {
	log := New(w, debug)
	slog.SetDefault(log)
	return log
}
