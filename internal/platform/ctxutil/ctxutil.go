// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil reads and writes the per-request values that middleware
// attaches: the correlation ID, the enriched logger and the admin claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/ctxkey"
	"github.com/taibuivan/yomira-galleryinfo/internal/platform/sec"
)

// lookup returns the value stored under key when it has type T and is set.
func lookup[T comparable](ctx context.Context, key any) (T, bool) {
	var zero T
	value, ok := ctx.Value(key).(T)
	if !ok || value == zero {
		return zero, false
	}
	return value, true
}

// # Request Tracing

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := lookup[string](ctx, ctxkey.KeyRequestID)
	return id
}

// # Structured Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request logger, or [slog.Default] outside a request.
func GetLogger(ctx context.Context) *slog.Logger {
	return LoggerOr(ctx, slog.Default())
}

// LoggerOr returns the request logger, or fallback when none was injected.
// Services pass their own logger so background work keeps its attributes.
func LoggerOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := lookup[*slog.Logger](ctx, ctxkey.KeyLogger); ok {
		return logger
	}
	return fallback
}

// # Identity

func WithAuthUser(ctx context.Context, user *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, user)
}

// GetAuthUser returns the verified claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := lookup[*sec.AuthClaims](ctx, ctxkey.KeyUser)
	return claims
}
