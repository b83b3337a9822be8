// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries per-request values through [context.Context]: the
// correlation id, the request-scoped logger and the caller's claims.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/voxmundi/internal/platform/sec"
)

// contextKey is unexported so no other package can read or overwrite these values.
type contextKey uint8

const (
	requestIDKey contextKey = iota + 1
	loggerKey
	authUserKey
)

// # Correlation

// WithRequestID stores the X-Request-ID value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the stored request id, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// # Logging

// WithLogger stores a logger already tagged with request attributes.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Caller

// WithAuthUser stores the verified claims of the caller.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, authUserKey, claims)
}

// GetAuthUser returns the caller's claims, or nil for an anonymous request.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(authUserKey).(*sec.AuthClaims)
	return claims
}

// GetUserID returns the caller's account id; "" means anonymous, which the
// record resolver treats as "shared records only".
func GetUserID(ctx context.Context) string {
	if claims := GetAuthUser(ctx); claims != nil {
		return claims.UserID
	}
	return ""
}
