// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared by the server, middleware
// and auth layers. Anything an operator should tune lives in config instead.
package constants

import "time"

const (
	AppName    = "voxmundi-api"
	AppVersion = "0.1.0-dev"
)

// # HTTP Server

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second

	// GlobalRequestTimeout bounds a whole request and doubles as the Postgres statement_timeout.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the drain period for in-flight requests.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Per-IP token bucket applied to every route.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Idle IP buckets are swept every RateLimitCleanupInterval once older than RateLimitClientTTL.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute

	// Per-user budget for the film and book import endpoints.
	ImportRateLimitRequests = 10
	ImportRateLimitWindow   = time.Minute
)

// # Authentication

const (
	AuthIssuer = "voxmundi.app"

	RefreshTokenCookieName = "refresh_token"
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Headers and Body Fields

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"

	FieldError = "error"
	FieldCode  = "code"
)
