// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package breaker builds the circuit breakers that guard outbound provider
// calls. Every breaker logs its transitions and publishes them as a gauge.
package breaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/voxmundi/internal/platform/metrics"
)

// Defaults shared by every provider breaker.
const (
	failureThreshold = 5
	halfOpenRequests = 1
	countInterval    = time.Minute
	openTimeout      = 30 * time.Second
)

/*
New creates a breaker that opens after consecutive failures.

Parameters:
  - name: Provider name used in logs and metrics
  - logger: Logger for state transitions
  - benign: Reports errors that must not count as failures (e.g. a 404). May be nil.
    A cancelled or expired caller context never counts either.

Returns:
  - *gobreaker.CircuitBreaker[T]
*/
func New[T any](name string, logger *slog.Logger, benign func(error) bool) *gobreaker.CircuitBreaker[T] {
	metrics.SetBreakerState(name, stateValue(gobreaker.StateClosed))

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: halfOpenRequests,
		Interval:    countInterval,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || callerGaveUp(err) || (benign != nil && benign(err))
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("provider_breaker_state_changed",
				slog.String("provider", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			metrics.SetBreakerState(name, stateValue(to))
		},
	})
}

// callerGaveUp reports an error caused by the caller's own context, which says
// nothing about the provider's health.
func callerGaveUp(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsOpen reports whether err was produced by a breaker refusing the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(state gobreaker.State) int {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
