// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics declares the Prometheus collectors exported on /metrics.

Collectors are registered once on the default registry through promauto and
are updated through the Record* helpers so callers never deal with label
ordering directly.

Families:

  - HTTP: request count and latency by chi route pattern.
  - Import: per-item outcomes of film and book batches.
  - Providers: outbound call outcomes, latency and breaker state.
  - Cache: provider lookup cache hits and misses.
*/
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxmundi_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxmundi_http_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Import
	ImportItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxmundi_import_items_total",
			Help: "Imported items by media type and outcome status",
		},
		[]string{"media", "status"},
	)

	// Providers
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxmundi_provider_requests_total",
			Help: "Outbound metadata provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "voxmundi_provider_request_duration_seconds",
			Help:    "Outbound metadata provider call latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"provider"},
	)

	// BreakerState is 0 closed, 1 half-open, 2 open.
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "voxmundi_provider_breaker_state",
			Help: "Circuit breaker state per provider (0 closed, 1 half-open, 2 open)",
		},
		[]string{"provider"},
	)

	// Cache
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "voxmundi_cache_lookups_total",
			Help: "Provider cache lookups by result",
		},
		[]string{"cache", "result"},
	)
)

// RecordHTTPRequest records one finished API request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordImportItem records one batch item outcome. Error statuses collapse to "error".
func RecordImportItem(media, status string) {
	if len(status) > 5 && status[:5] == "error" {
		status = "error"
	}
	ImportItemsTotal.WithLabelValues(media, status).Inc()
}

// RecordProviderRequest records one outbound provider call.
func RecordProviderRequest(provider, outcome string, duration time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, outcome).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// SetBreakerState publishes a breaker transition.
func SetBreakerState(provider string, state int) {
	BreakerState.WithLabelValues(provider).Set(float64(state))
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}
