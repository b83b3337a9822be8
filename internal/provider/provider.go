// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package provider holds the HTTP plumbing shared by the third-party metadata
clients (TMDb, OpenLibrary, Google Custom Search).

Every client goes through [Client.GetJSON], which applies the same policy:

  - A per-call timeout from the http.Client.
  - Retries on 429 and 5xx with exponential delays, honouring Retry-After.
  - A circuit breaker per provider. 4xx answers other than 429 do not trip it.
  - Prometheus outcome counters and latency per provider.

Failures are reported through the sentinels below so callers can classify
them without looking at status codes.
*/
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/taibuivan/voxmundi/internal/platform/breaker"
	"github.com/taibuivan/voxmundi/internal/platform/metrics"
)

// # Sentinel Errors

var (
	// ErrNotFound covers 404s, other non-2xx answers after retries and timeouts.
	ErrNotFound = errors.New("provider: not found")

	// ErrMissingCredential is returned before any request when a key is unset.
	ErrMissingCredential = errors.New("provider: missing credential")

	// ErrRateLimited is joined with ErrNotFound when 429s outlast the retries.
	ErrRateLimited = errors.New("provider: rate limited")

	// ErrMalformedPayload reports a body that does not decode into the expected shape.
	ErrMalformedPayload = errors.New("provider: malformed payload")
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// # Options

// Options configures a [Client].
type Options struct {
	Name    string
	BaseURL string
	Timeout time.Duration

	// Headers are sent with every request.
	Headers map[string]string

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries     int
	RetryBaseDelay time.Duration
	MaxRetryDelay  time.Duration
}

func (options Options) withDefaults() Options {
	if options.Timeout <= 0 {
		options.Timeout = 10 * time.Second
	}
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}
	if options.RetryBaseDelay <= 0 {
		options.RetryBaseDelay = 500 * time.Millisecond
	}
	if options.MaxRetryDelay <= 0 {
		options.MaxRetryDelay = 5 * time.Second
	}
	return options
}

// DefaultRetries is the retry budget used by production clients.
const DefaultRetries = 3

// # Client

// Client performs guarded JSON GETs against one provider.
type Client struct {
	options Options
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// NewClient constructs a [Client] with its own breaker.
func NewClient(options Options, logger *slog.Logger) *Client {
	options = options.withDefaults()
	return &Client{
		options: options,
		http:    &http.Client{Timeout: options.Timeout},
		breaker: breaker.New[[]byte](options.Name, logger, isClientError),
		logger:  logger,
	}
}

// Name returns the provider name used in logs and metrics.
func (client *Client) Name() string {
	return client.options.Name
}

// statusError carries the final HTTP status of a failed call.
type statusError struct {
	status int
}

func (err *statusError) Error() string {
	return "provider: unexpected status " + strconv.Itoa(err.status)
}

func (err *statusError) Unwrap() error {
	if err.status == http.StatusTooManyRequests {
		return errors.Join(ErrNotFound, ErrRateLimited)
	}
	return ErrNotFound
}

// isClientError keeps 4xx answers other than 429 from tripping the breaker.
func isClientError(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		return status.status >= 400 && status.status < 500 && status.status != http.StatusTooManyRequests
	}
	return false
}

/*
GetJSON fetches path (relative to the base URL) with query and decodes the
body into target.

Returns:
  - error: ErrNotFound, ErrMalformedPayload, a breaker refusal, the context
    error, or a wrapped transport failure
*/
func (client *Client) GetJSON(ctx context.Context, path string, query url.Values, target any) error {
	endpoint := strings.TrimRight(client.options.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	start := time.Now()
	body, err := client.breaker.Execute(func() ([]byte, error) {
		return client.fetch(ctx, endpoint)
	})
	if err != nil {
		client.record(outcome(err), start)
		return client.classify(err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		client.record("malformed", start)
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, client.options.Name, err)
	}

	client.record("ok", start)
	return nil
}

func (client *Client) classify(err error) error {
	if breaker.IsOpen(err) {
		return fmt.Errorf("%s: %w", client.options.Name, err)
	}
	return err
}

func (client *Client) record(outcome string, start time.Time) {
	metrics.RecordProviderRequest(client.options.Name, outcome, time.Since(start))
}

func outcome(err error) string {
	switch {
	case breaker.IsOpen(err):
		return "breaker_open"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

// fetch performs the request, retrying 429 and 5xx answers.
func (client *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	var lastStatus int

	for attempt := 0; attempt <= client.options.MaxRetries; attempt++ {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("%s: build request: %w", client.options.Name, err)
		}
		request.Header.Set("Accept", "application/json")
		for key, value := range client.options.Headers {
			request.Header.Set(key, value)
		}

		response, err := client.http.Do(request)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return nil, fmt.Errorf("%w: %s timed out", ErrNotFound, client.options.Name)
			}
			return nil, fmt.Errorf("%s: request failed: %w", client.options.Name, err)
		}

		if response.StatusCode >= 200 && response.StatusCode < 300 {
			body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
			_ = response.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("%s: read body: %w", client.options.Name, err)
			}
			return body, nil
		}

		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodyBytes))
		_ = response.Body.Close()
		lastStatus = response.StatusCode

		retryable := response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500
		if !retryable || attempt == client.options.MaxRetries {
			break
		}

		delay := client.delay(attempt, response.Header.Get("Retry-After"))
		client.logger.Debug("provider_retry",
			slog.String("provider", client.options.Name),
			slog.Int("status", response.StatusCode),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
		)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &statusError{status: lastStatus}
}

// delay doubles from the base delay and prefers a Retry-After in seconds,
// both capped at MaxRetryDelay.
func (client *Client) delay(attempt int, retryAfter string) time.Duration {
	delay := client.options.RetryBaseDelay * time.Duration(1<<uint(attempt))
	if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
		delay = time.Duration(seconds) * time.Second
	}
	return min(delay, client.options.MaxRetryDelay)
}
