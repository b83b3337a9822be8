// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package provider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/platform/breaker"
	"github.com/taibuivan/voxmundi/internal/provider"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, name string, handler http.HandlerFunc, tweak ...func(*provider.Options)) *provider.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	options := provider.Options{
		Name:           name,
		BaseURL:        server.URL,
		Timeout:        time.Second,
		Headers:        map[string]string{"User-Agent": "VoxMundi-Test"},
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
		MaxRetryDelay:  5 * time.Millisecond,
	}
	for _, fn := range tweak {
		fn(&options)
	}
	return provider.NewClient(options, quietLogger())
}

type payload struct {
	Title string `json:"title"`
}

/*
TestGetJSON_Success verifies decoding, query encoding and static headers.
*/
func TestGetJSON_Success(t *testing.T) {
	client := newClient(t, "test-success", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "dune", r.URL.Query().Get("q"))
		assert.Equal(t, "VoxMundi-Test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"title": "Dune"}`))
	})

	var out payload
	err := client.GetJSON(context.Background(), "/search", url.Values{"q": {"dune"}}, &out)

	require.NoError(t, err)
	assert.Equal(t, "Dune", out.Title)
}

/*
TestGetJSON_StatusMapping covers how final statuses surface.
*/
func TestGetJSON_StatusMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantCalls   int32
		rateLimited bool
	}{
		{name: "404 is not retried", status: http.StatusNotFound, wantCalls: 1},
		{name: "503 is retried then not found", status: http.StatusServiceUnavailable, wantCalls: 3},
		{name: "429 is retried then rate limited", status: http.StatusTooManyRequests, wantCalls: 3, rateLimited: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newClient(t, "test-status-"+tt.name, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			})

			err := client.GetJSON(context.Background(), "/x", nil, &payload{})

			assert.ErrorIs(t, err, provider.ErrNotFound)
			assert.Equal(t, tt.rateLimited, errors.Is(err, provider.ErrRateLimited))
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

/*
TestGetJSON_RecoversAfterRetry verifies a transient 429 is absorbed.
*/
func TestGetJSON_RecoversAfterRetry(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, "test-recover", func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"title": "Ran"}`))
	})

	var out payload
	require.NoError(t, client.GetJSON(context.Background(), "/movie/11645", nil, &out))
	assert.Equal(t, "Ran", out.Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetJSON_Malformed(t *testing.T) {
	client := newClient(t, "test-malformed", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title": 42}`))
	})

	err := client.GetJSON(context.Background(), "/x", nil, &payload{})
	assert.ErrorIs(t, err, provider.ErrMalformedPayload)
}

/*
TestGetJSON_TimeoutIsNotFound verifies a client-side timeout reads as a miss.
*/
func TestGetJSON_TimeoutIsNotFound(t *testing.T) {
	client := newClient(t, "test-timeout", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}, func(options *provider.Options) {
		options.Timeout = 20 * time.Millisecond
	})

	err := client.GetJSON(context.Background(), "/slow", nil, &payload{})
	assert.ErrorIs(t, err, provider.ErrNotFound)
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	client := newClient(t, "test-cancel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}, func(options *provider.Options) {
		options.RetryBaseDelay = time.Second
		options.MaxRetryDelay = time.Second
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := client.GetJSON(ctx, "/x", nil, &payload{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

/*
TestGetJSON_BreakerIgnoresNotFound verifies 404s never open the breaker
while repeated 5xx do.
*/
func TestGetJSON_BreakerIgnoresNotFound(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusNotFound)

	client := newClient(t, "test-breaker", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(int(status.Load()))
	}, func(options *provider.Options) {
		options.MaxRetries = 0
	})

	for range 10 {
		err := client.GetJSON(context.Background(), "/x", nil, &payload{})
		assert.ErrorIs(t, err, provider.ErrNotFound)
	}

	status.Store(http.StatusBadGateway)
	for range 5 {
		_ = client.GetJSON(context.Background(), "/x", nil, &payload{})
	}

	err := client.GetJSON(context.Background(), "/x", nil, &payload{})
	assert.True(t, breaker.IsOpen(err))
}

/*
TestGetJSON_CancelledCallersKeepBreakerClosed verifies that callers abandoning
their requests do not lock other callers out of a healthy provider.
*/
func TestGetJSON_CancelledCallersKeepBreakerClosed(t *testing.T) {
	client := newClient(t, "test-cancel-breaker", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"title":"Stalker"}`))
	})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	for range 10 {
		err := client.GetJSON(cancelled, "/x", nil, &payload{})
		assert.ErrorIs(t, err, context.Canceled)
	}

	var got payload
	require.NoError(t, client.GetJSON(context.Background(), "/x", nil, &got))
	assert.Equal(t, "Stalker", got.Title)
}
