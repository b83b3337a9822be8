// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/api"
	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/concert"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/importer"
	"github.com/taibuivan/voxmundi/internal/core/person"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/config"
	"github.com/taibuivan/voxmundi/internal/platform/sec"
	"github.com/taibuivan/voxmundi/internal/provider/cse"
	"github.com/taibuivan/voxmundi/internal/users/auth"
	"github.com/taibuivan/voxmundi/internal/users/profile"
)

type rejectAll struct{}

func (rejectAll) VerifyToken(string) (*sec.AuthClaims, error) {
	return nil, errors.New("no tokens in this test")
}

func newTestServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	concerts := concert.NewService(cse.New(cse.Config{}, logger), 2, logger)

	cfg := &config.Config{ServerPort: "0", Environment: "test"}
	server := api.NewServer(ctx, cfg, logger, rejectAll{}, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(nil, false),
		Profile:   profile.NewHandler(nil),
		Culture:   culture.NewHandler(nil),
		Catalog:   catalog.NewHandler(nil),
		Importer:  importer.NewHandler(nil),
		Record:    record.NewHandler(nil, nil),
		Concert:   concert.NewHandler(concerts),
		Person:    person.NewHandler(nil),
	})
	return server.Handler()
}

func get(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, nil))
	return recorder
}

/*
TestReadiness reports degraded when any dependency fails its ping.
*/
func TestReadiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantBody   string
	}{
		{name: "all healthy", deps: api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, wantStatus: http.StatusOK, wantBody: `"ready"`},
		{name: "cache down", deps: api.HealthDependencies{CheckDatabase: healthy, CheckCache: down}, wantStatus: http.StatusServiceUnavailable, wantBody: `"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.deps)

			recorder := get(t, handler, http.MethodGet, "/ready")
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

/*
TestRoutes checks the mounted surface without touching storage.
*/
func TestRoutes(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "liveness", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{name: "film import needs a session", method: http.MethodPost, path: "/api/v1/films/import", wantStatus: http.StatusUnauthorized},
		{name: "book import needs a session", method: http.MethodPost, path: "/api/v1/books/import", wantStatus: http.StatusUnauthorized},
		{name: "record writes need a session", method: http.MethodPost, path: "/api/v1/items", wantStatus: http.StatusUnauthorized},
		{name: "page content writes need a session", method: http.MethodPost, path: "/api/v1/page-contents", wantStatus: http.StatusUnauthorized},
		{name: "map border edits need a session", method: http.MethodPatch, path: "/api/v1/map-borders/0190a0c4-0000-7000-8000-000000000002", wantStatus: http.StatusUnauthorized},
		{name: "language table removal needs a session", method: http.MethodDelete, path: "/api/v1/language-tables/0190a0c4-0000-7000-8000-000000000003", wantStatus: http.StatusUnauthorized},
		{name: "own profile needs a session", method: http.MethodGet, path: "/api/v1/profiles/me", wantStatus: http.StatusUnauthorized},
		{name: "person removal needs a session", method: http.MethodDelete, path: "/api/v1/people/0190a0c4-0000-7000-8000-000000000001", wantStatus: http.StatusUnauthorized},
		{name: "concerts without search credentials", method: http.MethodGet, path: "/api/v1/concerts?composer=Bach", wantStatus: http.StatusServiceUnavailable, wantBody: "PROVIDER_NOT_CONFIGURED"},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nowhere", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(t, handler, tt.method, tt.path)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}

	metricsResponse := get(t, handler, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, metricsResponse.Code)
	assert.Contains(t, metricsResponse.Body.String(), "voxmundi_http_requests_total")
}
