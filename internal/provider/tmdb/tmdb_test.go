// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tmdb_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
)

type memoryCache struct {
	values map[string][]byte
}

func (cache *memoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	raw, ok := cache.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

func (cache *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	cache.values[key] = raw
	return err
}

func newClient(t *testing.T, token string, cache tmdb.Cache, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tmdb.New(tmdb.Config{BaseURL: server.URL, ReadToken: token, Timeout: time.Second, CacheTTL: time.Hour},
		cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestMovieDetails verifies the bearer token, credits expansion and decoding.
*/
func TestMovieDetails(t *testing.T) {
	client := newClient(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		_, _ = w.Write([]byte(`{
			"id": 550, "title": "Fight Club", "runtime": 139,
			"genres": [{"name": "Drama"}],
			"poster_path": "/p.jpg", "backdrop_path": null,
			"credits": {"cast": [{"name": "Brad Pitt", "character": "Tyler Durden"}], "crew": [{"name": "David Fincher", "job": "Director"}]}
		}`))
	})

	movie, err := client.MovieDetails(context.Background(), "550")
	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.JSONEq(t, "139", string(movie.Runtime))
	require.Len(t, movie.Credits.Crew, 1)
	assert.Equal(t, "Director", *movie.Credits.Crew[0].Job)
	assert.Nil(t, movie.BackdropPath)
}

func TestSearchMovies(t *testing.T) {
	client := newClient(t, "secret", nil, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Ran", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"results": [{"id": 11645, "title": "Ran", "release_date": "1985-06-01"}]}`))
	})

	results, err := client.SearchMovies(context.Background(), "Ran")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(11645), results[0].ID)
}

/*
TestMissingToken verifies no request leaves without a credential.
*/
func TestMissingToken(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, "", nil, func(http.ResponseWriter, *http.Request) { calls.Add(1) })

	assert.False(t, client.Configured())
	_, err := client.SearchMovies(context.Background(), "Ran")
	assert.ErrorIs(t, err, provider.ErrMissingCredential)
	assert.Zero(t, calls.Load())
}

/*
TestMovieImages_Cached verifies the second lookup is served from cache.
*/
func TestMovieImages_Cached(t *testing.T) {
	var calls atomic.Int32
	cache := &memoryCache{values: map[string][]byte{}}
	client := newClient(t, "secret", cache, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/movie/11645/images", r.URL.Path)
		_, _ = w.Write([]byte(`{"backdrops": [{"file_path": "/b.jpg", "width": 1920, "height": 1080, "iso_639_1": null}], "posters": [], "logos": []}`))
	})

	first, err := client.MovieImages(context.Background(), "11645")
	require.NoError(t, err)
	second, err := client.MovieImages(context.Background(), "11645")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, "/b.jpg", second.Backdrops[0].FilePath)
}
