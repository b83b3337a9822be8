// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tmdb is a read-only client for The Movie Database API v3.
package tmdb

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/platform/metrics"
	"github.com/taibuivan/voxmundi/internal/provider"
)

// Name identifies TMDb in logs, metrics and breaker state.
const Name = "tmdb"

// # Payloads

// SearchResult is one hit of /search/movie.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type searchPage struct {
	Results []SearchResult `json:"results"`
}

// Genre is a named TMDb genre.
type Genre struct {
	Name string `json:"name"`
}

// CastMember is one entry of credits.cast.
type CastMember struct {
	Name      *string `json:"name"`
	Character *string `json:"character"`
}

// CrewMember is one entry of credits.crew.
type CrewMember struct {
	Name *string `json:"name"`
	Job  *string `json:"job"`
}

// Credits is the appended credits block.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Language is a spoken language entry.
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
}

// Country is a production country entry.
type Country struct {
	Code string `json:"iso_3166_1"`
	Name string `json:"name"`
}

/*
Movie is the /movie/{id}?append_to_response=credits payload.

Runtime stays raw: TMDb sometimes sends null or a string, and a bad runtime
must not sink the whole import.
*/
type Movie struct {
	ID                  int64           `json:"id"`
	Title               string          `json:"title"`
	OriginalTitle       string          `json:"original_title"`
	Tagline             string          `json:"tagline"`
	Overview            string          `json:"overview"`
	Runtime             json.RawMessage `json:"runtime"`
	Genres              []Genre         `json:"genres"`
	SpokenLanguages     []Language      `json:"spoken_languages"`
	ProductionCountries []Country       `json:"production_countries"`
	PosterPath          *string         `json:"poster_path"`
	BackdropPath        *string         `json:"backdrop_path"`
	Budget              *int64          `json:"budget"`
	Revenue             *int64          `json:"revenue"`
	ReleaseDate         string          `json:"release_date"`
	Homepage            string          `json:"homepage"`
	Credits             Credits         `json:"credits"`
}

// Image is one entry of an image set.
type Image struct {
	FilePath string  `json:"file_path"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Language *string `json:"iso_639_1"`
}

// Images is the /movie/{id}/images payload.
type Images struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// # Client

// Cache is the subset of the Redis cache the client uses.
type Cache interface {
	Get(ctx context.Context, key string, target any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Config configures a [Client].
type Config struct {
	BaseURL   string
	ReadToken string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client talks to TMDb with a bearer read token.
type Client struct {
	http       *provider.Client
	configured bool
	cache      Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// New creates a TMDb client. cache may be nil.
func New(config Config, cache Cache, logger *slog.Logger) *Client {
	return &Client{
		http: provider.NewClient(provider.Options{
			Name:       Name,
			BaseURL:    config.BaseURL,
			Timeout:    config.Timeout,
			Headers:    map[string]string{"Authorization": "Bearer " + config.ReadToken},
			MaxRetries: provider.DefaultRetries,
		}, logger),
		configured: strings.TrimSpace(config.ReadToken) != "",
		cache:      cache,
		cacheTTL:   config.CacheTTL,
		logger:     logger,
	}
}

// Configured reports whether a read token is set.
func (client *Client) Configured() bool {
	return client.configured
}

func (client *Client) get(ctx context.Context, path string, query url.Values, target any) error {
	if !client.configured {
		return provider.ErrMissingCredential
	}
	return client.http.GetJSON(ctx, path, query, target)
}

// SearchMovies runs a title search and returns the hits in TMDb order.
func (client *Client) SearchMovies(ctx context.Context, query string) ([]SearchResult, error) {
	var page searchPage
	if err := client.get(ctx, "/search/movie", url.Values{"query": {query}}, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// MovieDetails fetches a movie with its credits.
func (client *Client) MovieDetails(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	err := client.get(ctx, "/movie/"+url.PathEscape(id), url.Values{"append_to_response": {"credits"}}, &movie)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

/*
MovieImages fetches the image sets of a movie.

Description: Results are cached for the configured TTL. Cache failures are
logged and fall through to the API.
*/
func (client *Client) MovieImages(ctx context.Context, id string) (*Images, error) {
	key := "tmdb:images:" + id

	if client.cache != nil {
		var cached Images
		hit, err := client.cache.Get(ctx, key, &cached)
		if err != nil {
			client.logger.Warn("provider_cache_get_failed", slog.String("key", key), slog.Any("error", err))
		}
		metrics.RecordCacheLookup("tmdb_images", hit)
		if hit {
			return &cached, nil
		}
	}

	var images Images
	if err := client.get(ctx, "/movie/"+url.PathEscape(id)+"/images", nil, &images); err != nil {
		return nil, err
	}

	if client.cache != nil {
		if err := client.cache.Set(ctx, key, images, client.cacheTTL); err != nil {
			client.logger.Warn("provider_cache_set_failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return &images, nil
}
