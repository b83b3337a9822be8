// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package openlibrary is a read-only client for the OpenLibrary works,
// authors and search APIs.
package openlibrary

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/platform/metrics"
	"github.com/taibuivan/voxmundi/internal/provider"
)

// Name identifies OpenLibrary in logs, metrics and breaker state.
const Name = "openlibrary"

// # Payloads

// Text decodes OpenLibrary's polymorphic text fields, which arrive either as
// a plain string or as {"type": "/type/text", "value": "..."}.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (text *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*text = ""
		return nil
	}

	if data[0] == '"' {
		var plain string
		if err := json.Unmarshal(data, &plain); err != nil {
			return err
		}
		*text = Text(plain)
		return nil
	}

	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	*text = Text(typed.Value)
	return nil
}

// Key is a {"key": "/languages/eng"} reference.
type Key struct {
	Key string `json:"key"`
}

// Last returns the final path segment of the key.
func (key Key) Last() string {
	index := strings.LastIndex(key.Key, "/")
	return key.Key[index+1:]
}

// AuthorRole links a work to an author record.
type AuthorRole struct {
	Author Key `json:"author"`
}

/*
Work is the /works/{olid}.json payload.

Subjects stay untyped: the API mixes strings with objects and only the
strings are usable.
*/
type Work struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Description Text         `json:"description"`
	Subjects    []any        `json:"subjects"`
	Languages   []Key        `json:"languages"`
	Covers      []int64      `json:"covers"`
	Authors     []AuthorRole `json:"authors"`
	Created     struct {
		Value string `json:"value"`
	} `json:"created"`
	FirstPublishDate string `json:"first_publish_date"`
}

// Author is the /authors/{key}.json payload.
type Author struct {
	Name          string   `json:"name"`
	PersonalName  string   `json:"personal_name"`
	PersonalNames []string `json:"personal_names"`
	AlternateName []string `json:"alternate_names"`
}

// WorkSummary is one search hit reshaped for clients choosing a work.
type WorkSummary struct {
	WorkID           string `json:"work_id"`
	Title            string `json:"title"`
	AuthorName       string `json:"author_name"`
	FirstPublishYear *int   `json:"first_publish_year"`
	EditionCount     int    `json:"edition_count"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear *int     `json:"first_publish_year"`
	EditionCount     int      `json:"edition_count"`
}

type searchPage struct {
	Docs []searchDoc `json:"docs"`
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
	UserAgent string
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client talks to OpenLibrary. No credential is required, but a contact
// User-Agent is sent with every call.
type Client struct {
	http     *provider.Client
	cache    Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// New creates an OpenLibrary client. cache may be nil.
func New(config Config, cache Cache, logger *slog.Logger) *Client {
	return &Client{
		http: provider.NewClient(provider.Options{
			Name:       Name,
			BaseURL:    config.BaseURL,
			Timeout:    config.Timeout,
			Headers:    map[string]string{"User-Agent": config.UserAgent},
			MaxRetries: provider.DefaultRetries,
		}, logger),
		cache:    cache,
		cacheTTL: config.CacheTTL,
		logger:   logger,
	}
}

// SearchWorks runs a title search.
func (client *Client) SearchWorks(ctx context.Context, title string) ([]WorkSummary, error) {
	var page searchPage
	if err := client.http.GetJSON(ctx, "/search.json", url.Values{"title": {title}}, &page); err != nil {
		return nil, err
	}

	results := make([]WorkSummary, 0, len(page.Docs))
	for _, doc := range page.Docs {
		results = append(results, WorkSummary{
			WorkID:           Key{Key: doc.Key}.Last(),
			Title:            doc.Title,
			AuthorName:       strings.Join(doc.AuthorName, ", "),
			FirstPublishYear: doc.FirstPublishYear,
			EditionCount:     doc.EditionCount,
		})
	}
	return results, nil
}

// Work fetches a work by its OL…W identifier.
func (client *Client) Work(ctx context.Context, olid string) (*Work, error) {
	var work Work
	if err := client.http.GetJSON(ctx, "/works/"+url.PathEscape(olid)+".json", nil, &work); err != nil {
		return nil, err
	}
	return &work, nil
}

/*
Author fetches an author by key ("/authors/OL…A" or "OL…A").

Description: Authors are cached for the configured TTL since many works
share one author.
*/
func (client *Client) Author(ctx context.Context, key string) (*Author, error) {
	id := Key{Key: key}.Last()
	cacheKey := "openlibrary:author:" + id

	if client.cache != nil {
		var cached Author
		hit, err := client.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			client.logger.Warn("provider_cache_get_failed", slog.String("key", cacheKey), slog.Any("error", err))
		}
		metrics.RecordCacheLookup("openlibrary_author", hit)
		if hit {
			return &cached, nil
		}
	}

	var author Author
	if err := client.http.GetJSON(ctx, "/authors/"+url.PathEscape(id)+".json", nil, &author); err != nil {
		return nil, err
	}

	if client.cache != nil {
		if err := client.cache.Set(ctx, cacheKey, author, client.cacheTTL); err != nil {
			client.logger.Warn("provider_cache_set_failed", slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
	return &author, nil
}
