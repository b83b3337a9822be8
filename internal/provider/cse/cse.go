// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cse is a client for the Google Custom Search JSON API, used to
// find composer concert listings.
package cse

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/taibuivan/voxmundi/internal/provider"
)

// Name identifies Google Custom Search in logs, metrics and breaker state.
const Name = "google_cse"

// Timeout bounds one search call.
const Timeout = 12 * time.Second

const (
	site        = "www.classicalevents.co.uk"
	resultCount = "5"
)

// # Payloads

// MusicEvent is a schema.org MusicEvent entry of a result's pagemap.
type MusicEvent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startdate"`
	URL         string `json:"url"`
}

// HCalendar is an hCalendar microformat entry.
type HCalendar struct {
	DtStart string `json:"dtstart"`
	URL     string `json:"url"`
}

// MusicVenue is a schema.org MusicVenue entry.
type MusicVenue struct {
	Name string `json:"name"`
}

// PostalAddress is a schema.org PostalAddress entry.
type PostalAddress struct {
	Locality string `json:"addresslocality"`
	Street   string `json:"streetaddress"`
}

// Pagemap holds the structured data Google extracted from a page.
type Pagemap struct {
	MusicEvents []MusicEvent    `json:"musicevent"`
	HCalendars  []HCalendar     `json:"hcalendar"`
	Venues      []MusicVenue    `json:"musicvenue"`
	Addresses   []PostalAddress `json:"postaladdress"`
}

// Item is one search hit.
type Item struct {
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Link    string  `json:"link"`
	Pagemap Pagemap `json:"pagemap"`
}

// Response is the search payload.
type Response struct {
	Items []Item `json:"items"`
}

// # Client

// Config configures a [Client].
type Config struct {
	BaseURL  string
	APIKey   string
	EngineID string
}

// Client queries one programmable search engine.
type Client struct {
	http     *provider.Client
	apiKey   string
	engineID string
}

// New creates a Custom Search client.
func New(config Config, logger *slog.Logger) *Client {
	return &Client{
		http: provider.NewClient(provider.Options{
			Name:       Name,
			BaseURL:    config.BaseURL,
			Timeout:    Timeout,
			MaxRetries: 1,
		}, logger),
		apiKey:   config.APIKey,
		engineID: config.EngineID,
	}
}

// Configured reports whether both the API key and engine id are set.
func (client *Client) Configured() bool {
	return client.apiKey != "" && client.engineID != ""
}

// Search looks up concert listings for one composer.
func (client *Client) Search(ctx context.Context, composer string) (*Response, error) {
	if !client.Configured() {
		return nil, provider.ErrMissingCredential
	}

	query := url.Values{
		"key": {client.apiKey},
		"cx":  {client.engineID},
		"q":   {`"` + composer + `" concerts site:` + site},
		"num": {resultCount},
	}

	var response Response
	if err := client.http.GetJSON(ctx, "", query, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
