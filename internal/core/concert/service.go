// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package concert

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/cse"
)

const (
	// MaxComposers bounds one search request.
	MaxComposers = 20

	// staleAfter keeps events that started within the last day.
	staleAfter = 24 * time.Hour
)

// Searcher is the Custom Search surface the service needs.
type Searcher interface {
	Configured() bool
	Search(ctx context.Context, composer string) (*cse.Response, error)
}

// # Service Layer

// Service fans composer searches out over a bounded worker pool.
type Service struct {
	searcher Searcher
	workers  int
	logger   *slog.Logger
}

// NewService constructs a concert [Service] running at most workers
// searches at once.
func NewService(searcher Searcher, workers int, logger *slog.Logger) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{searcher: searcher, workers: workers, logger: logger}
}

/*
Search finds upcoming concerts for the given composers.

Description: Blank and repeated composers are ignored. Each composer is
searched on its own worker; a failed search is logged and contributes no
events. Results are joined, dropped when undated or older than a day, and
sorted by date.

Returns:
  - []Event: Upcoming events, earliest first
  - error: Validation failure or NotConfigured
*/
func (service *Service) Search(ctx context.Context, composers []string) ([]Event, error) {
	unique := dedupe(composers)
	if len(unique) == 0 {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "composer", Message: "At least one composer is required"})
	}
	if len(unique) > MaxComposers {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "composer", Message: "At most 20 composers are allowed"})
	}
	if !service.searcher.Configured() {
		return nil, apperr.NotConfigured(cse.Name, provider.ErrMissingCredential)
	}

	found := make([][]Event, len(unique))

	var group errgroup.Group
	group.SetLimit(service.workers)

	for index, composer := range unique {
		group.Go(func() error {
			response, err := service.searcher.Search(ctx, composer)
			if err != nil {
				service.logger.Warn("concert_search_failed",
					slog.String("composer", composer),
					slog.Any("error", err),
				)
				return nil
			}
			found[index] = ParseResults(response, composer)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-staleAfter)
	upcoming := []Event{}
	for _, events := range found {
		for _, event := range events {
			if event.Date != nil && !event.Date.Before(cutoff) {
				upcoming = append(upcoming, event)
			}
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(*upcoming[j].Date)
	})

	service.logger.Debug("concert_search_finished",
		slog.Int("composers", len(unique)),
		slog.Int("events", len(upcoming)),
	)
	return upcoming, nil
}

// dedupe trims composers and drops blanks and case-insensitive repeats.
func dedupe(composers []string) []string {
	seen := map[string]bool{}
	unique := make([]string, 0, len(composers))
	for _, composer := range composers {
		composer = strings.TrimSpace(composer)
		key := strings.ToLower(composer)
		if composer == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, composer)
	}
	return unique
}
