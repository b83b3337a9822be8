// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/breaker"
	"github.com/taibuivan/voxmundi/internal/platform/metrics"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
)

// Config holds the importer settings.
type Config struct {
	MaxAttempts   int
	ImageBaseURL  string
	CoversBaseURL string
}

// # Service Layer

// Service imports films and books into the catalog.
type Service struct {
	films       FilmSource
	books       BookSource
	registry    Registry
	pacer       *Pacer
	maxAttempts int
	imageBase   string
	coversBase  string
	logger      *slog.Logger
}

// NewService constructs the importer [Service].
func NewService(films FilmSource, books BookSource, registry Registry, pacer *Pacer, config Config, logger *slog.Logger) *Service {
	maxAttempts := config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		films:       films,
		books:       books,
		registry:    registry,
		pacer:       pacer,
		maxAttempts: maxAttempts,
		imageBase:   config.ImageBaseURL,
		coversBase:  config.CoversBaseURL,
		logger:      logger,
	}
}

// # Batches

/*
ImportFilms imports each query as a film. Queries may be TMDb ids or
titles with an optional "(YYYY)" suffix.

Returns:
  - *Batch: One result per processed query, in input order
  - error: NotConfigured before any item when TMDb has no token, or the
    context error together with the partial batch
*/
func (service *Service) ImportFilms(ctx context.Context, queries []string) (*Batch, error) {
	if !service.films.Configured() {
		return nil, apperr.NotConfigured(tmdb.Name, provider.ErrMissingCredential)
	}

	return service.run(ctx, "film", queries, func(ctx context.Context, query string) Result {
		title, year := ParseFilmQuery(query)
		result := Result{Query: query, Title: title}

		resolution, err := service.ResolveFilm(ctx, title, year)
		if err != nil {
			return service.failed(ctx, result, err)
		}

		film, err := NormalizeFilm(resolution.Payload, service.imageBase)
		if err != nil {
			return service.failed(ctx, result, err)
		}
		result.Title, result.ExternalID = film.Title, film.TMDbID

		upserted, err := service.registry.UpsertFilm(ctx, film)
		if err != nil {
			return service.failed(ctx, result, err)
		}
		return succeeded(result, upserted)
	})
}

/*
ImportBooks imports each query as a book. Queries may be OpenLibrary work
ids or titles.
*/
func (service *Service) ImportBooks(ctx context.Context, queries []string) (*Batch, error) {
	return service.run(ctx, "book", queries, func(ctx context.Context, query string) Result {
		query = strings.TrimSpace(query)
		result := Result{Query: query, Title: query}

		resolution, err := service.ResolveBook(ctx, query)
		if err != nil {
			return service.failed(ctx, result, err)
		}

		payload := resolution.Payload
		book, err := NormalizeBook(payload.Work, payload.Author, payload.OLID, service.coversBase)
		if err != nil {
			return service.failed(ctx, result, err)
		}
		result.Title, result.ExternalID = book.Title, book.OLID

		upserted, err := service.registry.UpsertBook(ctx, book)
		if err != nil {
			return service.failed(ctx, result, err)
		}
		return succeeded(result, upserted)
	})
}

// run processes queries sequentially, checking ctx between items.
func (service *Service) run(ctx context.Context, media string, queries []string, importOne func(ctx context.Context, query string) Result) (*Batch, error) {
	batch := &Batch{Results: make([]Result, 0, len(queries))}

	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			service.logger.Warn("import_batch_cancelled",
				slog.String("media", media),
				slog.Int("processed", len(batch.Results)),
				slog.Int("total", len(queries)),
			)
			return batch, err
		}

		result := importOne(ctx, query)

		// An item cut short by cancellation is not reported.
		if ctx.Err() != nil && !isSettled(result.Status) {
			return batch, ctx.Err()
		}

		batch.add(result)
		metrics.RecordImportItem(media, string(result.Status))

		if strings.HasPrefix(string(result.Status), "error") {
			service.logger.Warn("import_item_failed",
				slog.String("media", media),
				slog.String("query", query),
				slog.String("status", string(result.Status)),
			)
		}
	}

	service.logger.Info("import_batch_finished",
		slog.String("media", media),
		slog.Int("total", len(queries)),
		slog.Int("imported", batch.ImportedCount),
	)
	return batch, nil
}

func isSettled(status Status) bool {
	return status == StatusSuccess || status == StatusAlreadyExists
}

func succeeded(result Result, upserted *catalog.Upserted) Result {
	result.Created = upserted.Created
	if upserted.Created {
		result.Status = StatusSuccess
	} else {
		result.Status = StatusAlreadyExists
	}
	return result
}

// failed classifies a per-item error into its status.
func (service *Service) failed(ctx context.Context, result Result, err error) Result {
	switch {
	case ctx.Err() != nil:
		result.Status = errorStatus(ctx.Err())
	case errors.Is(err, provider.ErrNotFound):
		result.Status = StatusNotFound
	case breaker.IsOpen(err):
		result.Status = errorStatus(errors.New("provider temporarily unavailable"))
	default:
		result.Status = errorStatus(err)
	}
	return result
}

// # Proxies

/*
FilmImages proxies the TMDb image sets of a film.

Returns:
  - error: NotConfigured, NotFound, or BadGateway for other provider failures
*/
func (service *Service) FilmImages(ctx context.Context, externalID string) (*tmdb.Images, error) {
	if !service.films.Configured() {
		return nil, apperr.NotConfigured(tmdb.Name, provider.ErrMissingCredential)
	}
	if !IsTMDbID(externalID) {
		return nil, apperr.NotFound("Film")
	}

	images, err := service.films.MovieImages(ctx, externalID)
	if err != nil {
		return nil, proxyError(tmdb.Name, "Film", err)
	}
	return images, nil
}

// SearchBooks proxies an OpenLibrary title search.
func (service *Service) SearchBooks(ctx context.Context, title string) ([]openlibrary.WorkSummary, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: "title", Message: "This field is required"})
	}

	works, err := service.books.SearchWorks(ctx, title)
	if err != nil {
		return nil, proxyError(openlibrary.Name, "Work", err)
	}
	return works, nil
}

func proxyError(name, resource string, err error) error {
	if errors.Is(err, provider.ErrNotFound) {
		return apperr.NotFound(resource)
	}
	return apperr.BadGateway(name, err)
}
