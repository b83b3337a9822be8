// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
	"github.com/taibuivan/voxmundi/pkg/convert"
)

// # Collaborators

// FilmSource is the TMDb surface the importer needs.
type FilmSource interface {
	Configured() bool
	SearchMovies(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	MovieDetails(ctx context.Context, id string) (*tmdb.Movie, error)
	MovieImages(ctx context.Context, id string) (*tmdb.Images, error)
}

// BookSource is the OpenLibrary surface the importer needs.
type BookSource interface {
	SearchWorks(ctx context.Context, title string) ([]openlibrary.WorkSummary, error)
	Work(ctx context.Context, olid string) (*openlibrary.Work, error)
	Author(ctx context.Context, key string) (*openlibrary.Author, error)
}

// Registry is the catalog surface the importer writes to.
type Registry interface {
	Exists(ctx context.Context, externalID string, itemType catalog.ItemType) (bool, error)
	UpsertFilm(ctx context.Context, film *catalog.Film) (*catalog.Upserted, error)
	UpsertBook(ctx context.Context, book *catalog.Book) (*catalog.Upserted, error)
}

// # Candidate Walk

/*
walk examines candidates in order and returns the first one not yet in the
registry, examining at most maxAttempts of them.

Returns:
  - string: The chosen candidate id
  - []string: Ids skipped as already registered
  - int: Candidates examined
  - error: ErrNotFound when none qualified within the bound
*/
func (service *Service) walk(ctx context.Context, candidates []string, itemType catalog.ItemType) (string, []string, int, error) {
	skipped := []string{}
	attempts := 0

	for _, candidate := range candidates {
		if attempts >= service.maxAttempts {
			break
		}
		attempts++

		exists, err := service.registry.Exists(ctx, candidate, itemType)
		if err != nil {
			return "", skipped, attempts, err
		}
		if !exists {
			return candidate, skipped, attempts, nil
		}
		skipped = append(skipped, candidate)
	}

	return "", skipped, attempts, provider.ErrNotFound
}

/*
ResolveFilm finds the TMDb movie for a query.

Description: A numeric query without a year is fetched directly as an id;
"1917 (2019)" is a title search. Otherwise the title is
searched, hits are narrowed to the release year when one is given, and the
hits are walked in order skipping films already registered.

Parameters:
  - query: string (TMDb id or title)
  - year: int (0 for any)

Returns:
  - *Resolution[*tmdb.Movie]
  - error: ErrNotFound when nothing qualifies
*/
func (service *Service) ResolveFilm(ctx context.Context, query string, year int) (*Resolution[*tmdb.Movie], error) {
	if year == 0 && IsTMDbID(query) {
		movie, err := service.movieDetails(ctx, query)
		if err != nil {
			return nil, err
		}
		return &Resolution[*tmdb.Movie]{Payload: movie, Skipped: []string{}, Attempts: 1}, nil
	}

	if err := service.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	results, err := service.films.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0, len(results))
	for _, result := range results {
		if year != 0 && convert.YearPrefix(result.ReleaseDate) != year {
			continue
		}
		candidates = append(candidates, strconv.FormatInt(result.ID, 10))
	}

	chosen, skipped, attempts, err := service.walk(ctx, candidates, catalog.ItemFilm)
	if err != nil {
		return &Resolution[*tmdb.Movie]{Skipped: skipped, Attempts: attempts}, err
	}

	movie, err := service.movieDetails(ctx, chosen)
	if err != nil {
		return nil, err
	}
	return &Resolution[*tmdb.Movie]{Payload: movie, Skipped: skipped, Attempts: attempts}, nil
}

func (service *Service) movieDetails(ctx context.Context, id string) (*tmdb.Movie, error) {
	if err := service.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	return service.films.MovieDetails(ctx, id)
}

// BookPayload is a resolved work with its first author, when it has one.
type BookPayload struct {
	OLID   string
	Work   *openlibrary.Work
	Author *openlibrary.Author
}

/*
ResolveBook finds the OpenLibrary work for a query.

Description: An OL…W id is fetched directly. Otherwise the title is
searched and hits are walked like films. The first author is fetched too;
a failed author lookup leaves the author unset.
*/
func (service *Service) ResolveBook(ctx context.Context, query string) (*Resolution[*BookPayload], error) {
	olid := query
	resolution := &Resolution[*BookPayload]{Skipped: []string{}, Attempts: 1}

	if !IsWorkID(query) {
		if err := service.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		works, err := service.books.SearchWorks(ctx, query)
		if err != nil {
			return nil, err
		}

		candidates := make([]string, 0, len(works))
		for _, work := range works {
			if work.WorkID != "" {
				candidates = append(candidates, work.WorkID)
			}
		}

		chosen, skipped, attempts, err := service.walk(ctx, candidates, catalog.ItemBook)
		resolution.Skipped, resolution.Attempts = skipped, attempts
		if err != nil {
			return resolution, err
		}
		olid = chosen
	}

	if err := service.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	work, err := service.books.Work(ctx, olid)
	if err != nil {
		return nil, err
	}

	payload := &BookPayload{OLID: olid, Work: work}
	if len(work.Authors) > 0 {
		if err := service.pacer.Wait(ctx); err != nil {
			return nil, err
		}
		author, err := service.books.Author(ctx, work.Authors[0].Author.Key)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			service.logger.Warn("import_author_lookup_failed", slog.String("olid", olid), slog.Any("error", err))
		} else {
			payload.Author = author
		}
	}

	resolution.Payload = payload
	return resolution, nil
}
