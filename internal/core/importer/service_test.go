// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/importer"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
)

// # Fakes

type fakeTMDb struct {
	configured bool
	movies     map[string]*tmdb.Movie
	search     map[string][]tmdb.SearchResult
	calls      int
}

func (source *fakeTMDb) Configured() bool { return source.configured }

func (source *fakeTMDb) SearchMovies(_ context.Context, query string) ([]tmdb.SearchResult, error) {
	source.calls++
	return source.search[query], nil
}

func (source *fakeTMDb) MovieDetails(_ context.Context, id string) (*tmdb.Movie, error) {
	source.calls++
	movie, ok := source.movies[id]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return movie, nil
}

func (source *fakeTMDb) MovieImages(_ context.Context, id string) (*tmdb.Images, error) {
	source.calls++
	if id == "502" {
		return nil, errors.New("tmdb: 502 bad gateway")
	}
	if _, ok := source.movies[id]; !ok {
		return nil, provider.ErrNotFound
	}
	return &tmdb.Images{Posters: []tmdb.Image{{FilePath: "/poster.jpg", Width: 500, Height: 750}}}, nil
}

type fakeOpenLibrary struct {
	works  map[string]*openlibrary.Work
	search map[string][]openlibrary.WorkSummary
}

func (source *fakeOpenLibrary) SearchWorks(_ context.Context, title string) ([]openlibrary.WorkSummary, error) {
	return source.search[title], nil
}

func (source *fakeOpenLibrary) Work(_ context.Context, olid string) (*openlibrary.Work, error) {
	work, ok := source.works[olid]
	if !ok {
		return nil, provider.ErrNotFound
	}
	return work, nil
}

func (source *fakeOpenLibrary) Author(_ context.Context, key string) (*openlibrary.Author, error) {
	if strings.HasSuffix(key, "OL1A") {
		return &openlibrary.Author{Name: "Frank Herbert"}, nil
	}
	return nil, errors.New("openlibrary: 500")
}

type memoryRegistry struct {
	mu       sync.Mutex
	existing map[string]bool
	films    []*catalog.Film
	books    []*catalog.Book
	onUpsert func()
}

func newRegistry(existing ...string) *memoryRegistry {
	registry := &memoryRegistry{existing: map[string]bool{}}
	for _, key := range existing {
		registry.existing[key] = true
	}
	return registry
}

func (registry *memoryRegistry) Exists(_ context.Context, externalID string, itemType catalog.ItemType) (bool, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.existing[string(itemType)+":"+externalID], nil
}

func (registry *memoryRegistry) upsert(key string) *catalog.Upserted {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	created := !registry.existing[key]
	registry.existing[key] = true
	if registry.onUpsert != nil {
		registry.onUpsert()
	}
	return &catalog.Upserted{Item: &catalog.UniversalItem{ExternalID: key}, Created: created}
}

func (registry *memoryRegistry) UpsertFilm(_ context.Context, film *catalog.Film) (*catalog.Upserted, error) {
	registry.films = append(registry.films, film)
	return registry.upsert(string(catalog.ItemFilm) + ":" + film.TMDbID), nil
}

func (registry *memoryRegistry) UpsertBook(_ context.Context, book *catalog.Book) (*catalog.Upserted, error) {
	registry.books = append(registry.books, book)
	return registry.upsert(string(catalog.ItemBook) + ":" + book.OLID), nil
}

func movie(id int64, title string) *tmdb.Movie {
	return &tmdb.Movie{ID: id, Title: title}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(films importer.FilmSource, books importer.BookSource, registry importer.Registry) *importer.Service {
	return importer.NewService(films, books, registry, importer.NewPacer(0), importer.Config{
		MaxAttempts:   3,
		ImageBaseURL:  imageBase,
		CoversBaseURL: coversBase,
	}, discard())
}

func statuses(batch *importer.Batch) []importer.Status {
	out := make([]importer.Status, 0, len(batch.Results))
	for _, result := range batch.Results {
		out = append(out, result.Status)
	}
	return out
}

// # Films

/*
TestImportFilms_MixedBatch reports one result per query in input order,
with an unresolvable title in the middle.
*/
func TestImportFilms_MixedBatch(t *testing.T) {
	films := &fakeTMDb{
		configured: true,
		movies: map[string]*tmdb.Movie{
			"550":   movie(550, "Fight Club"),
			"27205": movie(27205, "Inception"),
		},
	}
	registry := newRegistry()

	batch, err := newService(films, &fakeOpenLibrary{}, registry).
		ImportFilms(context.Background(), []string{"550", "not-a-real-title-xyz123", "27205"})
	require.NoError(t, err)

	assert.Equal(t, []importer.Status{importer.StatusSuccess, importer.StatusNotFound, importer.StatusSuccess}, statuses(batch))
	assert.Equal(t, 2, batch.ImportedCount)
	assert.Equal(t, "Fight Club", batch.Results[0].Title)
	assert.Equal(t, "550", batch.Results[0].ExternalID)
	assert.Equal(t, "not-a-real-title-xyz123", batch.Results[1].Query)
	assert.Equal(t, "27205", batch.Results[2].ExternalID)
}

/*
TestImportFilms_Reimport refreshes an existing film as already_exists.
*/
func TestImportFilms_Reimport(t *testing.T) {
	films := &fakeTMDb{configured: true, movies: map[string]*tmdb.Movie{"550": movie(550, "Fight Club")}}
	service := newService(films, &fakeOpenLibrary{}, newRegistry())

	_, err := service.ImportFilms(context.Background(), []string{"550"})
	require.NoError(t, err)

	batch, err := service.ImportFilms(context.Background(), []string{"550"})
	require.NoError(t, err)
	assert.Equal(t, []importer.Status{importer.StatusAlreadyExists}, statuses(batch))
	assert.Zero(t, batch.ImportedCount)
	assert.False(t, batch.Results[0].Created)
}

/*
TestImportFilms_YearFilter narrows title hits to the requested year and
skips films already registered.
*/
func TestImportFilms_YearFilter(t *testing.T) {
	films := &fakeTMDb{
		configured: true,
		search: map[string][]tmdb.SearchResult{
			"Solaris": {
				{ID: 2749, Title: "Solaris", ReleaseDate: "2002-11-27"},
				{ID: 593, Title: "Solaris", ReleaseDate: "1972-03-20"},
				{ID: 594, Title: "Solaris", ReleaseDate: "1972-01-01"},
			},
		},
		movies: map[string]*tmdb.Movie{
			"593": movie(593, "Solaris"),
			"594": movie(594, "Solaris"),
		},
	}

	registry := newRegistry(string(catalog.ItemFilm) + ":593")
	batch, err := newService(films, &fakeOpenLibrary{}, registry).ImportFilms(context.Background(), []string{"Solaris (1972)"})
	require.NoError(t, err)

	require.Len(t, batch.Results, 1)
	assert.Equal(t, importer.StatusSuccess, batch.Results[0].Status)
	assert.Equal(t, "594", batch.Results[0].ExternalID)
}

/*
TestImportFilms_NumericTitleWithYear searches a numeric title when a year is
given instead of fetching it as a TMDb id.
*/
func TestImportFilms_NumericTitleWithYear(t *testing.T) {
	films := &fakeTMDb{
		configured: true,
		search: map[string][]tmdb.SearchResult{
			"1917": {
				{ID: 49000, Title: "1917", ReleaseDate: "1970-05-01"},
				{ID: 530915, Title: "1917", ReleaseDate: "2019-12-25"},
			},
		},
		movies: map[string]*tmdb.Movie{
			"1917":   movie(1917, "The Wrong Film"),
			"530915": movie(530915, "1917"),
		},
	}

	batch, err := newService(films, &fakeOpenLibrary{}, newRegistry()).ImportFilms(context.Background(), []string{"1917 (2019)", "1917"})
	require.NoError(t, err)

	require.Len(t, batch.Results, 2)
	assert.Equal(t, importer.StatusSuccess, batch.Results[0].Status)
	assert.Equal(t, "530915", batch.Results[0].ExternalID)
	assert.Equal(t, "1917", batch.Results[1].ExternalID)
}

/*
TestResolveFilm_AttemptBound gives up after the configured number of
candidates when every one is already registered.
*/
func TestResolveFilm_AttemptBound(t *testing.T) {
	results := make([]tmdb.SearchResult, 0, 5)
	existing := make([]string, 0, 5)
	for id := int64(1); id <= 5; id++ {
		results = append(results, tmdb.SearchResult{ID: id, Title: "Dune"})
		existing = append(existing, string(catalog.ItemFilm)+":"+strconv.FormatInt(id, 10))
	}
	films := &fakeTMDb{configured: true, search: map[string][]tmdb.SearchResult{"Dune": results}}

	resolution, err := newService(films, &fakeOpenLibrary{}, newRegistry(existing...)).ResolveFilm(context.Background(), "Dune", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrNotFound)
	require.NotNil(t, resolution)
	assert.Equal(t, 3, resolution.Attempts)
	assert.Equal(t, []string{"1", "2", "3"}, resolution.Skipped)
	assert.Nil(t, resolution.Payload)
}

/*
TestImportFilms_NotConfigured fails before any item is attempted.
*/
func TestImportFilms_NotConfigured(t *testing.T) {
	films := &fakeTMDb{}

	batch, err := newService(films, &fakeOpenLibrary{}, newRegistry()).ImportFilms(context.Background(), []string{"550"})
	require.Error(t, err)
	assert.Nil(t, batch)
	assert.True(t, apperr.HasCode(err, "PROVIDER_NOT_CONFIGURED"))
	assert.Zero(t, films.calls)
}

/*
TestImportFilms_Malformed reports a bad payload as a per-item error.
*/
func TestImportFilms_Malformed(t *testing.T) {
	films := &fakeTMDb{configured: true, movies: map[string]*tmdb.Movie{"7": {ID: 7}}}

	batch, err := newService(films, &fakeOpenLibrary{}, newRegistry()).ImportFilms(context.Background(), []string{"7"})
	require.NoError(t, err)
	require.Len(t, batch.Results, 1)
	assert.True(t, strings.HasPrefix(string(batch.Results[0].Status), "error: "))
}

/*
TestImportFilms_Cancelled stops between items and keeps finished results.
*/
func TestImportFilms_Cancelled(t *testing.T) {
	films := &fakeTMDb{
		configured: true,
		movies: map[string]*tmdb.Movie{
			"550":   movie(550, "Fight Club"),
			"27205": movie(27205, "Inception"),
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := newRegistry()
	registry.onUpsert = cancel

	batch, err := newService(films, &fakeOpenLibrary{}, registry).ImportFilms(ctx, []string{"550", "27205"})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, batch)
	assert.Equal(t, []importer.Status{importer.StatusSuccess}, statuses(batch))
	assert.Len(t, registry.films, 1)
}

// # Books

/*
TestImportBooks resolves ids and titles and tolerates a failed author lookup.
*/
func TestImportBooks(t *testing.T) {
	books := &fakeOpenLibrary{
		works: map[string]*openlibrary.Work{
			"OL893415W": {
				Title:   "Dune",
				Authors: []openlibrary.AuthorRole{{Author: openlibrary.Key{Key: "/authors/OL1A"}}},
			},
			"OL102749W": {
				Title:   "Solaris",
				Authors: []openlibrary.AuthorRole{{Author: openlibrary.Key{Key: "/authors/OL9A"}}},
			},
		},
		search: map[string][]openlibrary.WorkSummary{
			"Solaris": {{WorkID: "OL1W", Title: "Solaris"}, {WorkID: "OL102749W", Title: "Solaris"}},
		},
	}
	registry := newRegistry(string(catalog.ItemBook) + ":OL1W")

	batch, err := newService(&fakeTMDb{}, books, registry).ImportBooks(context.Background(), []string{"OL893415W", "Solaris", "OL404W"})
	require.NoError(t, err)

	assert.Equal(t, []importer.Status{importer.StatusSuccess, importer.StatusSuccess, importer.StatusNotFound}, statuses(batch))
	require.Len(t, registry.books, 2)
	assert.Equal(t, "Frank Herbert", registry.books[0].Author)
	assert.Equal(t, "OL102749W", registry.books[1].OLID)
	assert.Empty(t, registry.books[1].Author)
}

// # Proxies

/*
TestFilmImages maps provider failures onto client errors.
*/
func TestFilmImages(t *testing.T) {
	films := &fakeTMDb{configured: true, movies: map[string]*tmdb.Movie{"550": movie(550, "Fight Club")}}
	service := newService(films, &fakeOpenLibrary{}, newRegistry())

	images, err := service.FilmImages(context.Background(), "550")
	require.NoError(t, err)
	assert.Len(t, images.Posters, 1)

	_, err = service.FilmImages(context.Background(), "404")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.FilmImages(context.Background(), "not-an-id")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.FilmImages(context.Background(), "502")
	assert.True(t, apperr.HasCode(err, "UPSTREAM_ERROR"))
}

/*
TestSearchBooks requires a title.
*/
func TestSearchBooks(t *testing.T) {
	books := &fakeOpenLibrary{search: map[string][]openlibrary.WorkSummary{"Dune": {{WorkID: "OL893415W", Title: "Dune"}}}}
	service := newService(&fakeTMDb{}, books, newRegistry())

	works, err := service.SearchBooks(context.Background(), " Dune ")
	require.NoError(t, err)
	assert.Len(t, works, 1)

	_, err = service.SearchBooks(context.Background(), " ")
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

// # Pacer

/*
TestPacer spaces calls and honours cancellation.
*/
func TestPacer(t *testing.T) {
	pacer := importer.NewPacer(20 * time.Millisecond)

	start := time.Now()
	for range 3 {
		require.NoError(t, pacer.Wait(context.Background()))
	}
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pacer.Wait(ctx), context.Canceled)
}
