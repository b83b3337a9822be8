// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
)

// # Test Doubles

type registryKey struct {
	externalID string
	itemType   catalog.ItemType
}

// memoryRegistry mimics the unique (external_id, type) constraint.
type memoryRegistry struct {
	mu       sync.Mutex
	items    map[registryKey]*catalog.UniversalItem
	films    map[string]*catalog.Film
	books    map[string]*catalog.Book
	works    map[string]catalog.Work
	failFilm error
}

func newMemoryRegistry() *memoryRegistry {
	return &memoryRegistry{
		items: map[registryKey]*catalog.UniversalItem{},
		films: map[string]*catalog.Film{},
		books: map[string]*catalog.Book{},
		works: map[string]catalog.Work{},
	}
}

func (repo *memoryRegistry) GetOrCreateItem(_ context.Context, id, externalID string, itemType catalog.ItemType, defaults catalog.ItemDefaults) (*catalog.UniversalItem, bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	key := registryKey{externalID, itemType}
	if item, ok := repo.items[key]; ok {
		return item, false, nil
	}
	item := &catalog.UniversalItem{ID: id, ExternalID: externalID, Type: itemType, Title: defaults.Title, CreatorString: defaults.CreatorString}
	repo.items[key] = item
	return item, true, nil
}

func (repo *memoryRegistry) Exists(_ context.Context, externalID string, itemType catalog.ItemType) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	_, ok := repo.items[registryKey{externalID, itemType}]
	return ok, nil
}

func (repo *memoryRegistry) ExistingKeys(ctx context.Context, externalIDs []string, itemType catalog.ItemType) ([]string, error) {
	out := []string{}
	for _, id := range externalIDs {
		if ok, _ := repo.Exists(ctx, id, itemType); ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (repo *memoryRegistry) FindItem(_ context.Context, id string) (*catalog.UniversalItem, error) {
	for _, item := range repo.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Universal item")
}

func (repo *memoryRegistry) ListItems(_ context.Context, filter catalog.Filter, _, _ int) ([]*catalog.UniversalItem, int, error) {
	out := []*catalog.UniversalItem{}
	for _, item := range repo.items {
		if filter.Type == "" || item.Type == filter.Type {
			out = append(out, item)
		}
	}
	return out, len(out), nil
}

func (repo *memoryRegistry) UpsertFilm(_ context.Context, film *catalog.Film) error {
	if repo.failFilm != nil {
		return repo.failFilm
	}
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if existing, ok := repo.films[film.TMDbID]; ok {
		film.ID = existing.ID
		film.UniversalItemID = existing.UniversalItemID
	}
	copied := *film
	repo.films[film.TMDbID] = &copied
	return nil
}

func (repo *memoryRegistry) UpsertBook(_ context.Context, book *catalog.Book) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if existing, ok := repo.books[book.OLID]; ok {
		book.ID = existing.ID
	}
	copied := *book
	repo.books[book.OLID] = &copied
	return nil
}

func (repo *memoryRegistry) CreateMusicPiece(_ context.Context, piece *catalog.MusicPiece) error {
	repo.works[piece.UniversalItemID] = piece
	return nil
}

func (repo *memoryRegistry) CreateArtwork(_ context.Context, art *catalog.Artwork) error {
	repo.works[art.UniversalItemID] = art
	return nil
}

func (repo *memoryRegistry) CreateHistoryEvent(_ context.Context, event *catalog.HistoryEvent) error {
	repo.works[event.UniversalItemID] = event
	return nil
}

func (repo *memoryRegistry) FindWork(_ context.Context, item *catalog.UniversalItem) (catalog.Work, error) {
	if work, ok := repo.works[item.ID]; ok {
		return work, nil
	}
	for _, film := range repo.films {
		if film.UniversalItemID == item.ID {
			return film, nil
		}
	}
	return nil, apperr.NotFound("Work")
}

func (repo *memoryRegistry) FindFilmByTMDbID(_ context.Context, tmdbID string) (*catalog.Film, error) {
	if film, ok := repo.films[tmdbID]; ok {
		return film, nil
	}
	return nil, apperr.NotFound("Film")
}

func (repo *memoryRegistry) FindBookByOLID(_ context.Context, olid string) (*catalog.Book, error) {
	if book, ok := repo.books[olid]; ok {
		return book, nil
	}
	return nil, apperr.NotFound("Book")
}

func (repo *memoryRegistry) ListFilms(context.Context, string, int, int) ([]*catalog.Film, int, error) {
	return nil, 0, nil
}

func (repo *memoryRegistry) ListBooks(context.Context, string, int, int) ([]*catalog.Book, int, error) {
	return nil, 0, nil
}

// rollbackTx discards the registry state written by a failed callback.
type rollbackTx struct {
	repo *memoryRegistry
}

func (tx rollbackTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.repo.mu.Lock()
	snapshot := make(map[registryKey]*catalog.UniversalItem, len(tx.repo.items))
	for key, item := range tx.repo.items {
		snapshot[key] = item
	}
	tx.repo.mu.Unlock()

	if err := fn(ctx); err != nil {
		tx.repo.mu.Lock()
		tx.repo.items = snapshot
		tx.repo.mu.Unlock()
		return err
	}
	return nil
}

func newRegistry() (*catalog.Service, *memoryRegistry) {
	repo := newMemoryRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(repo, rollbackTx{repo: repo}, logger), repo
}

// # Registry Tests

/*
TestUpsertFilm_Idempotent verifies that the same TMDb id yields one item and
one film, with only the first call reporting creation.
*/
func TestUpsertFilm_Idempotent(t *testing.T) {
	service, repo := newRegistry()
	ctx := context.Background()

	first, err := service.UpsertFilm(ctx, &catalog.Film{TMDbID: "550", Title: "Fight Club", Director: "David Fincher"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := service.UpsertFilm(ctx, &catalog.Film{TMDbID: "550", Title: "Fight Club", Director: "David Fincher", Synopsis: "refreshed"})
	require.NoError(t, err)
	assert.False(t, second.Created)

	assert.Equal(t, first.Item.ID, second.Item.ID)
	assert.Len(t, repo.items, 1)
	require.Len(t, repo.films, 1)
	assert.Equal(t, "refreshed", repo.films["550"].Synopsis)
	assert.Equal(t, first.Item.ID, repo.films["550"].UniversalItemID)
}

/*
TestUpsertFilm_Concurrent verifies that parallel imports of one id never
produce two items.
*/
func TestUpsertFilm_Concurrent(t *testing.T) {
	service, repo := newRegistry()

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.UpsertFilm(context.Background(), &catalog.Film{TMDbID: "27205", Title: "Inception"})
			if assert.NoError(t, err) && result.Created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	assert.Len(t, repo.items, 1)
	assert.Len(t, repo.films, 1)
}

/*
TestUpsertFilm_RollsBackItem verifies that a failed typed write leaves no
orphan universal item behind.
*/
func TestUpsertFilm_RollsBackItem(t *testing.T) {
	service, repo := newRegistry()
	repo.failFilm = errors.New("disk full")

	_, err := service.UpsertFilm(context.Background(), &catalog.Film{TMDbID: "13", Title: "Forrest Gump"})

	require.Error(t, err)
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.films)
}

/*
TestUpsertBook_UsesOpenLibraryKey verifies the book registry key.
*/
func TestUpsertBook_UsesOpenLibraryKey(t *testing.T) {
	service, repo := newRegistry()

	result, err := service.UpsertBook(context.Background(), &catalog.Book{OLID: "OL45804W", Title: "Fantastic Mr Fox", Author: "Roald Dahl"})

	require.NoError(t, err)
	assert.Equal(t, "OL45804W", result.Item.ExternalID)
	assert.Equal(t, catalog.ItemBook, result.Item.Type)
	assert.Equal(t, "Roald Dahl", result.Item.CreatorString)
	assert.Contains(t, repo.books, "OL45804W")
}

/*
TestGetOrCreateItem_Validation verifies rejected keys and types.
*/
func TestGetOrCreateItem_Validation(t *testing.T) {
	tests := []struct {
		name       string
		externalID string
		itemType   catalog.ItemType
	}{
		{"blank id", "  ", catalog.ItemFilm},
		{"unknown type", "550", catalog.ItemType("podcast")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newRegistry()

			_, _, err := service.GetOrCreateItem(context.Background(), tt.externalID, tt.itemType, catalog.ItemDefaults{Title: "x"})

			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Empty(t, repo.items)
		})
	}
}

// # Manual Works

/*
TestCreateWork_LocalKeys verifies that every manual entry is its own work.
*/
func TestCreateWork_LocalKeys(t *testing.T) {
	service, repo := newRegistry()
	ctx := context.Background()
	input := catalog.WorkInput{Type: catalog.ItemMusic, Title: "Clair de Lune", Creator: "Claude Debussy", Instrument: "Piano"}

	first, err := service.CreateWork(ctx, input)
	require.NoError(t, err)
	second, err := service.CreateWork(ctx, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, strings.HasPrefix(first.ExternalID, catalog.LocalKeyPrefix))
	assert.Equal(t, catalog.ItemMusic, first.Type)
	assert.Len(t, repo.works, 2)
	assert.Equal(t, []string{"Piano"}, first.Record.Tags())
}

/*
TestCreateWork_Validation verifies that imported types cannot be entered by hand.
*/
func TestCreateWork_Validation(t *testing.T) {
	service, _ := newRegistry()

	_, err := service.CreateWork(context.Background(), catalog.WorkInput{Type: catalog.ItemFilm, Title: "Alien"})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.CreateWork(context.Background(), catalog.WorkInput{Type: catalog.ItemArtwork})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

/*
TestWork_Interface verifies the shared accessors of typed records.
*/
func TestWork_Interface(t *testing.T) {
	homepage := "https://www.foxmovies.com/movies/fight-club"

	tests := []struct {
		name    string
		work    catalog.Work
		title   string
		creator string
		kind    catalog.ItemType
		links   int
	}{
		{"film", &catalog.Film{TMDbID: "550", Title: "Fight Club", Director: "David Fincher", Homepage: &homepage}, "Fight Club", "David Fincher", catalog.ItemFilm, 2},
		{"book", &catalog.Book{OLID: "OL1W", Title: "Dune", Author: "Frank Herbert"}, "Dune", "Frank Herbert", catalog.ItemBook, 1},
		{"artwork", &catalog.Artwork{Title: "The Great Wave", Artist: "Hokusai", Themes: "sea, Fuji", Links: "https://a.example\nhttps://b.example"}, "The Great Wave", "Hokusai", catalog.ItemArtwork, 2},
		{"event", &catalog.HistoryEvent{Title: "Meiji Restoration", EventType: "political"}, "Meiji Restoration", "", catalog.ItemEvent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, tt.work.WorkTitle())
			assert.Equal(t, tt.creator, tt.work.Creator())
			assert.Equal(t, tt.kind, tt.work.ItemType())
			assert.Len(t, tt.work.ExternalLinks(), tt.links)
		})
	}

	art := &catalog.Artwork{Themes: "sea, Fuji"}
	assert.Equal(t, []string{"sea", "Fuji"}, art.Tags())
}
