// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
)

// # Test Doubles

const (
	duneItem   = "0190b6e4-8d1a-7c3e-9f00-00000000d0e1"
	ranItem    = "0190b6e4-8d1a-7c3e-9f00-00000000f11a"
	imageBase  = "https://image.tmdb.org/t/p/original"
	recipeKind = record.KindRecipe
)

type memoryRecords struct {
	records   map[string]*record.Record
	links     map[string][]string
	listCalls int
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{records: map[string]*record.Record{}, links: map[string][]string{}}
}

func (repo *memoryRecords) Create(_ context.Context, item *record.Record) error {
	copied := *item
	repo.records[item.ID] = &copied
	return nil
}

func (repo *memoryRecords) Update(_ context.Context, item *record.Record) error {
	copied := *item
	repo.records[item.ID] = &copied
	return nil
}

func (repo *memoryRecords) Delete(_ context.Context, id string) error {
	if _, ok := repo.records[id]; !ok {
		return apperr.NotFound("Record")
	}
	delete(repo.records, id)
	return nil
}

func (repo *memoryRecords) FindByID(_ context.Context, id string) (*record.Record, error) {
	item, ok := repo.records[id]
	if !ok {
		return nil, apperr.NotFound("Record")
	}
	copied := *item
	copied.CultureIDs = repo.links[id]
	return &copied, nil
}

func (repo *memoryRecords) ReplaceCultures(_ context.Context, recordID string, cultureIDs []string) error {
	repo.links[recordID] = cultureIDs
	return nil
}

func (repo *memoryRecords) UpdateDetails(_ context.Context, id string, details json.RawMessage) error {
	item, ok := repo.records[id]
	if !ok {
		return apperr.NotFound("Record")
	}
	item.Details = details
	return nil
}

func (repo *memoryRecords) List(_ context.Context, _ sq.Sqlizer, _ record.Scope, _, _ int) ([]*record.Record, int, error) {
	repo.listCalls++
	out := make([]*record.Record, 0, len(repo.records))
	for _, item := range repo.records {
		out = append(out, item)
	}
	return out, len(out), nil
}

// items is an in-memory ItemLookup.
type items map[string]*catalog.UniversalItem

func (lookup items) FindItem(_ context.Context, id string) (*catalog.UniversalItem, error) {
	if item, ok := lookup[id]; ok {
		return item, nil
	}
	return nil, apperr.NotFound("UniversalItem")
}

func newItems() items {
	return items{
		duneItem: {ID: duneItem, ExternalID: "OL893415W", Type: catalog.ItemBook, Title: "Dune"},
		ranItem:  {ID: ranItem, ExternalID: "11645", Type: catalog.ItemFilm, Title: "Ran"},
	}
}

type directTx struct{ calls int }

func (tx *directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRecordService(repo *memoryRecords) *record.Service {
	return record.NewService(repo, record.NewResolver(newDirectory()), newItems(), &directTx{}, imageBase+"/", discard())
}

func fieldsOf(err error) []string {
	appErr := apperr.As(err)
	if appErr == nil {
		return nil
	}
	fields := make([]string, 0, len(appErr.Details))
	for _, detail := range appErr.Details {
		fields = append(fields, detail.Field)
	}
	sort.Strings(fields)
	return fields
}

func ptr[T any](value T) *T { return &value }

// # Create

/*
TestCreate_ForeignCultureRejected verifies that a record tagged with a
culture the author does not own is rejected and nothing is stored.
*/
func TestCreate_ForeignCultureRejected(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)

	_, err := service.Create(context.Background(), alice, record.Input{
		Kind:       recipeKind,
		Title:      "Oyakodon",
		CultureIDs: []string{aliceJapan, bobNihon},
	})

	require.Error(t, err)
	assert.Equal(t, []string{record.FieldCultures}, fieldsOf(err))
	assert.Empty(t, repo.records)
	assert.Empty(t, repo.links)
}

/*
TestCreate_MediaRecord verifies media kinds take their title from the
referenced item and store culture links.
*/
func TestCreate_MediaRecord(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)

	created, err := service.Create(context.Background(), alice, record.Input{
		Kind:            record.KindBook,
		UniversalItemID: ptr(duneItem),
		Title:           "ignored",
		CultureIDs:      []string{aliceJapan},
		Rating:          ptr(9),
	})

	require.NoError(t, err)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, culture.VisibilityPrivate, created.Visibility)
	assert.Equal(t, []string{aliceJapan}, repo.links[created.ID])
	assert.JSONEq(t, string(created.Details), string(repo.records[created.ID].Details))
}

/*
TestCreate_Validation covers kind, target and tracking rules.
*/
func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input record.Input
		want  []string
	}{
		{
			name:  "unknown kind",
			input: record.Input{Kind: "podcast", Title: "x"},
			want:  []string{record.FieldKind},
		},
		{
			name:  "media without item",
			input: record.Input{Kind: record.KindFilm},
			want:  []string{record.FieldUniversalItemID},
		},
		{
			name:  "item type does not match kind",
			input: record.Input{Kind: record.KindFilm, UniversalItemID: ptr(duneItem)},
			want:  []string{record.FieldUniversalItemID},
		},
		{
			name:  "unknown item",
			input: record.Input{Kind: record.KindBook, UniversalItemID: ptr("0190b6e4-8d1a-7c3e-9f00-0000000000ff")},
			want:  []string{record.FieldUniversalItemID},
		},
		{
			name:  "authored without title",
			input: record.Input{Kind: record.KindLesson},
			want:  []string{record.FieldTitle},
		},
		{
			name:  "rating out of range",
			input: record.Input{Kind: recipeKind, Title: "Ramen", Rating: ptr(11)},
			want:  []string{record.FieldRating},
		},
		{
			name:  "unknown visibility",
			input: record.Input{Kind: recipeKind, Title: "Ramen", Visibility: "friends"},
			want:  []string{record.FieldVisibility},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newRecordService(newMemoryRecords())

			_, err := service.Create(context.Background(), alice, tt.input)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
			assert.Equal(t, tt.want, fieldsOf(err))
		})
	}
}

/*
TestCreate_MapPinPeriod verifies a map pin must reference one of the
caller's own periods.
*/
func TestCreate_MapPinPeriod(t *testing.T) {
	pin := func(periodID string) json.RawMessage {
		return json.RawMessage(`{"period_id":"` + periodID + `","type":"temple","loc":[35.01,135.76]}`)
	}

	tests := []struct {
		name     string
		periodID string
		wantErr  bool
	}{
		{"own period", aliceEdo, false},
		{"foreign period", bobRegency, true},
		{"unknown period", "0190b6e4-8d1a-7c3e-9f00-0000deadbeef", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRecords()
			service := newRecordService(repo)

			created, err := service.Create(context.Background(), alice, record.Input{
				Kind:    record.KindMapPin,
				Title:   "Kiyomizu-dera",
				Details: pin(tt.periodID),
			})

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Contains(t, repo.records, created.ID)
				return
			}
			require.Error(t, err)
			assert.Equal(t, []string{"details.period_id"}, fieldsOf(err))
			assert.Empty(t, repo.records)
		})
	}
}

/*
TestUpdate_MapPinPeriod verifies re-pointing a pin at a foreign period is rejected.
*/
func TestUpdate_MapPinPeriod(t *testing.T) {
	service := newRecordService(newMemoryRecords())
	ctx := context.Background()

	created, err := service.Create(ctx, alice, record.Input{
		Kind:    record.KindMapPin,
		Title:   "Nijo Castle",
		Details: json.RawMessage(`{"period_id":"` + aliceEdo + `","type":"castle","loc":[35.01,135.74]}`),
	})
	require.NoError(t, err)

	_, err = service.Update(ctx, alice, created.ID, record.UpdateInput{
		Details: json.RawMessage(`{"period_id":"` + bobRegency + `","type":"castle","loc":[35.01,135.74]}`),
	})
	require.Error(t, err)
	assert.Equal(t, []string{"details.period_id"}, fieldsOf(err))
}

/*
TestUpdate_KeepsAbsentFields verifies a partial update touches only the
fields it carries.
*/
func TestUpdate_KeepsAbsentFields(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, record.Input{
		Kind:       recipeKind,
		Title:      "Okonomiyaki",
		CultureIDs: []string{aliceJapan},
		Rating:     ptr(8),
		Visibility: culture.VisibilityPublic,
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, alice, created.ID, record.UpdateInput{Notes: ptr("Hiroshima style, with noodles")})
	require.NoError(t, err)

	assert.Equal(t, "Hiroshima style, with noodles", updated.Notes)
	assert.Equal(t, "Okonomiyaki", updated.Title)
	assert.Equal(t, culture.VisibilityPublic, repo.records[created.ID].Visibility)
	require.NotNil(t, repo.records[created.ID].Rating)
	assert.Equal(t, 8, *repo.records[created.ID].Rating)
	assert.Equal(t, []string{aliceJapan}, repo.links[created.ID])

	t.Run("explicit_clears", func(t *testing.T) {
		updated, err := service.Update(ctx, alice, created.ID, record.UpdateInput{
			CultureIDs: &[]string{},
			Rating:     ptr(0),
			Visibility: ptr(culture.VisibilityPrivate),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Rating)
		assert.Equal(t, culture.VisibilityPrivate, updated.Visibility)
		assert.Empty(t, repo.links[created.ID])
		assert.Equal(t, "Hiroshima style, with noodles", updated.Notes)
	})

	t.Run("blank_title_rejected", func(t *testing.T) {
		_, err := service.Update(ctx, alice, created.ID, record.UpdateInput{Title: ptr("  ")})
		assert.Equal(t, []string{record.FieldTitle}, fieldsOf(err))
	})
}

// # Ownership

/*
TestUpdateDelete_ForeignRecord verifies writes on another user's record are forbidden.
*/
func TestUpdateDelete_ForeignRecord(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, record.Input{Kind: recipeKind, Title: "Miso soup"})
	require.NoError(t, err)

	_, err = service.Update(ctx, bob, created.ID, record.UpdateInput{Title: ptr("Stolen")})
	assert.True(t, apperr.HasCode(err, "FORBIDDEN"))

	err = service.Delete(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, "FORBIDDEN"))

	err = service.Delete(ctx, alice, "0190b6e4-8d1a-7c3e-9f00-0000000000ee")
	assert.True(t, apperr.IsNotFound(err))

	require.NoError(t, service.Delete(ctx, alice, created.ID))
	assert.Empty(t, repo.records)
}

/*
TestGet_Visibility verifies private records of other users look missing.
*/
func TestGet_Visibility(t *testing.T) {
	service := newRecordService(newMemoryRecords())
	ctx := context.Background()

	private, err := service.Create(ctx, alice, record.Input{Kind: recipeKind, Title: "Secret"})
	require.NoError(t, err)
	public, err := service.Create(ctx, alice, record.Input{Kind: recipeKind, Title: "Shared", Visibility: culture.VisibilityPublic})
	require.NoError(t, err)

	_, err = service.Get(ctx, alice, private.ID)
	assert.NoError(t, err)

	_, err = service.Get(ctx, bob, private.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Get(ctx, "", public.ID)
	assert.NoError(t, err)
}

// # List

/*
TestList_UnknownSharedCodeSkipsQuery verifies an unknown code returns an
empty page without touching the store.
*/
func TestList_UnknownSharedCodeSkipsQuery(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)

	records, total, err := service.List(context.Background(), alice, record.Scope{Code: "zz", Shared: true}, 20, 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, total)
	assert.Zero(t, repo.listCalls)
}

func TestList_InvalidKind(t *testing.T) {
	service := newRecordService(newMemoryRecords())

	_, _, err := service.List(context.Background(), alice, record.Scope{Kind: "podcast"}, 20, 0)
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

// # Film Images

/*
TestUpdateFilmImage joins path fragments with the image base and leaves
omitted fragments untouched.
*/
func TestUpdateFilmImage(t *testing.T) {
	repo := newMemoryRecords()
	service := newRecordService(repo)
	ctx := context.Background()

	film, err := service.Create(ctx, alice, record.Input{Kind: record.KindFilm, UniversalItemID: ptr(ranItem)})
	require.NoError(t, err)

	_, err = service.UpdateFilmImage(ctx, alice, film.ID, record.ImageInput{PosterPath: "abc.jpg"})
	require.NoError(t, err)

	updated, err := service.UpdateFilmImage(ctx, alice, film.ID, record.ImageInput{BackdropPath: "/def.jpg"})
	require.NoError(t, err)

	var details record.FilmDetails
	require.NoError(t, json.Unmarshal(updated.Details, &details))
	require.NotNil(t, details.Poster)
	require.NotNil(t, details.Background)
	assert.Equal(t, imageBase+"/abc.jpg", *details.Poster)
	assert.Equal(t, imageBase+"/def.jpg", *details.Background)
	assert.True(t, details.Sound)

	stored, err := repo.FindByID(ctx, film.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(updated.Details), string(stored.Details))
}

func TestUpdateFilmImage_Rejections(t *testing.T) {
	service := newRecordService(newMemoryRecords())
	ctx := context.Background()

	book, err := service.Create(ctx, alice, record.Input{Kind: record.KindBook, UniversalItemID: ptr(duneItem)})
	require.NoError(t, err)
	film, err := service.Create(ctx, alice, record.Input{Kind: record.KindFilm, UniversalItemID: ptr(ranItem)})
	require.NoError(t, err)

	_, err = service.UpdateFilmImage(ctx, alice, book.ID, record.ImageInput{PosterPath: "/a.jpg"})
	assert.True(t, apperr.HasCode(err, "UNPROCESSABLE"))

	_, err = service.UpdateFilmImage(ctx, alice, film.ID, record.ImageInput{})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.UpdateFilmImage(ctx, bob, film.ID, record.ImageInput{PosterPath: "/a.jpg"})
	assert.True(t, apperr.HasCode(err, "FORBIDDEN"))
}
