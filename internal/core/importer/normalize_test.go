// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/importer"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
)

const (
	imageBase  = "https://image.tmdb.org/t/p/original"
	coversBase = "https://covers.openlibrary.org"
)

const fightClub = `{
	"id": 550,
	"title": "Fight Club",
	"original_title": "Fight Club",
	"tagline": "Mischief. Mayhem. Soap.",
	"overview": "A ticking-time-bomb insomniac...",
	"runtime": 139,
	"genres": [{"name": "Drama"}, {"name": " "}],
	"spoken_languages": [{"iso_639_1": "en", "english_name": "English"}],
	"production_countries": [{"iso_3166_1": "US", "name": "United States of America"}],
	"poster_path": "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
	"backdrop_path": null,
	"budget": 63000000,
	"revenue": 100853753,
	"release_date": "1999-10-15",
	"homepage": "",
	"credits": {
		"cast": [{"name": "Edward Norton", "character": "Narrator"}],
		"crew": [
			{"name": "Jim Uhls", "job": "Screenplay"},
			{"name": "David Fincher", "job": "Director"}
		]
	}
}`

func decodeMovie(t *testing.T, raw string) *tmdb.Movie {
	t.Helper()
	var movie tmdb.Movie
	require.NoError(t, json.Unmarshal([]byte(raw), &movie))
	return &movie
}

/*
TestNormalizeFilm maps a complete TMDb payload onto a film record.
*/
func TestNormalizeFilm(t *testing.T) {
	film, err := importer.NormalizeFilm(decodeMovie(t, fightClub), imageBase+"/")
	require.NoError(t, err)

	assert.Equal(t, "550", film.TMDbID)
	assert.Equal(t, "Fight Club", film.Title)
	assert.Empty(t, film.AltTitle)
	assert.Equal(t, "David Fincher", film.Director)
	require.NotNil(t, film.Runtime)
	assert.Equal(t, 139, *film.Runtime)
	assert.Equal(t, []string{"Drama"}, film.Genres)
	assert.Equal(t, []string{"en"}, film.Languages)
	assert.Equal(t, []string{"United States of America"}, film.Countries)
	assert.Equal(t, int64(63000000), film.Budget)
	assert.Equal(t, int64(100853753), film.BoxOffice)
	assert.Nil(t, film.Homepage)
	assert.Nil(t, film.Background)
	require.NotNil(t, film.Poster)
	assert.Equal(t, imageBase+"/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", *film.Poster)
	assert.Len(t, film.Crew, 2)
}

/*
TestNormalizeFilm_Runtime tolerates missing and odd runtimes.
*/
func TestNormalizeFilm_Runtime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "null", raw: `null`},
		{name: "zero", raw: `0`},
		{name: "string", raw: `"95"`, want: intPtr(95)},
		{name: "fraction", raw: `94.6`, want: intPtr(95)},
		{name: "garbage", raw: `"long"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movie := &tmdb.Movie{ID: 1, Title: "Stalker", Runtime: json.RawMessage(tt.raw)}
			film, err := importer.NormalizeFilm(movie, imageBase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, film.Runtime)
		})
	}
}

/*
TestNormalizeFilm_Malformed rejects payloads that cannot become a film.
*/
func TestNormalizeFilm_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing id", raw: `{"title": "Ran"}`},
		{name: "blank title", raw: `{"id": 11645, "title": "  "}`},
		{name: "cast without name", raw: `{"id": 11645, "title": "Ran", "credits": {"cast": [{"character": "Hidetora"}]}}`},
		{name: "crew without job", raw: `{"id": 11645, "title": "Ran", "credits": {"crew": [{"name": "Akira Kurosawa"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NormalizeFilm(decodeMovie(t, tt.raw), imageBase)
			require.Error(t, err)
			assert.ErrorIs(t, err, provider.ErrMalformedPayload)
		})
	}
}

/*
TestNormalizeFilm_AltTitle keeps the original title only when it differs.
*/
func TestNormalizeFilm_AltTitle(t *testing.T) {
	film, err := importer.NormalizeFilm(decodeMovie(t, `{"id": 11645, "title": "Ran", "original_title": "乱"}`), imageBase)
	require.NoError(t, err)
	assert.Equal(t, "乱", film.AltTitle)
}

/*
TestNormalizeBook covers both description shapes and the fallbacks.
*/
func TestNormalizeBook(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSynopsis string
		wantDate     string
	}{
		{
			name:         "plain description",
			raw:          `{"title": "Dune", "description": "Spice.", "first_publish_date": "1965"}`,
			wantSynopsis: "Spice.",
			wantDate:     "1965",
		},
		{
			name:         "typed description falls back to created",
			raw:          `{"title": "Dune", "description": {"type": "/type/text", "value": "Spice."}, "created": {"value": "2009-10-15T11:34:21"}}`,
			wantSynopsis: "Spice.",
			wantDate:     "2009-10-15T11:34:21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var work openlibrary.Work
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &work))

			book, err := importer.NormalizeBook(&work, nil, "OL893415W", coversBase)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSynopsis, book.Synopsis)
			assert.Equal(t, tt.wantDate, book.PublishDate)
			assert.Empty(t, book.Author)
			assert.Nil(t, book.Cover)
		})
	}
}

/*
TestNormalizeBook_AuthorAndCover joins the author and builds the cover URL.
*/
func TestNormalizeBook_AuthorAndCover(t *testing.T) {
	work := &openlibrary.Work{
		Title:     "Dune",
		Covers:    []int64{-1, 11481354},
		Languages: []openlibrary.Key{{Key: "/languages/eng"}, {Key: "/languages/eng"}},
	}
	author := &openlibrary.Author{Name: "Frank Herbert", PersonalNames: []string{"Franklin Patrick Herbert"}}

	book, err := importer.NormalizeBook(work, author, "OL893415W", coversBase+"/")
	require.NoError(t, err)

	assert.Equal(t, "Frank Herbert", book.Author)
	assert.Equal(t, "Franklin Patrick Herbert", book.AltCreatorName)
	assert.Equal(t, []string{"eng"}, book.Languages)
	require.NotNil(t, book.Cover)
	assert.Equal(t, coversBase+"/b/id/11481354-L.jpg", *book.Cover)
}

/*
TestFilterSubjects keeps short string subjects without "book".
*/
func TestFilterSubjects(t *testing.T) {
	subjects := []any{
		"Science fiction",
		"science fiction",
		"Fiction, general",
		map[string]any{"name": "Arrakis"},
		"Book clubs",
		"",
		"A subject name that runs well past forty characters",
		"Ecology",
		42.0,
	}

	assert.Equal(t, []string{"Science fiction", "Fiction, general", "Ecology"}, importer.FilterSubjects(subjects))
}

/*
TestParseFilmQuery splits an optional year suffix.
*/
func TestParseFilmQuery(t *testing.T) {
	tests := []struct {
		raw       string
		wantQuery string
		wantYear  int
	}{
		{raw: "Solaris (1972)", wantQuery: "Solaris", wantYear: 1972},
		{raw: "  Solaris(2002) ", wantQuery: "Solaris", wantYear: 2002},
		{raw: "Blade Runner 2049", wantQuery: "Blade Runner 2049"},
		{raw: "(1972)", wantQuery: "(1972)"},
		{raw: "550", wantQuery: "550"},
		{raw: "1917 (2019)", wantQuery: "1917", wantYear: 2019},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			query, year := importer.ParseFilmQuery(tt.raw)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantYear, year)
		})
	}
}

func intPtr(value int) *int { return &value }
