// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package importer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/provider"
	"github.com/taibuivan/voxmundi/internal/provider/openlibrary"
	"github.com/taibuivan/voxmundi/internal/provider/tmdb"
)

const (
	maxSubjectLen = 40
	directorJob   = "Director"
)

// # Films

/*
NormalizeFilm maps a TMDb movie onto the catalog film record.

Description: The alternate title is kept only when it differs from the
title. The director is the first crew member whose job is "Director".
Runtime falls back to unset when missing or malformed. Image URLs are
built from imageBase and are unset when TMDb has no path.

Returns:
  - *catalog.Film
  - error: ErrMalformedPayload for a missing id or title, or a cast/crew
    entry without a name or role
*/
func NormalizeFilm(movie *tmdb.Movie, imageBase string) (*catalog.Film, error) {
	if movie == nil || movie.ID <= 0 || strings.TrimSpace(movie.Title) == "" {
		return nil, fmt.Errorf("%w: movie without id or title", provider.ErrMalformedPayload)
	}

	film := &catalog.Film{
		TMDbID:      strconv.FormatInt(movie.ID, 10),
		Title:       strings.TrimSpace(movie.Title),
		Runtime:     runtimeMinutes(movie.Runtime),
		Genres:      []string{},
		Cast:        make([]catalog.Credit, 0, len(movie.Credits.Cast)),
		Crew:        make([]catalog.Credit, 0, len(movie.Credits.Crew)),
		Blurb:       movie.Tagline,
		Synopsis:    movie.Overview,
		Languages:   []string{},
		Countries:   []string{},
		Poster:      imageURL(imageBase, movie.PosterPath),
		Background:  imageURL(imageBase, movie.BackdropPath),
		ReleaseDate: movie.ReleaseDate,
	}

	if original := strings.TrimSpace(movie.OriginalTitle); original != film.Title {
		film.AltTitle = original
	}
	if movie.Budget != nil {
		film.Budget = *movie.Budget
	}
	if movie.Revenue != nil {
		film.BoxOffice = *movie.Revenue
	}
	if homepage := strings.TrimSpace(movie.Homepage); homepage != "" {
		film.Homepage = &homepage
	}

	for index, member := range movie.Credits.Cast {
		credit, err := credit(member.Name, member.Character)
		if err != nil {
			return nil, fmt.Errorf("%w: cast[%d]: %v", provider.ErrMalformedPayload, index, err)
		}
		film.Cast = append(film.Cast, credit)
	}

	for index, member := range movie.Credits.Crew {
		credit, err := credit(member.Name, member.Job)
		if err != nil {
			return nil, fmt.Errorf("%w: crew[%d]: %v", provider.ErrMalformedPayload, index, err)
		}
		if film.Director == "" && credit.Role == directorJob {
			film.Director = credit.Name
		}
		film.Crew = append(film.Crew, credit)
	}

	for _, genre := range movie.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			film.Genres = append(film.Genres, name)
		}
	}
	for _, language := range movie.SpokenLanguages {
		if language.Code != "" {
			film.Languages = append(film.Languages, language.Code)
		}
	}
	for _, country := range movie.ProductionCountries {
		if country.Name != "" {
			film.Countries = append(film.Countries, country.Name)
		}
	}

	return film, nil
}

func credit(name, role *string) (catalog.Credit, error) {
	if name == nil || strings.TrimSpace(*name) == "" {
		return catalog.Credit{}, fmt.Errorf("missing name")
	}
	if role == nil {
		return catalog.Credit{}, fmt.Errorf("missing role for %q", *name)
	}
	return catalog.Credit{Name: strings.TrimSpace(*name), Role: strings.TrimSpace(*role)}, nil
}

// runtimeMinutes reads a positive whole number of minutes, tolerating
// null, strings and fractions.
func runtimeMinutes(raw json.RawMessage) *int {
	raw = bytes.Trim(bytes.TrimSpace(raw), `"`)
	if len(raw) == 0 {
		return nil
	}
	minutes, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || minutes <= 0 {
		return nil
	}
	rounded := int(minutes + 0.5)
	return &rounded
}

// imageURL joins a TMDb path fragment onto the image base.
func imageURL(base string, path *string) *string {
	if path == nil || strings.TrimSpace(*path) == "" {
		return nil
	}
	fragment := strings.TrimSpace(*path)
	if !strings.HasPrefix(fragment, "/") {
		fragment = "/" + fragment
	}
	url := strings.TrimRight(base, "/") + fragment
	return &url
}

// # Books

/*
NormalizeBook maps an OpenLibrary work and its first author onto the
catalog book record. author may be nil.

Description: Subjects are kept when their trimmed length is between 1 and
40 and they do not mention "book" in any case. Duplicates are dropped.
Languages are the codes at the end of the language keys. The cover URL is
built from the first numeric cover id.

Returns:
  - *catalog.Book
  - error: ErrMalformedPayload when the work has no title
*/
func NormalizeBook(work *openlibrary.Work, author *openlibrary.Author, olid, coversBase string) (*catalog.Book, error) {
	if work == nil || strings.TrimSpace(work.Title) == "" {
		return nil, fmt.Errorf("%w: work without title", provider.ErrMalformedPayload)
	}

	book := &catalog.Book{
		OLID:        olid,
		Title:       strings.TrimSpace(work.Title),
		AltTitle:    strings.TrimSpace(work.Subtitle),
		Genres:      FilterSubjects(work.Subjects),
		Synopsis:    strings.TrimSpace(string(work.Description)),
		Languages:   []string{},
		PublishDate: work.FirstPublishDate,
	}
	if book.PublishDate == "" {
		book.PublishDate = work.Created.Value
	}

	if author != nil {
		book.Author = strings.TrimSpace(author.Name)
		book.AltCreatorName = strings.Join(author.PersonalNames, ", ")
		if book.AltCreatorName == "" && author.PersonalName != book.Author {
			book.AltCreatorName = author.PersonalName
		}
	}

	seen := map[string]bool{}
	for _, language := range work.Languages {
		code := language.Last()
		if code != "" && !seen[code] {
			seen[code] = true
			book.Languages = append(book.Languages, code)
		}
	}

	for _, cover := range work.Covers {
		if cover > 0 {
			url := fmt.Sprintf("%s/b/id/%d-L.jpg", strings.TrimRight(coversBase, "/"), cover)
			book.Cover = &url
			break
		}
	}

	return book, nil
}

// FilterSubjects keeps short, specific string subjects in their original order.
func FilterSubjects(subjects []any) []string {
	kept := []string{}
	seen := map[string]bool{}
	for _, subject := range subjects {
		text, ok := subject.(string)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if len([]rune(text)) < 1 || len([]rune(text)) > maxSubjectLen {
			continue
		}
		if strings.Contains(strings.ToLower(text), "book") {
			continue
		}
		key := strings.ToLower(text)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, text)
	}
	return kept
}
