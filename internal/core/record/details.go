// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/validate"
)

// # Kind-specific Details

// BookDetails is the personal side of a tracked book.
type BookDetails struct {
	PageCount    *int    `json:"page_count,omitempty" validate:"omitempty,min=1"`
	IsHistory    bool    `json:"is_history"`
	Translated   bool    `json:"translated"`
	Format       string  `json:"format,omitempty" validate:"max=50"`
	Cover        *string `json:"cover,omitempty" validate:"omitempty,url"`
	DateStarted  string  `json:"date_started,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateFinished string  `json:"date_finished,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Series       string  `json:"series,omitempty" validate:"max=200"`
	Location     string  `json:"location,omitempty" validate:"max=200"`
	Owned        bool    `json:"owned"`
}

// FilmDetails is the personal side of a tracked film.
type FilmDetails struct {
	RewatchCount  int      `json:"rewatch_count" validate:"min=0"`
	WatchLocation string   `json:"watch_location,omitempty" validate:"max=200"`
	Medium        string   `json:"medium,omitempty" validate:"max=100"`
	Sound         bool     `json:"sound"`
	Color         bool     `json:"color"`
	DateWatched   string   `json:"date_watched,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Poster        *string  `json:"poster,omitempty" validate:"omitempty,url"`
	Background    *string  `json:"background,omitempty" validate:"omitempty,url"`
	AwardsWon     []string `json:"awards_won,omitempty" validate:"dive,max=200"`
}

// MusicDetails is the personal side of a tracked music piece.
type MusicDetails struct {
	Performer  string `json:"performer,omitempty" validate:"max=200"`
	ListenedOn string `json:"listened_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ArtworkDetails is the personal side of a tracked artwork.
type ArtworkDetails struct {
	SeenAt string `json:"seen_at,omitempty" validate:"max=200"`
	SeenOn string `json:"seen_on,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// EventDetails is the personal side of a tracked history event.
type EventDetails struct {
	ImportanceRank *int `json:"importance_rank,omitempty" validate:"omitempty,min=0,max=100"`
}

// RecipeDetails is a self-authored recipe.
type RecipeDetails struct {
	Region       string   `json:"region,omitempty" validate:"max=100"`
	CookingTime  *int     `json:"cooking_time,omitempty" validate:"omitempty,min=0"`
	Ingredients  []string `json:"ingredients" validate:"dive,required,max=300"`
	Instructions []string `json:"instructions" validate:"dive,required"`
	Type         string   `json:"type,omitempty" validate:"max=50"`
	Course       string   `json:"course,omitempty" validate:"max=50"`
	ServingSize  string   `json:"serving_size,omitempty" validate:"max=50"`
	Photo        *string  `json:"photo,omitempty" validate:"omitempty,url"`
}

// LessonDetails is a self-authored language lesson.
type LessonDetails struct {
	Lesson   string `json:"lesson" validate:"required"`
	Examples string `json:"examples,omitempty"`
	Level    string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
}

// CalendarDetails is a self-authored calendar date.
type CalendarDetails struct {
	DateText     string  `json:"date_text,omitempty" validate:"max=100"`
	CalendarDate string  `json:"calendar_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Traditions   string  `json:"traditions,omitempty"`
	Meaning      string  `json:"meaning,omitempty"`
	Photo        *string `json:"photo,omitempty" validate:"omitempty,url"`
}

// MapPinDetails is a self-authored map pin.
type MapPinDetails struct {
	PeriodID      string    `json:"period_id" validate:"required,uuid"`
	Type          string    `json:"type" validate:"required,max=50"`
	Loc           []float64 `json:"loc" validate:"len=2,dive,min=-180,max=180"`
	ExternalLinks *string   `json:"external_links,omitempty" validate:"omitempty,url"`
}

// newDetails returns an empty details value for kind.
func newDetails(kind Kind) any {
	switch kind {
	case KindBook:
		return &BookDetails{}
	case KindFilm:
		return &FilmDetails{Sound: true, Color: true}
	case KindMusic:
		return &MusicDetails{}
	case KindArtwork:
		return &ArtworkDetails{}
	case KindEvent:
		return &EventDetails{}
	case KindRecipe:
		return &RecipeDetails{}
	case KindLesson:
		return &LessonDetails{}
	case KindCalendar:
		return &CalendarDetails{}
	case KindMapPin:
		return &MapPinDetails{}
	}
	return nil
}

/*
NormalizeDetails decodes raw into the typed details of kind, validates it
and re-encodes it. Unknown keys are rejected.

Returns:
  - json.RawMessage: Canonical encoding for storage
  - error: ValidationError with fields prefixed by "details."
*/
func NormalizeDetails(kind Kind, raw json.RawMessage) (json.RawMessage, error) {
	target := newDetails(kind)
	if target == nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldKind, Message: "Unknown record kind"})
	}

	if len(bytes.TrimSpace(raw)) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(target); err != nil {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{Field: FieldDetails, Message: "Malformed details for kind " + string(kind)})
		}
	}

	validator := &validate.Validator{}
	validator.Merge(FieldDetails, validate.Struct(target))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(target)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return encoded, nil
}
