// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package record implements the personal record layer: each user's tracking
records and lists, and the resolver that decides which of them a viewer sees.

# Visibility Rules

  - Anonymous viewers only ever see public rows.
  - Without the shared flag a viewer sees their own rows, optionally narrowed
    to one of their culture codes.
  - With the shared flag a viewer sees other users' public rows. A culture
    code narrows them to rows tagged with any culture sharing the viewer's
    group key for that code. An unknown code yields an empty page.

Reads are lenient and writes are strict: a foreign culture on write is a
validation failure, while an unknown code on read is just an empty result.
*/
package record

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
	"github.com/taibuivan/voxmundi/internal/core/culture"
)

// # Enums

// Kind identifies what a personal record tracks.
type Kind string

const (
	KindBook     Kind = "book"
	KindFilm     Kind = "film"
	KindMusic    Kind = "music"
	KindArtwork  Kind = "artwork"
	KindEvent    Kind = "event"
	KindRecipe   Kind = "recipe"
	KindLesson   Kind = "lesson"
	KindCalendar Kind = "calendar"
	KindMapPin   Kind = "mappin"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindBook, KindFilm, KindMusic, KindArtwork, KindEvent, KindRecipe, KindLesson, KindCalendar, KindMapPin}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// ItemType returns the registry type a media kind references.
// Authored kinds return false.
func (k Kind) ItemType() (catalog.ItemType, bool) {
	switch k {
	case KindBook:
		return catalog.ItemBook, true
	case KindFilm:
		return catalog.ItemFilm, true
	case KindMusic:
		return catalog.ItemMusic, true
	case KindArtwork:
		return catalog.ItemArtwork, true
	case KindEvent:
		return catalog.ItemEvent, true
	}
	return "", false
}

// Visibility is shared with cultures.
type Visibility = culture.Visibility

// # Value Objects

// Tracking carries the ownership and annotation fields every personal
// record and list embeds.
type Tracking struct {
	OwnerID    string     `json:"owner_id"`
	CultureIDs []string   `json:"cultures"`
	Rating     *int       `json:"rating,omitempty"`
	Notes      string     `json:"notes"`
	Visibility Visibility `json:"visibility"`
}

// # Entities

// Record is one user's annotation of a registry item or self-authored content.
type Record struct {
	ID              string          `json:"id"`
	Kind            Kind            `json:"kind"`
	UniversalItemID *string         `json:"universal_item_id,omitempty"`
	Title           string          `json:"title"`
	Details         json.RawMessage `json:"details"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Tracking
}

// Scope is the resolver input taken from the query string.
type Scope struct {
	Code   string
	Shared bool
	Query  string
	Kind   Kind
}

// # Inputs

// Input creates a record.
type Input struct {
	Kind            Kind            `json:"kind"`
	UniversalItemID *string         `json:"universal_item_id"`
	Title           string          `json:"title"`
	CultureIDs      []string        `json:"cultures"`
	Rating          *int            `json:"rating"`
	Notes           string          `json:"notes"`
	Visibility      Visibility      `json:"visibility"`
	Details         json.RawMessage `json:"details"`
}

/*
UpdateInput patches a record. A nil field keeps the stored value; an empty
"cultures" array detaches every culture and a rating of 0 clears the rating.
Kind and universal item are fixed at creation.
*/
type UpdateInput struct {
	Title      *string         `json:"title"`
	CultureIDs *[]string       `json:"cultures"`
	Rating     *int            `json:"rating"`
	Notes      *string         `json:"notes"`
	Visibility *Visibility     `json:"visibility"`
	Details    json.RawMessage `json:"details"`
}

// ImageInput updates a film record's artwork from TMDb path fragments.
type ImageInput struct {
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

// # Field Identifiers

const (
	FieldKind            = "kind"
	FieldUniversalItemID = "universal_item_id"
	FieldTitle           = "title"
	FieldCultures        = "cultures"
	FieldRating          = "rating"
	FieldVisibility      = "visibility"
	FieldDetails         = "details"
	FieldName            = "name"
	FieldListType        = "type"
	FieldPosition        = "position"
)

const (
	minRating     = 1
	maxRating     = 10
	maxTitleLen   = 300
	maxNameLen    = 200
	maxCultureIDs = 20
)
