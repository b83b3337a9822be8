// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog is the canonical item registry: one [UniversalItem] per
real-world work per type, each backed by exactly one typed media record.

# Core Responsibility

  - Identity: items are keyed by (external_id, item_type). Imports resolve to
    the existing row instead of creating a duplicate.
  - Typing: Film, Book, MusicPiece, Artwork and HistoryEvent implement [Work]
    and point back to their item through an explicit one-to-one key.
  - Atomicity: an item and its typed record are written in one transaction.
*/
package catalog

import (
	"strings"
	"time"
)

// # Enums

// ItemType discriminates which typed table backs a universal item.
type ItemType string

const (
	ItemBook    ItemType = "book"
	ItemFilm    ItemType = "film"
	ItemMusic   ItemType = "music"
	ItemArtwork ItemType = "artwork"
	ItemEvent   ItemType = "event"
)

// ItemTypes lists every registry type.
var ItemTypes = []ItemType{ItemBook, ItemFilm, ItemMusic, ItemArtwork, ItemEvent}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LocalKeyPrefix marks external ids minted for user-entered works.
const LocalKeyPrefix = "local:"

// # Registry Entities

// UniversalItem is the de-duplicated registry entry for one work.
type UniversalItem struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"external_id"`
	Type          ItemType  `json:"type"`
	Title         string    `json:"title"`
	CreatorString string    `json:"creator_string"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ItemDefaults seeds a universal item when it does not exist yet.
type ItemDefaults struct {
	Title         string
	CreatorString string
}

// Upserted reports the outcome of a registry write.
type Upserted struct {
	Item    *UniversalItem `json:"item"`
	Created bool           `json:"created"`
}

// ItemDetail is a universal item together with its typed record.
type ItemDetail struct {
	*UniversalItem
	Record Work `json:"record,omitempty"`
}

// Filter narrows registry listings.
type Filter struct {
	Type  ItemType
	Query string
}

// # Work Abstraction

// Work is the behaviour shared by every typed media record.
type Work interface {
	WorkTitle() string
	Creator() string
	ExternalLinks() []string
	Tags() []string
	ItemType() ItemType
	ExternalKey() string
}

// Credit is one cast or crew entry.
type Credit struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// # Typed Media Records

// Film is TMDb-sourced film metadata.
type Film struct {
	ID              string    `json:"id"`
	UniversalItemID string    `json:"universal_item_id"`
	TMDbID          string    `json:"tmdb_id"`
	Title           string    `json:"title"`
	AltTitle        string    `json:"alt_title"`
	Director        string    `json:"director"`
	Runtime         *int      `json:"runtime,omitempty"`
	Genres          []string  `json:"genres"`
	Cast            []Credit  `json:"cast_members"`
	Crew            []Credit  `json:"crew_members"`
	Blurb           string    `json:"blurb"`
	Synopsis        string    `json:"synopsis"`
	Languages       []string  `json:"languages"`
	Countries       []string  `json:"countries"`
	Poster          *string   `json:"poster,omitempty"`
	Background      *string   `json:"background,omitempty"`
	Budget          int64     `json:"budget"`
	BoxOffice       int64     `json:"box_office"`
	ReleaseDate     string    `json:"release_date"`
	Homepage        *string   `json:"homepage,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (film *Film) WorkTitle() string  { return film.Title }
func (film *Film) Creator() string    { return film.Director }
func (film *Film) Tags() []string     { return film.Genres }
func (film *Film) ItemType() ItemType { return ItemFilm }
func (film *Film) ExternalKey() string {
	return film.TMDbID
}

// ExternalLinks returns the TMDb page and the homepage when known.
func (film *Film) ExternalLinks() []string {
	links := []string{"https://www.themoviedb.org/movie/" + film.TMDbID}
	if film.Homepage != nil && *film.Homepage != "" {
		links = append(links, *film.Homepage)
	}
	return links
}

// Book is OpenLibrary-sourced book metadata.
type Book struct {
	ID              string    `json:"id"`
	UniversalItemID string    `json:"universal_item_id"`
	OLID            string    `json:"ol_id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	AltTitle        string    `json:"alt_title"`
	Author          string    `json:"creator"`
	AltCreatorName  string    `json:"alt_creator_name"`
	Genres          []string  `json:"genres"`
	Synopsis        string    `json:"synopsis"`
	Cover           *string   `json:"cover,omitempty"`
	Languages       []string  `json:"languages"`
	PublishDate     string    `json:"date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (book *Book) WorkTitle() string   { return book.Title }
func (book *Book) Creator() string     { return book.Author }
func (book *Book) Tags() []string      { return book.Genres }
func (book *Book) ItemType() ItemType  { return ItemBook }
func (book *Book) ExternalKey() string { return book.OLID }

// ExternalLinks returns the OpenLibrary work page.
func (book *Book) ExternalLinks() []string {
	return []string{"https://openlibrary.org/works/" + book.OLID}
}

// MusicPiece is a user-entered composition.
type MusicPiece struct {
	ID              string    `json:"id"`
	UniversalItemID string    `json:"universal_item_id"`
	Key             string    `json:"external_id"`
	Title           string    `json:"title"`
	Composer        string    `json:"creator"`
	Instrument      string    `json:"instrument"`
	Recording       *string   `json:"recording,omitempty"`
	SheetMusic      *string   `json:"sheet_music,omitempty"`
	Links           string    `json:"external_links"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (piece *MusicPiece) WorkTitle() string       { return piece.Title }
func (piece *MusicPiece) Creator() string         { return piece.Composer }
func (piece *MusicPiece) ExternalLinks() []string { return splitList(piece.Links) }
func (piece *MusicPiece) ItemType() ItemType      { return ItemMusic }
func (piece *MusicPiece) ExternalKey() string     { return piece.Key }

// Tags returns the instrument as the only tag.
func (piece *MusicPiece) Tags() []string {
	if piece.Instrument == "" {
		return []string{}
	}
	return []string{piece.Instrument}
}

// Art groups.
const (
	ArtGroupArtwork  = "artwork"
	ArtGroupArtifact = "artifact"
)

// Artwork is a user-entered artwork or artifact.
type Artwork struct {
	ID                string    `json:"id"`
	UniversalItemID   string    `json:"universal_item_id"`
	Key               string    `json:"external_id"`
	Title             string    `json:"title"`
	Artist            string    `json:"creator"`
	ArtGroup          string    `json:"art_group"`
	Location          string    `json:"location"`
	AssociatedCulture string    `json:"associated_culture"`
	Themes            string    `json:"themes"`
	Photo             *string   `json:"photo,omitempty"`
	ArtType           string    `json:"art_type"`
	Links             string    `json:"external_links"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (art *Artwork) WorkTitle() string       { return art.Title }
func (art *Artwork) Creator() string         { return art.Artist }
func (art *Artwork) ExternalLinks() []string { return splitList(art.Links) }
func (art *Artwork) Tags() []string          { return splitList(art.Themes) }
func (art *Artwork) ItemType() ItemType      { return ItemArtwork }
func (art *Artwork) ExternalKey() string     { return art.Key }

// HistoryEvent is a user-entered historical event.
type HistoryEvent struct {
	ID              string    `json:"id"`
	UniversalItemID string    `json:"universal_item_id"`
	Key             string    `json:"external_id"`
	Title           string    `json:"title"`
	Recorder        string    `json:"creator"`
	EventType       string    `json:"event_type"`
	Location        string    `json:"location"`
	Sources         string    `json:"sources"`
	Significance    int       `json:"significance"`
	Links           string    `json:"external_links"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (event *HistoryEvent) WorkTitle() string       { return event.Title }
func (event *HistoryEvent) Creator() string         { return event.Recorder }
func (event *HistoryEvent) ExternalLinks() []string { return splitList(event.Links) }
func (event *HistoryEvent) ItemType() ItemType      { return ItemEvent }
func (event *HistoryEvent) ExternalKey() string     { return event.Key }

// Tags returns the event type as the only tag.
func (event *HistoryEvent) Tags() []string {
	if event.EventType == "" {
		return []string{}
	}
	return []string{event.EventType}
}

// splitList splits free-text lists on commas and newlines.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// # Manual Entry

// WorkInput is the request body for manually entered works.
type WorkInput struct {
	Type              ItemType `json:"type" validate:"required,oneof=music artwork event"`
	Title             string   `json:"title" validate:"required,max=300"`
	Creator           string   `json:"creator" validate:"max=200"`
	Instrument        string   `json:"instrument" validate:"max=100"`
	Recording         *string  `json:"recording" validate:"omitempty,url"`
	SheetMusic        *string  `json:"sheet_music" validate:"omitempty,url"`
	ArtGroup          string   `json:"art_group" validate:"omitempty,oneof=artwork artifact"`
	Location          string   `json:"location" validate:"max=200"`
	AssociatedCulture string   `json:"associated_culture" validate:"max=200"`
	Themes            string   `json:"themes"`
	Photo             *string  `json:"photo" validate:"omitempty,url"`
	ArtType           string   `json:"art_type" validate:"max=100"`
	EventType         string   `json:"event_type" validate:"max=100"`
	Sources           string   `json:"sources"`
	Significance      int      `json:"significance" validate:"min=0,max=10"`
	ExternalLinks     string   `json:"external_links"`
}

// Build converts the input into the matching typed record.
func (input WorkInput) Build() Work {
	title := strings.TrimSpace(input.Title)
	creator := strings.TrimSpace(input.Creator)

	switch input.Type {
	case ItemMusic:
		return &MusicPiece{
			Title: title, Composer: creator, Instrument: input.Instrument,
			Recording: input.Recording, SheetMusic: input.SheetMusic, Links: input.ExternalLinks,
		}
	case ItemArtwork:
		group := input.ArtGroup
		if group == "" {
			group = ArtGroupArtwork
		}
		return &Artwork{
			Title: title, Artist: creator, ArtGroup: group, Location: input.Location,
			AssociatedCulture: input.AssociatedCulture, Themes: input.Themes, Photo: input.Photo,
			ArtType: input.ArtType, Links: input.ExternalLinks,
		}
	case ItemEvent:
		return &HistoryEvent{
			Title: title, Recorder: creator, EventType: input.EventType, Location: input.Location,
			Sources: input.Sources, Significance: input.Significance, Links: input.ExternalLinks,
		}
	}
	return nil
}
