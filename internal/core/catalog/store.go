// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Registry Data Access

// Repository defines persistence for universal items and typed records.
type Repository interface {

	/*
		GetOrCreateItem atomically resolves (externalID, itemType) to one row.

		Description: Concurrent callers for the same key land on the same row.
		Exactly one of them observes created == true.

		Returns:
		  - *UniversalItem: The existing or new row
		  - bool: Whether this call inserted the row
		  - error: Database failures
	*/
	GetOrCreateItem(context context.Context, id, externalID string, itemType ItemType, defaults ItemDefaults) (*UniversalItem, bool, error)

	// Exists reports whether a registry row exists for the key.
	Exists(context context.Context, externalID string, itemType ItemType) (bool, error)

	// ExistingKeys returns the subset of externalIDs already registered for itemType.
	ExistingKeys(context context.Context, externalIDs []string, itemType ItemType) ([]string, error)

	FindItem(context context.Context, id string) (*UniversalItem, error)
	ListItems(context context.Context, filter Filter, limit, offset int) ([]*UniversalItem, int, error)

	// # Typed Records

	// UpsertFilm inserts or refreshes the film keyed by its TMDb id.
	UpsertFilm(context context.Context, film *Film) error

	// UpsertBook inserts or refreshes the book keyed by its OpenLibrary work id.
	UpsertBook(context context.Context, book *Book) error

	CreateMusicPiece(context context.Context, piece *MusicPiece) error
	CreateArtwork(context context.Context, art *Artwork) error
	CreateHistoryEvent(context context.Context, event *HistoryEvent) error

	// FindWork loads the typed record backing an item.
	FindWork(context context.Context, item *UniversalItem) (Work, error)

	FindFilmByTMDbID(context context.Context, tmdbID string) (*Film, error)
	FindBookByOLID(context context.Context, olid string) (*Book, error)
	ListFilms(context context.Context, query string, limit, offset int) ([]*Film, int, error)
	ListBooks(context context.Context, query string, limit, offset int) ([]*Book, int, error)
}
