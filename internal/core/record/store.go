// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
)

// # Record Data Access

// Repository defines persistence for personal records.
type Repository interface {
	Create(context context.Context, record *Record) error
	Update(context context.Context, record *Record) error
	Delete(context context.Context, id string) error

	// FindByID returns a record with its culture ids.
	FindByID(context context.Context, id string) (*Record, error)

	// ReplaceCultures swaps the record's culture links for cultureIDs.
	ReplaceCultures(context context.Context, recordID string, cultureIDs []string) error

	// UpdateDetails overwrites the details document only.
	UpdateDetails(context context.Context, id string, details json.RawMessage) error

	/*
		List returns the page of records matching where and the scope's
		kind and text filters.

		Returns:
		  - []*Record: Newest first
		  - int: Total matches
	*/
	List(context context.Context, where sq.Sqlizer, scope Scope, limit, offset int) ([]*Record, int, error)
}

// # List Data Access

// ListRepository defines persistence for lists and their entries.
type ListRepository interface {
	CreateList(context context.Context, list *List) error
	UpdateList(context context.Context, list *List) error
	DeleteList(context context.Context, id string) error
	FindList(context context.Context, id string) (*List, error)
	ReplaceListCultures(context context.Context, listID string, cultureIDs []string) error
	ListLists(context context.Context, where sq.Sqlizer, limit, offset int) ([]*List, int, error)

	// ListEntries returns the list's items ordered by position.
	ListEntries(context context.Context, listID string) ([]ListItem, error)

	/*
		AppendEntry adds an item after the current last position.

		Returns:
		  - int: The assigned position
		  - error: Conflict when the item is already in the list
	*/
	AppendEntry(context context.Context, listID, itemID string) (int, error)

	RemoveEntry(context context.Context, listID, itemID string) error

	// MoveEntry moves an item to position, shifting the entries in between.
	MoveEntry(context context.Context, listID, itemID string, position int) error
}
