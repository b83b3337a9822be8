// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	"time"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
)

// ListType restricts which registry items a list accepts.
type ListType string

const (
	ListBooks    ListType = "books"
	ListFilms    ListType = "films"
	ListArtworks ListType = "artworks"
	ListMusic    ListType = "music"
	ListEvents   ListType = "events"
	ListMixed    ListType = "mixed"
)

var listItemTypes = map[ListType]catalog.ItemType{
	ListBooks:    catalog.ItemBook,
	ListFilms:    catalog.ItemFilm,
	ListArtworks: catalog.ItemArtwork,
	ListMusic:    catalog.ItemMusic,
	ListEvents:   catalog.ItemEvent,
}

// Valid reports whether t is a known list type.
func (t ListType) Valid() bool {
	_, typed := listItemTypes[t]
	return typed || t == ListMixed
}

// Accepts reports whether an item of itemType may be added to a list of type t.
func (t ListType) Accepts(itemType catalog.ItemType) bool {
	if t == ListMixed {
		return true
	}
	return listItemTypes[t] == itemType
}

// List is an ordered, typed grouping of registry items.
type List struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Name        string     `json:"name"`
	Type        ListType   `json:"type"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	CultureIDs  []string   `json:"cultures"`
	Items       []ListItem `json:"items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListItem is one entry of a list. Positions start at 1.
type ListItem struct {
	UniversalItemID string    `json:"universal_item_id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	Position        int       `json:"position"`
	AddedAt         time.Time `json:"added_at"`
}

// ListInput creates or replaces a list.
type ListInput struct {
	Name        string     `json:"name"`
	Type        ListType   `json:"type"`
	Description string     `json:"description"`
	Visibility  Visibility `json:"visibility"`
	CultureIDs  []string   `json:"cultures"`
}

// ListUpdateInput patches a list; nil fields keep their stored value. The type is fixed.
type ListUpdateInput struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Visibility  *Visibility `json:"visibility"`
	CultureIDs  *[]string   `json:"cultures"`
}

// ListItemInput adds an item to a list.
type ListItemInput struct {
	UniversalItemID string `json:"universal_item_id"`
}

// MoveInput reorders an item.
type MoveInput struct {
	Position int `json:"position"`
}
