// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package culture

import "context"

// # Culture Data Access

// Repository defines the data access contract for cultures and everything scoped to them.
type Repository interface {

	/*
		Create inserts a culture row.

		Returns:
		  - error: Conflict when the owner already uses the code
	*/
	Create(context context.Context, culture *Culture) error

	/*
		CreateCategories inserts categories in a single round trip.
	*/
	CreateCategories(context context.Context, categories []*Category) error

	// Update persists name, colour, picture and visibility.
	Update(context context.Context, culture *Culture) error

	// Delete removes a culture. Dependent rows cascade.
	Delete(context context.Context, id string) error

	// FindByID returns a culture regardless of owner.
	FindByID(context context.Context, id string) (*Culture, error)

	/*
		FindByCode returns the owner's culture with the given code (case-insensitive).

		Returns:
		  - error: NotFound when the owner has no such culture
	*/
	FindByCode(context context.Context, ownerID, code string) (*Culture, error)

	// ListByOwner returns the owner's cultures, optionally restricted to one code.
	ListByOwner(context context.Context, ownerID, code string) ([]*Culture, error)

	/*
		OwnedIDs filters ids down to those owned by ownerID.

		Returns:
		  - []string: The owned subset, in no particular order
	*/
	OwnedIDs(context context.Context, ownerID string, ids []string) ([]string, error)

	// # Categories

	CreateCategory(context context.Context, category *Category) error
	FindCategory(context context.Context, id string) (*Category, error)
	ListCategories(context context.Context, ownerID, code string) ([]*Category, error)

	// # Periods

	CreatePeriod(context context.Context, period *Period) error
	UpdatePeriod(context context.Context, period *Period) error
	DeletePeriod(context context.Context, id string) error
	FindPeriod(context context.Context, id string) (*Period, error)

	/*
		ListPeriods returns the owner's periods ordered by start year,
		optionally filtered by culture code and category key.
	*/
	ListPeriods(context context.Context, ownerID, code, key string) ([]*Period, error)

	// # Page Contents

	/*
		CreatePageContent inserts page texts.

		Returns:
		  - error: Conflict when the category already has a page
	*/
	CreatePageContent(context context.Context, page *PageContent) error
	UpdatePageContent(context context.Context, page *PageContent) error
	DeletePageContent(context context.Context, id string) error
	FindPageContent(context context.Context, id string) (*PageContent, error)

	// ListPageContents returns the owner's pages filtered by culture code and category key.
	ListPageContents(context context.Context, ownerID, code, key string) ([]*PageContent, error)

	// # Map Borders

	CreateMapBorder(context context.Context, border *MapBorder) error
	UpdateMapBorder(context context.Context, border *MapBorder) error
	DeleteMapBorder(context context.Context, id string) error
	FindMapBorder(context context.Context, id string) (*MapBorder, error)

	// ListMapBorders returns the owner's borders ordered by period start year.
	ListMapBorders(context context.Context, ownerID, code string) ([]*MapBorder, error)

	// # Language Tables

	CreateLanguageTable(context context.Context, table *LanguageTable) error
	UpdateLanguageTable(context context.Context, table *LanguageTable) error
	DeleteLanguageTable(context context.Context, id string) error
	FindLanguageTable(context context.Context, id string) (*LanguageTable, error)
	ListLanguageTables(context context.Context, ownerID, code string) ([]*LanguageTable, error)
}
