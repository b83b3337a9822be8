// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package culture implements the identity and ownership model: user-owned
cultures, their category taxonomy and historical periods.

# Core Responsibility

  - Ownership: every culture belongs to exactly one user.
  - Linkage: a culture's shared group key relates it to other users' cultures
    on the same topic. The key is fixed at creation.
  - Taxonomy: a fixed set of categories is created with every culture.
  - Content: category page texts, period map borders and language tables
    hang off a culture and go away with it.

Other domains ask this package which cultures a user owns before attaching
them to records or lists.
*/
package culture

import (
	"encoding/json"
	"strings"
	"time"
)

// # Enums

// Visibility controls whether an owned entity is discoverable by other users.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// OrDefault returns v, or private when v is empty.
func (v Visibility) OrDefault() Visibility {
	if v == "" {
		return VisibilityPrivate
	}
	return v
}

// # Core Entities

// Culture is a user-owned thematic collection such as a country or an interest.
type Culture struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	Colour         string     `json:"colour"`
	Picture        *string    `json:"picture,omitempty"`
	SharedGroupKey string     `json:"shared_group_key"`
	Visibility     Visibility `json:"visibility"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Category is one entry of a culture's taxonomy.
type Category struct {
	ID          string    `json:"id"`
	CultureID   string    `json:"culture_id"`
	Key         string    `json:"key"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Period is a year range inside a culture's category.
type Period struct {
	ID          string    `json:"id"`
	CultureID   string    `json:"culture_id"`
	CategoryID  string    `json:"category_id"`
	Section     string    `json:"section"`
	StartYear   int       `json:"start_year"`
	EndYear     int       `json:"end_year"`
	Description string    `json:"description"`
	ShortIntro  string    `json:"short_intro"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PageContent holds the prose shown on one category page of a culture.
// A culture has at most one per category.
type PageContent struct {
	ID           string    `json:"id"`
	CultureID    string    `json:"culture_id"`
	CategoryID   string    `json:"category_id"`
	IntroText    string    `json:"intro_text"`
	OverviewText string    `json:"overview_text"`
	ExtraText    string    `json:"extra_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MapBorder is the border geometry of a culture during one of its periods.
type MapBorder struct {
	ID        string          `json:"id"`
	CultureID string          `json:"culture_id"`
	PeriodID  string          `json:"period_id"`
	Borders   json.RawMessage `json:"borders"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LanguageTable is a titled grid such as a kana chart or a conjugation table.
type LanguageTable struct {
	ID        string          `json:"id"`
	CultureID string          `json:"culture_id"`
	Title     string          `json:"title"`
	TableData json.RawMessage `json:"table_data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DefaultCategories are created alongside every new culture, in this order.
var DefaultCategories = []string{
	"Literature",
	"Film",
	"Music",
	"Art",
	"Cuisine",
	"History",
	"Calendar",
}

// DeriveGroupKey returns the shared group key for a new culture: the
// explicit key when given, otherwise the code. Both are lowercased.
func DeriveGroupKey(code, explicit string) string {
	if key := strings.TrimSpace(explicit); key != "" {
		return strings.ToLower(key)
	}
	return strings.ToLower(strings.TrimSpace(code))
}

// # Inputs

// CreateInput carries the fields accepted when creating a culture.
type CreateInput struct {
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	Colour         string     `json:"colour"`
	Picture        *string    `json:"picture"`
	SharedGroupKey string     `json:"shared_group_key"`
	Visibility     Visibility `json:"visibility"`
}

// UpdateInput carries the mutable fields of a culture. Code and shared
// group key are absent on purpose: they never change after creation.
type UpdateInput struct {
	Name       *string     `json:"name"`
	Colour     *string     `json:"colour"`
	Picture    *string     `json:"picture"`
	Visibility *Visibility `json:"visibility"`
}

// CategoryInput creates a custom category under an owned culture.
type CategoryInput struct {
	CultureID   string `json:"culture_id"`
	DisplayName string `json:"display_name"`
	Key         string `json:"key"`
}

// PeriodInput creates or replaces a period.
type PeriodInput struct {
	CultureID   string `json:"culture_id"`
	CategoryID  string `json:"category_id"`
	Section     string `json:"section"`
	StartYear   int    `json:"start_year"`
	EndYear     int    `json:"end_year"`
	Description string `json:"description"`
	ShortIntro  string `json:"short_intro"`
}

// PageContentInput creates the page texts of a culture's category.
type PageContentInput struct {
	CultureID    string `json:"culture_id"`
	CategoryID   string `json:"category_id"`
	IntroText    string `json:"intro_text"`
	OverviewText string `json:"overview_text"`
	ExtraText    string `json:"extra_text"`
}

// PageContentUpdate changes page texts. Absent fields are kept.
type PageContentUpdate struct {
	IntroText    *string `json:"intro_text"`
	OverviewText *string `json:"overview_text"`
	ExtraText    *string `json:"extra_text"`
}

// MapBorderInput creates a border for a period of an owned culture.
type MapBorderInput struct {
	CultureID string          `json:"culture_id"`
	PeriodID  string          `json:"period_id"`
	Borders   json.RawMessage `json:"borders"`
}

// MapBorderUpdate moves a border to another period or replaces its geometry.
type MapBorderUpdate struct {
	PeriodID *string         `json:"period_id"`
	Borders  json.RawMessage `json:"borders"`
}

// LanguageTableInput creates a language table. TableData defaults to {}.
type LanguageTableInput struct {
	CultureID string          `json:"culture_id"`
	Title     string          `json:"title"`
	TableData json.RawMessage `json:"table_data"`
}

// LanguageTableUpdate renames a table or replaces its data.
type LanguageTableUpdate struct {
	Title     *string         `json:"title"`
	TableData json.RawMessage `json:"table_data"`
}

// # Field Identifiers

const (
	FieldName           = "name"
	FieldCode           = "code"
	FieldColour         = "colour"
	FieldPicture        = "picture"
	FieldSharedGroupKey = "shared_group_key"
	FieldVisibility     = "visibility"
	FieldCultureID      = "culture_id"
	FieldCategoryID     = "category_id"
	FieldDisplayName    = "display_name"
	FieldKey            = "key"
	FieldSection        = "section"
	FieldStartYear      = "start_year"
	FieldEndYear        = "end_year"
	FieldPeriodID       = "period_id"
	FieldBorders        = "borders"
	FieldTitle          = "title"
	FieldTableData      = "table_data"
)

// # Limits

const (
	maxNameLen     = 100
	maxCodeLen     = 3
	maxGroupKeyLen = 50
	maxKeyLen      = 50
	maxSectionLen  = 100
	maxIntroLen    = 255
	maxTitleLen    = 200
)
