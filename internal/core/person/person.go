// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package person is a directory of people referenced by records and works:
// composers, authors, directors, historical figures.
package person

import (
	"strings"
	"time"
)

// Person is one directory entry.
type Person struct {
	ID            string    `json:"id"`
	GivenName     string    `json:"given_name"`
	FamilyName    string    `json:"family_name"`
	MiddleName    string    `json:"middle_name"`
	Bio           string    `json:"bio"`
	Photo         *string   `json:"photo"`
	ExternalLinks *string   `json:"external_links"`
	Profession    string    `json:"profession"`
	Nationality   string    `json:"nationality"`
	Birthplace    string    `json:"birthplace"`
	Titles        string    `json:"titles"`
	Epithets      string    `json:"epithets"`
	NotableWorks  []string  `json:"notable_works"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName joins the non-empty name parts.
func (person *Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{person.GivenName, person.MiddleName, person.FamilyName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Filter narrows a directory listing.
type Filter struct {
	Query       string // ILIKE against given, middle and family name
	Nationality string // Case-insensitive exact match
}

// Field names used in validation errors.
const (
	FieldGivenName    = "given_name"
	FieldFamilyName   = "family_name"
	FieldMiddleName   = "middle_name"
	FieldPhoto        = "photo"
	FieldProfession   = "profession"
	FieldNationality  = "nationality"
	FieldBirthplace   = "birthplace"
	FieldTitles       = "titles"
	FieldEpithets     = "epithets"
	FieldNotableWorks = "notable_works"
)
