// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer pulls film metadata from TMDb and book metadata from
OpenLibrary and registers it in the catalog.

# Batches

A batch is processed one item at a time, in input order, with every
outbound call waiting on a shared [Pacer]. Each item ends with one status:

  - success: a new registry item was created.
  - already_exists: the registry item existed and its typed record was refreshed.
  - not_found: no usable candidate was found.
  - error: <message>: anything else that went wrong for that item.

Only a missing credential fails the whole batch, and it does so before the
first item. Cancellation is checked between items.
*/
package importer

import (
	"regexp"
	"strings"

	"github.com/taibuivan/voxmundi/pkg/convert"
)

// # Outcomes

// Status is the per-item outcome of a batch.
type Status string

const (
	StatusSuccess       Status = "success"
	StatusAlreadyExists Status = "already_exists"
	StatusNotFound      Status = "not_found"
)

// errorStatus renders the error outcome.
func errorStatus(err error) Status {
	return Status("error: " + err.Error())
}

// Result is the outcome of one batch item.
type Result struct {
	Query      string `json:"query"`
	Title      string `json:"title"`
	ExternalID string `json:"external_id"`
	Created    bool   `json:"created"`
	Status     Status `json:"status"`
}

// Batch is the outcome of a whole import request.
type Batch struct {
	ImportedCount int      `json:"imported_count"`
	Results       []Result `json:"results"`
}

func (batch *Batch) add(result Result) {
	if result.Status == StatusSuccess {
		batch.ImportedCount++
	}
	batch.Results = append(batch.Results, result)
}

// Resolution is the outcome of walking search candidates.
type Resolution[T any] struct {
	Payload T

	// Skipped lists candidate ids passed over because they are already registered.
	Skipped []string

	// Attempts counts the candidates examined.
	Attempts int
}

// ImportInput is the request body of both import endpoints.
type ImportInput struct {
	Items []string `json:"items" validate:"required,min=1,max=100,dive,notblank,max=300"`
}

// # Query Parsing

var (
	yearSuffix = regexp.MustCompile(`^(.*\S)\s*\((\d{4})\)$`)
	workID     = regexp.MustCompile(`^OL\d+W$`)
)

/*
ParseFilmQuery splits an optional "(YYYY)" release year suffix off a film query.

Returns:
  - string: The query without the suffix
  - int: The year, or 0 when absent
*/
func ParseFilmQuery(raw string) (string, int) {
	query := strings.TrimSpace(raw)
	match := yearSuffix.FindStringSubmatch(query)
	if match == nil {
		return query, 0
	}
	return strings.TrimSpace(match[1]), convert.ToIntD(match[2], 0)
}

// IsTMDbID reports whether query is a numeric TMDb id.
func IsTMDbID(query string) bool {
	return convert.IsDigits(query)
}

// IsWorkID reports whether query is an OpenLibrary work id such as OL27448W.
func IsWorkID(query string) bool {
	return workID.MatchString(query)
}
