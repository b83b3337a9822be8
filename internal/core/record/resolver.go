// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record

import (
	stdctx "context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/database/schema"
	"github.com/taibuivan/voxmundi/pkg/slice"
	"github.com/taibuivan/voxmundi/pkg/uuid"
)

// CultureDirectory answers the ownership questions the record layer asks.
type CultureDirectory interface {
	FindByCode(ctx stdctx.Context, ownerID, code string) (*culture.Culture, error)
	OwnedCultureIDs(ctx stdctx.Context, ownerID string, ids []string) ([]string, error)
	OwnedPeriod(ctx stdctx.Context, ownerID, id string) (*culture.Period, error)
}

// # Resolver Targets

// Target describes the owned table a resolver predicate filters and the
// junction that links its rows to cultures.
type Target struct {
	Alias       string
	OwnerColumn string
	Visibility  string
	Junction    string
	JunctionKey string
}

// RecordTarget filters library.record aliased as "r".
var RecordTarget = Target{
	Alias:       "r",
	OwnerColumn: schema.LibraryRecord.OwnerID,
	Visibility:  schema.LibraryRecord.Visibility,
	Junction:    schema.LibraryRecordCulture.Table,
	JunctionKey: schema.LibraryRecordCulture.RecordID,
}

// ListTarget filters library.list aliased as "l".
var ListTarget = Target{
	Alias:       "l",
	OwnerColumn: schema.LibraryList.OwnerID,
	Visibility:  schema.LibraryList.Visibility,
	Junction:    schema.LibraryListCulture.Table,
	JunctionKey: schema.LibraryListCulture.ListID,
}

func (target Target) column(name string) string {
	return target.Alias + "." + name
}

// cultureMatch renders an EXISTS over the junction joined to core.culture.
// EXISTS keeps the outer rows distinct however many cultures match.
func (target Target) cultureMatch(condition string, args ...any) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf(
		"EXISTS (SELECT 1 FROM %s j JOIN %s c ON c.%s = j.%s WHERE j.%s = %s AND %s)",
		target.Junction,
		schema.CoreCulture.Table, schema.CoreCulture.ID, schema.LibraryRecordCulture.CultureID,
		target.JunctionKey, target.column("id"),
		condition,
	), args...)
}

// # Resolver

// Plan is the outcome of resolving a viewer's scope.
type Plan struct {
	// Where restricts the target table. Nil only when Empty is set.
	Where sq.Sqlizer

	// Empty short-circuits the query: the scope cannot match anything.
	Empty bool

	// Branch names the rule that applied, for logging.
	Branch string
}

// Resolver turns (viewer, code, shared) into a visibility predicate.
type Resolver struct {
	cultures CultureDirectory
}

// NewResolver constructs a [Resolver].
func NewResolver(cultures CultureDirectory) *Resolver {
	return &Resolver{cultures: cultures}
}

/*
Resolve builds the predicate selecting the rows viewerID may see.

Description: Implements the four visibility branches:

 1. Anonymous: public rows only, code and shared are ignored.
 2. Own: rows owned by the viewer, optionally those tagged with the
    viewer's culture for code.
 3. Shared without code: public rows of other users.
 4. Shared with code: public rows of other users tagged with any culture
    whose shared group key equals the viewer's culture for code. When the
    viewer has no such culture the plan is empty.

Parameters:
  - context: context.Context
  - viewerID: string (empty for anonymous)
  - code: string (optional culture code)
  - shared: bool
  - target: Target

Returns:
  - Plan: Predicate or empty marker
  - error: Only lookup failures other than not-found
*/
func (resolver *Resolver) Resolve(context stdctx.Context, viewerID, code string, shared bool, target Target) (Plan, error) {
	public := sq.Eq{target.column(target.Visibility): culture.VisibilityPublic}

	// 1. Anonymous viewers never see private rows
	if viewerID == "" {
		return Plan{Where: public, Branch: "anonymous"}, nil
	}

	owner := target.column(target.OwnerColumn)

	// 2. Own content
	if !shared {
		where := sq.And{sq.Eq{owner: viewerID}}
		if code != "" {
			where = append(where, target.cultureMatch(
				fmt.Sprintf("c.%s = ? AND LOWER(c.%s) = LOWER(?)", schema.CoreCulture.OwnerID, schema.CoreCulture.Code),
				viewerID, code,
			))
		}
		return Plan{Where: where, Branch: "own"}, nil
	}

	others := sq.And{public, sq.NotEq{owner: viewerID}}

	// 3. Discovery across every topic
	if code == "" {
		return Plan{Where: others, Branch: "shared_all"}, nil
	}

	// 4. Discovery within the viewer's topic for this code
	own, err := resolver.cultures.FindByCode(context, viewerID, code)
	if err != nil {
		if apperr.IsNotFound(err) {
			return Plan{Empty: true, Branch: "shared_unknown_code"}, nil
		}
		return Plan{}, err
	}

	where := append(others, target.cultureMatch(
		fmt.Sprintf("c.%s = ?", schema.CoreCulture.SharedGroupKey),
		own.SharedGroupKey,
	))
	return Plan{Where: where, Branch: "shared_group"}, nil
}

// # Write-side Ownership

/*
CheckCultures verifies that every culture id is owned by ownerID.

Returns:
  - []string: The ids deduplicated in input order
  - error: ValidationError on field "cultures" naming the foreign ids
*/
func (resolver *Resolver) CheckCultures(context stdctx.Context, ownerID string, ids []string) ([]string, error) {
	malformed := slice.Filter(ids, func(raw string) bool { return uuid.Normalize(raw) == "" })
	unique := slice.Unique(slice.Filter(slice.Map(ids, uuid.Normalize), isPresent))

	if len(unique) == 0 && len(malformed) == 0 {
		return unique, nil
	}
	if len(unique) > maxCultureIDs {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCultures,
			Message: fmt.Sprintf("At most %d cultures can be attached", maxCultureIDs),
		})
	}

	owned := []string{}
	if len(unique) > 0 {
		var err error
		if owned, err = resolver.cultures.OwnedCultureIDs(context, ownerID, unique); err != nil {
			return nil, err
		}
	}

	if foreign := append(malformed, slice.Difference(unique, owned)...); len(foreign) > 0 {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldCultures,
			Message: fmt.Sprintf("Cultures not owned by you: %v", foreign),
		})
	}

	return unique, nil
}

/*
CheckPeriod verifies that a map pin's period exists and belongs to ownerID.

Returns:
  - error: ValidationError on field "details.period_id" for a missing or foreign period
*/
func (resolver *Resolver) CheckPeriod(context stdctx.Context, ownerID, periodID string) error {
	_, err := resolver.cultures.OwnedPeriod(context, ownerID, periodID)
	if apperr.IsNotFound(err) || apperr.HasCode(err, "FORBIDDEN") {
		return apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldDetails + ".period_id",
			Message: "Unknown period",
		})
	}
	return err
}

func isPresent(id string) bool { return id != "" }
