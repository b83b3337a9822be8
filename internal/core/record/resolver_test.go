// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/culture"
	"github.com/taibuivan/voxmundi/internal/core/record"
	"github.com/taibuivan/voxmundi/internal/platform/apperr"
)

// # Test Doubles

const (
	alice = "0190b6e4-8d1a-7c3e-9f00-00000000a11c"
	bob   = "0190b6e4-8d1a-7c3e-9f00-000000000b0b"

	aliceJapan = "0190b6e4-8d1a-7c3e-9f00-0000000000a1"
	bobNihon   = "0190b6e4-8d1a-7c3e-9f00-0000000000b1"
	bobFrance  = "0190b6e4-8d1a-7c3e-9f00-0000000000b2"

	aliceEdo   = "0190b6e4-8d1a-7c3e-9f00-0000000000e1"
	bobRegency = "0190b6e4-8d1a-7c3e-9f00-0000000000e2"
)

// directory is an in-memory CultureDirectory.
type directory struct {
	cultures []*culture.Culture
	periods  []*culture.Period
	err      error
}

func newDirectory() *directory {
	return &directory{
		cultures: []*culture.Culture{
			{ID: aliceJapan, OwnerID: alice, Code: "jp", SharedGroupKey: "japan"},
			{ID: bobNihon, OwnerID: bob, Code: "nih", SharedGroupKey: "japan"},
			{ID: bobFrance, OwnerID: bob, Code: "fr", SharedGroupKey: "fr"},
		},
		periods: []*culture.Period{
			{ID: aliceEdo, CultureID: aliceJapan, Section: "Edo", StartYear: 1603, EndYear: 1868},
			{ID: bobRegency, CultureID: bobFrance, Section: "Regency", StartYear: 1715, EndYear: 1723},
		},
	}
}

func (dir *directory) OwnedPeriod(_ context.Context, ownerID, id string) (*culture.Period, error) {
	for _, period := range dir.periods {
		if period.ID != id {
			continue
		}
		for _, item := range dir.cultures {
			if item.ID == period.CultureID && item.OwnerID == ownerID {
				return period, nil
			}
		}
		return nil, apperr.Forbidden("You do not own this culture")
	}
	return nil, apperr.NotFound("Period")
}

func (dir *directory) FindByCode(_ context.Context, ownerID, code string) (*culture.Culture, error) {
	if dir.err != nil {
		return nil, dir.err
	}
	for _, item := range dir.cultures {
		if item.OwnerID == ownerID && strings.EqualFold(item.Code, code) {
			return item, nil
		}
	}
	return nil, apperr.NotFound("Culture")
}

func (dir *directory) OwnedCultureIDs(_ context.Context, ownerID string, ids []string) ([]string, error) {
	owned := []string{}
	for _, id := range ids {
		for _, item := range dir.cultures {
			if item.ID == id && item.OwnerID == ownerID {
				owned = append(owned, id)
			}
		}
	}
	return owned, nil
}

func render(t *testing.T, plan record.Plan) (string, []any) {
	t.Helper()
	require.NotNil(t, plan.Where)
	query, args, err := plan.Where.ToSql()
	require.NoError(t, err)
	return query, args
}

// # Resolve

/*
TestResolve_Branches covers the four visibility rules.
*/
func TestResolve_Branches(t *testing.T) {
	resolver := record.NewResolver(newDirectory())
	ctx := context.Background()

	tests := []struct {
		name     string
		viewer   string
		code     string
		shared   bool
		branch   string
		contains []string
		excludes []string
		wantArgs []any
	}{
		{
			name:     "anonymous ignores code and shared",
			viewer:   "",
			code:     "jp",
			shared:   true,
			branch:   "anonymous",
			contains: []string{"r.visibility = ?"},
			excludes: []string{"ownerid", "EXISTS"},
			wantArgs: []any{culture.VisibilityPublic},
		},
		{
			name:     "own content",
			viewer:   alice,
			branch:   "own",
			contains: []string{"r.ownerid = ?"},
			excludes: []string{"visibility", "EXISTS"},
			wantArgs: []any{alice},
		},
		{
			name:     "own content within code",
			viewer:   alice,
			code:     "JP",
			branch:   "own",
			contains: []string{"r.ownerid = ?", "EXISTS (SELECT 1 FROM library.recordculture j JOIN core.culture c", "LOWER(c.code) = LOWER(?)"},
			wantArgs: []any{alice, alice, "JP"},
		},
		{
			name:     "shared without code",
			viewer:   alice,
			shared:   true,
			branch:   "shared_all",
			contains: []string{"r.visibility = ?", "r.ownerid <> ?"},
			excludes: []string{"EXISTS"},
			wantArgs: []any{culture.VisibilityPublic, alice},
		},
		{
			name:     "shared within group",
			viewer:   alice,
			code:     "jp",
			shared:   true,
			branch:   "shared_group",
			contains: []string{"r.ownerid <> ?", "c.sharedgroupkey = ?"},
			wantArgs: []any{culture.VisibilityPublic, alice, "japan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := resolver.Resolve(ctx, tt.viewer, tt.code, tt.shared, record.RecordTarget)
			require.NoError(t, err)
			assert.False(t, plan.Empty)
			assert.Equal(t, tt.branch, plan.Branch)

			query, args := render(t, plan)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.excludes {
				assert.NotContains(t, query, fragment)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

/*
TestResolve_UnknownCode verifies an unknown code on a shared read is an
empty page rather than an error.
*/
func TestResolve_UnknownCode(t *testing.T) {
	resolver := record.NewResolver(newDirectory())

	plan, err := resolver.Resolve(context.Background(), alice, "zz", true, record.RecordTarget)
	require.NoError(t, err)
	assert.True(t, plan.Empty)
	assert.Equal(t, "shared_unknown_code", plan.Branch)
}

/*
TestResolve_LookupFailure verifies non-404 directory errors surface.
*/
func TestResolve_LookupFailure(t *testing.T) {
	dir := newDirectory()
	dir.err = errors.New("connection reset")
	resolver := record.NewResolver(dir)

	_, err := resolver.Resolve(context.Background(), alice, "jp", true, record.RecordTarget)
	require.Error(t, err)
}

/*
TestResolve_ListTarget verifies the same rules render against lists.
*/
func TestResolve_ListTarget(t *testing.T) {
	resolver := record.NewResolver(newDirectory())

	plan, err := resolver.Resolve(context.Background(), bob, "nih", true, record.ListTarget)
	require.NoError(t, err)

	query, args := render(t, plan)
	assert.Contains(t, query, "l.visibility = ?")
	assert.Contains(t, query, "FROM library.listculture j")
	assert.Contains(t, query, "j.listid = l.id")
	assert.Equal(t, []any{culture.VisibilityPublic, bob, "japan"}, args)
}

/*
TestResolve_DollarPlaceholders verifies the predicate composes with the
Postgres statement builder.
*/
func TestResolve_DollarPlaceholders(t *testing.T) {
	resolver := record.NewResolver(newDirectory())
	plan, err := resolver.Resolve(context.Background(), alice, "jp", true, record.RecordTarget)
	require.NoError(t, err)

	query, _, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("r.id").From("library.record r").Where(plan.Where).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "$3")
	assert.NotContains(t, query, "?")
}

// # CheckCultures

/*
TestCheckCultures covers the write-side ownership rule.
*/
func TestCheckCultures(t *testing.T) {
	resolver := record.NewResolver(newDirectory())
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		ids, err := resolver.CheckCultures(ctx, alice, nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("owned and deduplicated", func(t *testing.T) {
		ids, err := resolver.CheckCultures(ctx, alice, []string{aliceJapan, strings.ToUpper(aliceJapan)})
		require.NoError(t, err)
		assert.Equal(t, []string{aliceJapan}, ids)
	})

	t.Run("foreign culture names offender", func(t *testing.T) {
		_, err := resolver.CheckCultures(ctx, alice, []string{aliceJapan, bobNihon})
		require.Error(t, err)

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		require.Len(t, appErr.Details, 1)
		assert.Equal(t, record.FieldCultures, appErr.Details[0].Field)
		assert.Contains(t, appErr.Details[0].Message, bobNihon)
	})

	t.Run("malformed id is foreign", func(t *testing.T) {
		_, err := resolver.CheckCultures(ctx, alice, []string{"not-a-uuid"})
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	})
}
