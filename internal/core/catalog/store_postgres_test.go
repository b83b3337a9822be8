// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/core/catalog"
)

var itemColumns = []string{"id", "externalid", "itemtype", "title", "creatorstring", "createdat", "updatedat"}

/*
TestPostgresRepository_GetOrCreateItem verifies the upsert statement and the
created flag derived from xmax.
*/
func TestPostgresRepository_GetOrCreateItem(t *testing.T) {
	tests := []struct {
		name    string
		created bool
	}{
		{"inserted", true},
		{"existing", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			now := time.Now()
			mock.ExpectQuery(`INSERT INTO catalog.universalitem .* ON CONFLICT \(externalid, itemtype\) DO UPDATE SET updatedat = NOW\(\)`).
				WithArgs("new-id", "550", catalog.ItemFilm, "Fight Club", "David Fincher").
				WillReturnRows(pgxmock.NewRows(append(itemColumns, "created")).
					AddRow("item-1", "550", catalog.ItemFilm, "Fight Club", "David Fincher", now, now, tt.created))

			repo := catalog.NewPostgresRepository(mock)
			item, created, err := repo.GetOrCreateItem(context.Background(), "new-id", "550", catalog.ItemFilm, catalog.ItemDefaults{
				Title:         "Fight Club",
				CreatorString: "David Fincher",
			})

			require.NoError(t, err)
			assert.Equal(t, "item-1", item.ID)
			assert.Equal(t, tt.created, created)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

/*
TestPostgresRepository_Exists verifies the existence lookup.
*/
func TestPostgresRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("OL45804W", catalog.ItemBook).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := catalog.NewPostgresRepository(mock)
	exists, err := repo.Exists(context.Background(), "OL45804W", catalog.ItemBook)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestPostgresRepository_ListItems verifies the filtered page and window total.
*/
func TestPostgresRepository_ListItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .*COUNT\(\*\) OVER\(\) AS total_count FROM catalog.universalitem WHERE itemtype = \$1 AND title ILIKE \$2`).
		WithArgs(catalog.ItemBook, "%dune%").
		WillReturnRows(pgxmock.NewRows(append(itemColumns, "total_count")).
			AddRow("item-1", "OL1W", catalog.ItemBook, "Dune", "Frank Herbert", now, now, 3))

	repo := catalog.NewPostgresRepository(mock)
	items, total, err := repo.ListItems(context.Background(), catalog.Filter{Type: catalog.ItemBook, Query: "dune"}, 20, 0)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
