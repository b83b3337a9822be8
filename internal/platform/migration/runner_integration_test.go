// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package migration_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/platform/migration"
	"github.com/taibuivan/voxmundi/internal/platform/postgres/testhelper"
)

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}

/*
TestRunDownThenUp verifies every down file reverses its up file cleanly.
*/
func TestRunDownThenUp(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	dsn := pool.Config().ConnString()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tableExists := func(name string) bool {
		var found *string
		require.NoError(t, pool.QueryRow(context.Background(), `SELECT to_regclass($1)::text`, name).Scan(&found))
		return found != nil
	}

	require.True(t, tableExists("library.record"))

	require.NoError(t, migration.RunDown(dsn, migrationsDir(), 1, logger))
	assert.False(t, tableExists("library.record"))
	assert.True(t, tableExists("catalog.universalitem"))

	require.NoError(t, migration.RunUp(dsn, migrationsDir(), logger))
	assert.True(t, tableExists("library.record"))

	// A second run is a no-op.
	require.NoError(t, migration.RunUp(dsn, migrationsDir(), logger))
}
