// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/platform/postgres"
)

/*
TestRunInTx_Commit verifies that a successful callback commits.
*/
func TestRunInTx_Commit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO core.culture").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	manager := postgres.NewTxManager(mock)
	err = manager.RunInTx(context.Background(), func(ctx context.Context) error {
		assert.True(t, postgres.InTx(ctx))
		_, execErr := postgres.QuerierFromCtx(ctx, mock).Exec(ctx, "INSERT INTO core.culture (code) VALUES ($1)", "fr")
		return execErr
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestRunInTx_RollbackOnError verifies that the callback error is returned after rollback.
*/
func TestRunInTx_RollbackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	sentinel := errors.New("business logic error")

	mock.ExpectBegin()
	mock.ExpectRollback()

	manager := postgres.NewTxManager(mock)
	err = manager.RunInTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestRunInTx_Nested verifies that an inner call joins the outer transaction.
*/
func TestRunInTx_Nested(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	manager := postgres.NewTxManager(mock)
	err = manager.RunInTx(context.Background(), func(ctx context.Context) error {
		return manager.RunInTx(ctx, func(inner context.Context) error {
			assert.True(t, postgres.InTx(inner))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

/*
TestQuerierFromCtx_Pool verifies the pool is used outside a transaction.
*/
func TestQuerierFromCtx_Pool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	assert.False(t, postgres.InTx(context.Background()))
	assert.Equal(t, postgres.Querier(mock), postgres.QuerierFromCtx(context.Background(), mock))
}
