// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voxmundi/internal/platform/apperr"
	"github.com/taibuivan/voxmundi/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into application errors.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusNotFound},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "period_year_order"}, http.StatusBadRequest},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantStatus, ae.HTTPStatus)
		})
	}
}

/*
TestWrap_Passthrough verifies nil, cancellation and existing app errors.
*/
func TestWrap_Passthrough(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))

	err := dberr.Wrap(context.Canceled, "list_records")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, apperr.IsAppError(err))

	forbidden := apperr.Forbidden("not yours")
	assert.Same(t, forbidden, dberr.Wrap(forbidden, "update_record"))
}

/*
TestWrapResource names the missing resource.
*/
func TestWrapResource(t *testing.T) {
	ae := apperr.As(dberr.WrapResource(pgx.ErrNoRows, "get_culture", "Culture"))
	require.NotNil(t, ae)
	assert.Equal(t, "Culture not found", ae.Message)

	assert.True(t, dberr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, dberr.IsUniqueViolation(errors.New("x")))
}
