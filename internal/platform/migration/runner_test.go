// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestToPgx5DSN verifies scheme rewriting for golang-migrate.
*/
func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"postgres", "postgres://u:p@localhost:5432/db", "pgx5://u:p@localhost:5432/db"},
		{"postgresql", "postgresql://u:p@localhost/db?sslmode=disable", "pgx5://u:p@localhost/db?sslmode=disable"},
		{"already_pgx5", "pgx5://u@localhost/db", "pgx5://u@localhost/db"},
		{"key_value", "host=localhost dbname=db", "host=localhost dbname=db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toPgx5DSN(tt.in))
		})
	}
}

/*
TestRunDown_RejectsNonPositiveSteps verifies the guard fires before any connection is made.
*/
func TestRunDown_RejectsNonPositiveSteps(t *testing.T) {
	err := RunDown("postgres://nobody@127.0.0.1:1/none", "/nonexistent", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "steps must be positive")
}
