// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/voxmundi/internal/platform/ctxutil"
	"github.com/taibuivan/voxmundi/internal/platform/sec"
)

/*
TestRequestScopedValues verifies each value round-trips and that an empty
context yields the documented fallbacks.
*/
func TestRequestScopedValues(t *testing.T) {
	empty := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(empty))
	assert.Same(t, slog.Default(), ctxutil.GetLogger(empty))
	assert.Nil(t, ctxutil.GetAuthUser(empty))
	assert.Empty(t, ctxutil.GetUserID(empty))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	claims := &sec.AuthClaims{UserID: "hana", Role: string(sec.RoleCurator)}

	ctx := ctxutil.WithRequestID(empty, "req-42")
	ctx = ctxutil.WithLogger(ctx, logger)
	ctx = ctxutil.WithAuthUser(ctx, claims)

	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
	assert.Same(t, claims, ctxutil.GetAuthUser(ctx))
	assert.Equal(t, claims.UserID, ctxutil.GetUserID(ctx))
}

/*
TestGetLogger_NilLogger verifies a stored nil logger still falls back to the default.
*/
func TestGetLogger_NilLogger(t *testing.T) {
	ctx := ctxutil.WithLogger(context.Background(), nil)
	assert.Same(t, slog.Default(), ctxutil.GetLogger(ctx))
}
