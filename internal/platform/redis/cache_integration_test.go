// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	redisstore "github.com/taibuivan/voxmundi/internal/platform/redis"
)

type author struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

/*
TestCache round-trips JSON values through a disposable Redis and honours TTLs.
*/
func TestCache(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := redisstore.NewClient(ctx, fmt.Sprintf("redis://%s:%s/0", host, port.Port()), 4, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cache := redisstore.NewCache(client, "test:")

	var missing author
	hit, err := cache.Get(ctx, "OL23919A", &missing)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, "OL23919A", author{Key: "OL23919A", Name: "J. K. Rowling"}, time.Minute))

	var cached author
	hit, err = cache.Get(ctx, "OL23919A", &cached)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "J. K. Rowling", cached.Name)

	ttl, err := client.TTL(ctx, "test:OL23919A").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	assert.NoError(t, redisstore.Ping(ctx, client))
}
