//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/rivalry/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisCache(t *testing.T) {
	ctx := context.Background()

	container, err := tcredis.Run(ctx,
		"redis:7.4-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	c, err := NewRedisCache(model.RedisConfig{Addr: host + ":" + port.Port(), Prefix: "test:"}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok := c.Get(CategoriesKey())
	assert.False(t, ok)

	require.NoError(t, c.Set(CategoriesKey(), []byte("[]"), 0))
	require.NoError(t, c.Set(StatsKey(1), []byte("[]"), time.Minute))

	got, ok := c.Get(CategoriesKey())
	require.True(t, ok)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, c.Delete(StatsKey(1)))
	_, ok = c.Get(StatsKey(1))
	assert.False(t, ok)

	require.NoError(t, c.Clear())
	_, ok = c.Get(CategoriesKey())
	assert.False(t, ok)
}
