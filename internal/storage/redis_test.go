package storage

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Integration test against a real server; skipped unless MENU_TEST_REDIS_ADDR is set.
func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("MENU_TEST_REDIS_ADDR")
	if addr == "" || testing.Short() {
		t.Skip("skipping redis integration test: MENU_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	require.NoError(t, rdb.Del(ctx,
		redisKeyPrefix+"menu.json", redisKeyPrefix+"other.json", redisKeyPrefix+"absent.json").Err())

	exerciseStore(t, NewRedisStore(rdb))
}
