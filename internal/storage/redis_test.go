package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis connects to UNIATTEND_TEST_REDIS_ADDR. Tests are skipped
// when it is unset or unreachable.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("UNIATTEND_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Redis not available for testing (set UNIATTEND_TEST_REDIS_ADDR)")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore(t *testing.T) {
	client := setupTestRedis(t)

	runStoreContract(t, func(t *testing.T) Store {
		// A unique prefix per subtest keeps runs independent without FLUSHDB.
		return NewRedisStoreWithPrefix(client, "uniattend-test:"+uuid.NewString()+":")
	})
}

func TestRedisStorePrefix(t *testing.T) {
	client := setupTestRedis(t)
	ctx := context.Background()
	prefix := "uniattend-test:" + uuid.NewString() + ":"
	s := NewRedisStoreWithPrefix(client, prefix)

	require.NoError(t, s.SetMany(ctx, map[string]string{"userId": "7"}))
	t.Cleanup(func() { _ = s.Delete(ctx, "userId") })

	v, err := client.Get(ctx, prefix+"userId").Result()
	require.NoError(t, err)
	assert.Equal(t, "7", v)
}
