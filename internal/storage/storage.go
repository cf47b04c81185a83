// Package storage persists small client-side key/value state such as the
// signed-in session. Backends write several keys atomically so readers
// never observe half of a session.
package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/uniattend/internal/config"
)

// ErrCorrupt is returned by Get when the backing document cannot be
// decoded. Deleting keys resets the document.
var ErrCorrupt = stderrors.New("storage: corrupt document")

// Store is a durable key-value store.
type Store interface {
	// Get returns the value of key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMany writes all pairs in one atomic step.
	SetMany(ctx context.Context, values map[string]string) error
	// Delete removes keys in one atomic step. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Close releases backend resources.
	Close() error
}

// Open builds the Store selected by cfg.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisStoreWithPrefix(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
