// Package cache holds the Redis read-through cache for book detail responses.
// Entries are invalidated on every book or review mutation, so a cached
// aggregate is at most one invalidation window stale.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the key is absent from the cache.
var ErrMiss = errors.New("cache miss")

type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache connects to Redis. The returned cache is optional
// infrastructure: callers may pass a nil *BookCache and every operation
// degrades to a no-op miss.
func NewBookCache(redisURL, password string, ttl time.Duration) (*BookCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BookCache{client: rdb, ttl: ttl}, nil
}

func bookKey(bookID int64) string {
	return fmt.Sprintf("book:%d", bookID)
}

// GetBook loads a cached book response into dest. Returns ErrMiss when absent.
func (c *BookCache) GetBook(ctx context.Context, bookID int64, dest any) error {
	if c == nil || c.client == nil {
		return ErrMiss
	}
	payload, err := c.client.Get(ctx, bookKey(bookID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

// SetBook stores a book response under the book's key with the configured TTL.
func (c *BookCache) SetBook(ctx context.Context, bookID int64, value any) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookKey(bookID), payload, c.ttl).Err()
}

// InvalidateBook drops the cached entry for a book. Called on every book or
// review mutation touching the aggregate.
func (c *BookCache) InvalidateBook(ctx context.Context, bookID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, bookKey(bookID)).Err()
}

// Close releases the Redis connection.
func (c *BookCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
