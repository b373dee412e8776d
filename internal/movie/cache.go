package movie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("catalog cache miss")

const catalogListKey = "catalog:movies"

// Cache is a read-through Redis cache for the movie list. The catalog only
// changes out of band, so a short TTL bounds staleness without any
// invalidation protocol.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetList returns the cached movie list, or ErrCacheMiss.
func (c *Cache) GetList(ctx context.Context) ([]*Movie, error) {
	data, err := c.client.Get(ctx, catalogListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var movies []*Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, ErrCacheMiss
	}

	return movies, nil
}

// SetList stores the movie list with the configured TTL.
func (c *Cache) SetList(ctx context.Context, movies []*Movie) error {
	data, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to encode catalog for cache: %w", err)
	}

	if err := c.client.Set(ctx, catalogListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}

	return nil
}
