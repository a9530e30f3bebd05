package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"framecraft/internal/pkg/logger"
)

const (
	cacheKeyPrefix = "framecraft:search:"

	// DefaultCacheTTL is how long a search page stays cached.
	DefaultCacheTTL = 10 * time.Minute
)

// Cache stores encoded search results by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// RedisCache is a Cache backed by Redis (or Valkey).
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Discard()
	}
	return &RedisCache{client: client, ttl: ttl, log: log.WithComponent("search-cache")}
}

// Get returns the cached value. Misses and Redis failures both report false.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("search cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores value with the configured TTL. Failures are logged only.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, cacheKeyPrefix+key, value, c.ttl).Err(); err != nil {
		c.log.Warn("search cache set error", "key", key, "error", err)
	}
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// CachedSearcher serves repeated searches from a Cache. Errors are never
// cached, and empty result sets are not either so a retry hits the provider.
type CachedSearcher struct {
	next  Searcher
	cache Cache
	log   *logger.Logger
}

func NewCachedSearcher(next Searcher, cache Cache, log *logger.Logger) *CachedSearcher {
	if log == nil {
		log = logger.Discard()
	}
	return &CachedSearcher{next: next, cache: cache, log: log.WithComponent("search")}
}

func (s *CachedSearcher) Search(ctx context.Context, q Query) (*Result, error) {
	key := cacheKey(q)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached Result
		if err := json.Unmarshal(raw, &cached); err == nil {
			s.log.FromContext(ctx).Debug("search cache hit", "query", q.Text)
			return &cached, nil
		}
	}

	res, err := s.next.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if res.TotalResults > 0 && len(res.Photos) > 0 {
		if raw, err := json.Marshal(res); err == nil {
			s.cache.Set(ctx, key, raw)
		}
	}
	return res, nil
}

// cacheKey normalizes the query text so "Forest" and " forest" share a key.
func cacheKey(q Query) string {
	text := strings.Join(strings.Fields(strings.ToLower(q.Text)), " ")
	return fmt.Sprintf("%s:%d:%d", text, q.PerPage, q.Page)
}
