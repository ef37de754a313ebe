// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dwitter_backend/internal/feature/tweets/domain/entity"
	"dwitter_backend/internal/feature/tweets/usecase"
)

// CachingTweetRepository decorates a TweetRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching
// without modifying the underlying repository. All cache operations are
// best effort: a Redis failure falls back to the inner repository.
type CachingTweetRepository struct {
	inner     usecase.TweetRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that the decorator satisfies the same interface.
var _ usecase.TweetRepository = (*CachingTweetRepository)(nil)

// NewCachingTweetRepository decorates a TweetRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "tweets".
func NewCachingTweetRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TweetRepository, namespace string) *CachingTweetRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "tweets"
	}
	return &CachingTweetRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetAll retrieves all tweets, checking cache first then falling back
// to the database.
func (c *CachingTweetRepository) GetAll(ctx context.Context) ([]entity.Tweet, error) {
	return c.cachedList(ctx, c.namespace+":all", func() ([]entity.Tweet, error) {
		return c.inner.GetAll(ctx)
	})
}

// GetAllByUsername retrieves a user's tweets, checking cache first then
// falling back to the database.
func (c *CachingTweetRepository) GetAllByUsername(ctx context.Context, username string) ([]entity.Tweet, error) {
	key := fmt.Sprintf("%s:user:%s", c.namespace, safe(username))
	return c.cachedList(ctx, key, func() ([]entity.Tweet, error) {
		return c.inner.GetAllByUsername(ctx, username)
	})
}

// GetByID retrieves a tweet by ID, checking cache first then falling
// back to the database. Not-found results are not cached.
func (c *CachingTweetRepository) GetByID(ctx context.Context, id uint) (*entity.Tweet, error) {
	if c.rdb == nil {
		return c.inner.GetByID(ctx, id)
	}

	key := fmt.Sprintf("%s:id:%d", c.namespace, id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Tweet
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create persists a tweet and invalidates the cache namespace.
func (c *CachingTweetRepository) Create(ctx context.Context, t *entity.Tweet) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Update persists tweet changes and invalidates the cache namespace.
func (c *CachingTweetRepository) Update(ctx context.Context, t *entity.Tweet) error {
	if err := c.inner.Update(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Remove deletes a tweet and invalidates the cache namespace.
func (c *CachingTweetRepository) Remove(ctx context.Context, id uint) error {
	if err := c.inner.Remove(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// cachedList serves a tweet list from cache when possible, populating
// the cache on a miss.
func (c *CachingTweetRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Tweet, error)) ([]entity.Tweet, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Tweet
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate removes every cache entry in the namespace. Mutations are
// rare compared to reads, so whole-namespace invalidation keeps the
// key bookkeeping trivial.
func (c *CachingTweetRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail if cache deletion fails
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingTweetRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
