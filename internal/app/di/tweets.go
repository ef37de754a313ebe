// Package di wires implementation choices that depend on the runtime
// environment.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	tweetadapters "dwitter_backend/internal/feature/tweets/adapters"
	"dwitter_backend/internal/feature/tweets/usecase"
	"dwitter_backend/internal/platform/cache"
)

// NewTweetRepository creates a TweetRepository implementation.
// If Redis is available, the Postgres repository is wrapped with a
// read-through cache. Otherwise the plain repository is used.
func NewTweetRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.TweetRepository {
	repo := tweetadapters.NewTweetPostgres(db)
	if rdb != nil {
		return cache.NewCachingTweetRepository(rdb, ttl, repo, "tweets")
	}
	return repo
}
