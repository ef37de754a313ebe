// Package adapters provides the repository implementations for the tweets feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dwitter_backend/internal/feature/tweets/domain/entity"
	"dwitter_backend/internal/feature/tweets/usecase"
)

// tweetPostgres is the gorm-backed implementation of the
// TweetRepository interface.
type tweetPostgres struct {
	db *gorm.DB
}

// Compile-time check that tweetPostgres implements TweetRepository.
var _ usecase.TweetRepository = (*tweetPostgres)(nil)

// NewTweetPostgres creates a new tweetPostgres instance with the given
// gorm.DB connection.
func NewTweetPostgres(db *gorm.DB) *tweetPostgres {
	return &tweetPostgres{db: db}
}

// GetAll retrieves every tweet, newest first.
func (r *tweetPostgres) GetAll(ctx context.Context) ([]entity.Tweet, error) {
	tweets := make([]entity.Tweet, 0)
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// GetAllByUsername retrieves the tweets authored by the given username,
// newest first. An unknown username yields an empty slice.
func (r *tweetPostgres) GetAllByUsername(ctx context.Context, username string) ([]entity.Tweet, error) {
	tweets := make([]entity.Tweet, 0)
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, id DESC").
		Find(&tweets).Error; err != nil {
		return nil, err
	}
	return tweets, nil
}

// GetByID retrieves a tweet by ID.
// It returns usecase.ErrTweetNotFound when no such tweet exists.
func (r *tweetPostgres) GetByID(ctx context.Context, id uint) (*entity.Tweet, error) {
	var t entity.Tweet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTweetNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create adds a tweet to the database.
func (r *tweetPostgres) Create(ctx context.Context, t *entity.Tweet) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update saves changes to an existing tweet.
func (r *tweetPostgres) Update(ctx context.Context, t *entity.Tweet) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Remove deletes a tweet by ID. Deleting an already-removed tweet is
// not an error; the single DELETE is left to the database's atomicity.
func (r *tweetPostgres) Remove(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Tweet{}, id).Error
}
