package usecase

import (
	"context"
	"fmt"
	"unicode/utf8"

	authentity "dwitter_backend/internal/feature/auth/domain/entity"
	"dwitter_backend/internal/feature/tweets/domain/entity"
)

// minTextLength is the minimum tweet body length in characters.
const minTextLength = 3

// TweetRepository abstracts the persistence layer for tweet entities.
// Following Go convention, the interface is defined by the consumer
// (usecase) rather than the provider (adapters).
type TweetRepository interface {
	// GetAll retrieves every tweet, newest first.
	GetAll(ctx context.Context) ([]entity.Tweet, error)

	// GetAllByUsername retrieves the tweets authored by the given
	// username, newest first. An unknown username yields an empty slice,
	// not an error.
	GetAllByUsername(ctx context.Context, username string) ([]entity.Tweet, error)

	// GetByID retrieves the tweet with the given ID.
	// It returns ErrTweetNotFound if no such tweet exists.
	GetByID(ctx context.Context, id uint) (*entity.Tweet, error)

	// Create persists a new tweet.
	Create(ctx context.Context, tweet *entity.Tweet) error

	// Update persists changes to an existing tweet.
	Update(ctx context.Context, tweet *entity.Tweet) error

	// Remove deletes the tweet with the given ID.
	Remove(ctx context.Context, id uint) error
}

// UserFinder resolves the authoring user at tweet creation time.
type UserFinder interface {
	// FindByID retrieves the user with the given ID.
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// TweetUsecase implements the tweet CRUD business logic, including the
// ownership rule: only the creator may update or delete a tweet.
type TweetUsecase struct {
	tweets TweetRepository
	users  UserFinder
}

// NewTweetUsecase creates a new TweetUsecase instance.
func NewTweetUsecase(tweets TweetRepository, users UserFinder) *TweetUsecase {
	return &TweetUsecase{
		tweets: tweets,
		users:  users,
	}
}

// validateText checks that a tweet body meets the minimum length.
func validateText(text string) error {
	if utf8.RuneCountInString(text) < minTextLength {
		return ErrTextTooShort
	}
	return nil
}

// List returns all tweets, or only those of the given username when it
// is non-empty. A username with no tweets yields an empty list.
func (u *TweetUsecase) List(ctx context.Context, username string) ([]entity.Tweet, error) {
	if username != "" {
		return u.tweets.GetAllByUsername(ctx, username)
	}
	return u.tweets.GetAll(ctx)
}

// Get returns the tweet with the given ID.
func (u *TweetUsecase) Get(ctx context.Context, id uint) (*entity.Tweet, error) {
	return u.tweets.GetByID(ctx, id)
}

// Create persists a new tweet owned by userID. The author's name and
// username are copied onto the tweet at creation time.
func (u *TweetUsecase) Create(ctx context.Context, userID uint, text string) (*entity.Tweet, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load author %d: %w", userID, err)
	}

	tweet := &entity.Tweet{
		Text:     text,
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
	if err := u.tweets.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Update replaces the text of an existing tweet. The existence check
// runs before the ownership check, so a missing tweet is always
// reported as ErrTweetNotFound regardless of the caller.
func (u *TweetUsecase) Update(ctx context.Context, id, userID uint, text string) (*entity.Tweet, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	tweet, err := u.tweets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tweet.UserID != userID {
		return nil, ErrNotTweetOwner
	}

	tweet.Text = text
	if err := u.tweets.Update(ctx, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// Delete removes an existing tweet, applying the same existence-then-
// ownership ordering as Update.
func (u *TweetUsecase) Delete(ctx context.Context, id, userID uint) error {
	tweet, err := u.tweets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tweet.UserID != userID {
		return ErrNotTweetOwner
	}
	return u.tweets.Remove(ctx, id)
}
