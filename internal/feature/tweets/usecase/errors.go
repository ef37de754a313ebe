// Package usecase implements the business logic for the tweets feature.
package usecase

import "errors"

var (
	// ErrTweetNotFound is returned when a tweet cannot be found by ID.
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrNotTweetOwner is returned when a user attempts to mutate a
	// tweet created by someone else.
	ErrNotTweetOwner = errors.New("not the tweet owner")

	// ErrTextTooShort is returned when a tweet body is shorter than the
	// minimum length.
	ErrTextTooShort = errors.New("text should be at least 3 characters")
)
