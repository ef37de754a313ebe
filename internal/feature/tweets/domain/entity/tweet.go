// Package entity defines the domain entities for the tweets feature.
package entity

import "time"

// Tweet represents a short text post authored by a user.
// The author's Name and Username are copied from the user record at
// creation time so that lists render without a join; UserID never
// changes after creation.
type Tweet struct {
	// ID is the unique identifier for the tweet.
	ID uint `gorm:"primaryKey" json:"id"`

	// Text is the tweet body. It is at least 3 characters long.
	Text string `gorm:"size:280;not null" json:"text"`

	// UserID is the ID of the authoring user. Only this user may
	// update or delete the tweet.
	UserID uint `gorm:"index;not null" json:"userId"`

	// Username is the author's handle at creation time.
	Username string `gorm:"index;size:45;not null" json:"username"`

	// Name is the author's display name at creation time.
	Name string `gorm:"size:255;not null" json:"name"`

	// CreatedAt is the timestamp when the tweet was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the tweet was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}
