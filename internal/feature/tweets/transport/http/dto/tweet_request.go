// Package dto defines data transfer objects for the tweets feature's HTTP transport layer.
package dto

// TweetReq represents the request body for creating or updating a tweet.
// The body must be at least 3 characters.
type TweetReq struct {
	Text string `json:"text" binding:"required,min=3"`
}
