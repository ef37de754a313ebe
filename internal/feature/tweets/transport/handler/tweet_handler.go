// Package handler provides the HTTP handlers for the tweets feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"dwitter_backend/internal/feature/tweets/domain/entity"
	"dwitter_backend/internal/feature/tweets/transport/http/dto"
	"dwitter_backend/internal/feature/tweets/usecase"
	jwtmw "dwitter_backend/internal/platform/jwt"
)

// tweetsEvent is the realtime channel name for created tweets.
const tweetsEvent = "tweets"

// TweetUsecase defines the usecase operations consumed by the handler.
// Following Go convention, the interface is defined by the consumer
// (handler) rather than the provider (usecase).
type TweetUsecase interface {
	// List returns all tweets, or only those of username when non-empty.
	List(ctx context.Context, username string) ([]entity.Tweet, error)
	// Get returns the tweet with the given ID.
	Get(ctx context.Context, id uint) (*entity.Tweet, error)
	// Create persists a new tweet owned by userID.
	Create(ctx context.Context, userID uint, text string) (*entity.Tweet, error)
	// Update replaces the text of an existing tweet owned by userID.
	Update(ctx context.Context, id, userID uint, text string) (*entity.Tweet, error)
	// Delete removes an existing tweet owned by userID.
	Delete(ctx context.Context, id, userID uint) error
}

// Notifier broadcasts events to realtime subscribers. Delivery is
// fire-and-forget: Publish must not block and its outcome never affects
// the HTTP response.
type Notifier interface {
	Publish(event string, payload any)
}

// TweetHandler handles HTTP requests for tweet CRUD operations.
type TweetHandler struct {
	tweets   TweetUsecase
	notifier Notifier
}

// NewTweetHandler creates a new TweetHandler instance.
func NewTweetHandler(tweets TweetUsecase, notifier Notifier) *TweetHandler {
	return &TweetHandler{
		tweets:   tweets,
		notifier: notifier,
	}
}

// bindTweetReq binds the request body and translates validation
// failures into the fixed text-length message.
func bindTweetReq(c *gin.Context) (dto.TweetReq, bool) {
	var req dto.TweetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "text should be at least 3 characters"})
			return req, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return req, false
	}
	return req, true
}

// List handles GET /tweets. With a username query parameter it returns
// only that user's tweets; an unknown username yields an empty list.
func (h *TweetHandler) List(c *gin.Context) {
	username := c.Query("username")

	tweets, err := h.tweets.List(c.Request.Context(), username)
	if err != nil {
		slog.Error("tweet list failed", "error", err, "username", username)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, tweets)
}

// Get handles GET /tweets/:id.
func (h *TweetHandler) Get(c *gin.Context) {
	idParam := c.Param("id")

	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		// Non-numeric ids cannot match any tweet
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet id(%s) not found", idParam)})
		return
	}

	tweet, err := h.tweets.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, usecase.ErrTweetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet id(%s) not found", idParam)})
			return
		}
		slog.Error("tweet get failed", "error", err, "tweet_id", id)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, tweet)
}

// Create handles POST /tweets. After the response is written, the
// created tweet is broadcast on the "tweets" channel; broadcast failure
// never affects the response.
func (h *TweetHandler) Create(c *gin.Context) {
	req, ok := bindTweetReq(c)
	if !ok {
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	tweet, err := h.tweets.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, usecase.ErrTextTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "text should be at least 3 characters"})
			return
		}
		slog.Error("tweet create failed", "error", err, "user_id", userID)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, tweet)
	h.notifier.Publish(tweetsEvent, tweet)
}

// Update handles PUT /tweets/:id. The existence check dominates the
// ownership check: a missing tweet is 404 regardless of the caller.
func (h *TweetHandler) Update(c *gin.Context) {
	idParam := c.Param("id")

	req, ok := bindTweetReq(c)
	if !ok {
		return
	}
	userID := c.GetUint(jwtmw.ContextUserID)

	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet not found: %s", idParam)})
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), uint(id), userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTweetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet not found: %s", idParam)})
		case errors.Is(err, usecase.ErrNotTweetOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, usecase.ErrTextTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"message": "text should be at least 3 characters"})
		default:
			slog.Error("tweet update failed", "error", err, "tweet_id", id, "user_id", userID)
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, tweet)
}

// Delete handles DELETE /tweets/:id with the same existence-then-
// ownership ordering as Update.
func (h *TweetHandler) Delete(c *gin.Context) {
	idParam := c.Param("id")
	userID := c.GetUint(jwtmw.ContextUserID)

	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet not found: %s", idParam)})
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), uint(id), userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrTweetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Tweet not found: %s", idParam)})
		case errors.Is(err, usecase.ErrNotTweetOwner):
			c.Status(http.StatusForbidden)
		default:
			slog.Error("tweet delete failed", "error", err, "tweet_id", id, "user_id", userID)
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
