// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dwitter_backend/internal/feature/auth/domain/entity"
	"dwitter_backend/internal/feature/auth/transport/http/dto"
	"dwitter_backend/internal/feature/auth/usecase"
	jwtmw "dwitter_backend/internal/platform/jwt"
)

// AuthUsecase defines the usecase operations consumed by the handler.
// Following Go convention, the interface is defined by the consumer
// (handler) rather than the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns a signed token.
	Signup(ctx context.Context, name, username, email, password string) (string, error)
	// Login authenticates a user and returns a signed token.
	Login(ctx context.Context, username, password string) (string, error)
	// Me returns the profile of the authenticated user.
	Me(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /auth/signup.
// - 400 on validation failure
// - 409 when the username is already taken
// - 201 with the signed token on success
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	token, err := h.auth.Signup(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrUsernameTaken) {
			slog.Warn("signup rejected", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("%s already exists", req.Username)})
			return
		}
		slog.Error("signup failed", "error", err, "username", req.Username)
		c.Status(http.StatusInternalServerError)
		return
	}
	slog.Info("user signup successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Login handles POST /auth/login.
// - 400 on validation failure
// - 401 with a generic message on bad credentials
// - 200 with the signed token on success
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid user or password"})
			return
		}
		slog.Error("login failed", "error", err, "username", req.Username)
		c.Status(http.StatusInternalServerError)
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Me handles GET /auth/me. It echoes the authenticated user's username
// together with the bearer token used for the request.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	token := c.GetString(jwtmw.ContextToken)

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", userID)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": user.Username, "token": token})
}
