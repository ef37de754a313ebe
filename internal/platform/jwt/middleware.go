package jwtmw

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dwitter_backend/internal/feature/auth/domain/entity"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	// ContextUserID holds the authenticated user's ID (uint).
	ContextUserID = "userID"
	// ContextToken holds the raw bearer token (string).
	ContextToken = "token"
)

// UserFinder resolves a user ID to a stored user. Following Go
// convention, the interface is defined by the consumer (middleware)
// rather than the provider (adapters).
type UserFinder interface {
	// FindByID retrieves the user with the given ID.
	// It returns an error if no such user exists.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that restricts access to
// authenticated users. It extracts the bearer token, verifies it, and
// confirms that the embedded user ID still resolves to an existing
// user, so a valid token for a since-deleted account is rejected.
//
// Every failure mode responds 401 with the same generic message; the
// cause (missing header, bad signature, expiry, unknown user) is never
// distinguished for the client.
func AuthRequired(tokens Verifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorization header must carry a bearer token
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature and expiry (purely cryptographic)
		userID, err := tokens.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
			return
		}

		// 3. The user must still exist
		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Error"})
			return
		}

		// 4. Attach the request identity and continue
		c.Set(ContextUserID, userID)
		c.Set(ContextToken, tokenStr)
		c.Next()
	}
}
