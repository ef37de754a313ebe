// Package jwtmw provides JWT token issuing, verification and the
// authentication middleware.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Sentinel errors returned by token verification. The middleware maps
// both to the same 401 response, so expiry is never surfaced to clients.
var (
	// ErrTokenInvalid indicates a malformed token or a signature that
	// does not verify.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// IssueToken creates a signed JWT token for the given user.
	IssueToken(userID uint) (string, error)
}

// Verifier defines the interface for JWT token verification.
// Verification is purely cryptographic and never consults storage.
type Verifier interface {
	// VerifyToken checks the token signature and expiry and returns the
	// embedded user ID.
	VerifyToken(token string) (uint, error)
}

// TokenService implements both Generator and Verifier using HS256.
type TokenService struct {
	secret     []byte
	expiration time.Duration
}

var (
	_ Generator = (*TokenService)(nil)
	_ Verifier  = (*TokenService)(nil)
)

// NewTokenService creates a TokenService with the provided secret and
// token lifetime.
func NewTokenService(secret string, expiration time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// IssueToken creates a signed JWT token with standard claims.
func (s *TokenService) IssueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and verifies a signed token and returns the user ID
// from the "sub" claim.
func (s *TokenService) VerifyToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}
	if !token.Valid {
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok || sub <= 0 {
		return 0, ErrTokenInvalid
	}

	return uint(sub), nil
}
