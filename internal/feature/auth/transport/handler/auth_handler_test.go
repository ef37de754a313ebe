package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dwitter_backend/internal/feature/auth/domain/entity"
	"dwitter_backend/internal/feature/auth/usecase"
	jwtmw "dwitter_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	SignupFunc func(ctx context.Context, name, username, email, password string) (string, error)
	LoginFunc  func(ctx context.Context, username, password string) (string, error)
	MeFunc     func(ctx context.Context, userID uint) (*entity.User, error)
}

// Signup is the mock implementation of the Signup method.
func (m *mockAuthUsecase) Signup(ctx context.Context, name, username, email, password string) (string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, name, username, email, password)
	}
	return "mock-token", nil // Default: success
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "", usecase.ErrInvalidCredentials // Default: failure
}

// Me is the mock implementation of the Me method.
func (m *mockAuthUsecase) Me(ctx context.Context, userID uint) (*entity.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return &entity.User{ID: userID, Username: "bob"}, nil // Default: success
}

func TestAuthHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := gin.H{
		"name":     "Bob Lee",
		"username": "bob",
		"email":    "bob@example.com",
		"password": "password123",
	}

	tests := []struct {
		name           string
		requestBody    gin.H
		mockSignupFunc func(ctx context.Context, name, username, email, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user registration",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, username, email, password string) (string, error) {
				return "signed-token", nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   gin.H{"token": "signed-token"},
		},
		{
			name:           "failure: invalid email address",
			requestBody:    gin.H{"name": "Bob Lee", "username": "bob", "email": "invalid-email", "password": "password123"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Field validation for 'Email' failed on the 'email' tag"},
		},
		{
			name:           "failure: short password",
			requestBody:    gin.H{"name": "Bob Lee", "username": "bob", "email": "bob@example.com", "password": "short"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Field validation for 'Password' failed on the 'min' tag"},
		},
		{
			name:           "failure: missing name",
			requestBody:    gin.H{"username": "bob", "email": "bob@example.com", "password": "password123"},
			mockSignupFunc: nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Field validation for 'Name' failed on the 'required' tag"},
		},
		{
			name:        "failure: duplicate username",
			requestBody: validBody,
			mockSignupFunc: func(ctx context.Context, name, username, email, password string) (string, error) {
				return "", usecase.ErrUsernameTaken
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   gin.H{"message": "bob already exists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{SignupFunc: tt.mockSignupFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/signup", handler.Signup)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)

			// Validation messages include Gin binding error details, so check partial match
			if tt.expectedStatus == http.StatusBadRequest {
				assert.Contains(t, responseBody["message"], tt.expectedBody["message"])
			} else {
				assert.Equal(t, tt.expectedBody, responseBody)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, username, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:        "success: user login",
			requestBody: gin.H{"username": "bob", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "signed-token", nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "signed-token"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"username": "bob"},
			mockLoginFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Field validation for 'Password' failed on the 'required' tag"},
		},
		{
			name:        "failure: bad credentials",
			requestBody: gin.H{"username": "bob", "password": "wrong"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"message": "Invalid user or password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockLoginFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/auth/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)

			if tt.expectedStatus == http.StatusBadRequest {
				assert.Contains(t, responseBody["message"], tt.expectedBody["message"])
			} else {
				assert.Equal(t, tt.expectedBody, responseBody)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns username and the request token", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			MeFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				assert.Equal(t, uint(7), userID)
				return &entity.User{ID: userID, Username: "bob"}, nil
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		// Simulate the auth gate having attached the request identity
		router.GET("/auth/me", func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(7))
			c.Set(jwtmw.ContextToken, "raw-token")
		}, handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"bob","token":"raw-token"}`, w.Body.String())
	})

	t.Run("user vanished after verification", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			MeFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return nil, usecase.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		router.GET("/auth/me", func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(7))
			c.Set(jwtmw.ContextToken, "raw-token")
		}, handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"User not found"}`, w.Body.String())
	})

	t.Run("unexpected usecase failure", func(t *testing.T) {
		mockUC := &mockAuthUsecase{
			MeFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
				return nil, errors.New("db down")
			},
		}
		handler := NewAuthHandler(mockUC)

		router := gin.New()
		router.GET("/auth/me", func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, uint(7))
			c.Set(jwtmw.ContextToken, "raw-token")
		}, handler.Me)

		req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
