// Package router assembles the gin engine and its routes.
package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	authhandler "dwitter_backend/internal/feature/auth/transport/handler"
	tweethandler "dwitter_backend/internal/feature/tweets/transport/handler"
	"dwitter_backend/internal/platform/http/handler"
	"dwitter_backend/internal/platform/http/middlewares"
	jwtmw "dwitter_backend/internal/platform/jwt"
	"dwitter_backend/internal/platform/realtime"
)

// NewRouter builds the gin engine with all middleware and routes wired.
// Tweet routes and /auth/me sit behind the authentication gate; signup,
// login and the health check are public.
func NewRouter(
	authH *authhandler.AuthHandler,
	tweetH *tweethandler.TweetHandler,
	hub *realtime.Hub,
	tokens jwtmw.Verifier,
	users jwtmw.UserFinder,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middlewares.RequestID(),
		middlewares.RequestLogger(),
		middlewares.SecurityHeaders(),
		middlewares.CORSMiddleware(allowedOrigins()),
		gin.Recovery(),
	)

	r.GET("/healthz", handler.Health)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", authH.Login)
		auth.GET("/me", jwtmw.AuthRequired(tokens, users), authH.Me)
	}

	tweets := r.Group("/tweets")
	tweets.Use(jwtmw.AuthRequired(tokens, users))
	{
		tweets.GET("", tweetH.List)
		tweets.GET("/:id", tweetH.Get)
		tweets.POST("", tweetH.Create)
		tweets.PUT("/:id", tweetH.Update)
		tweets.DELETE("/:id", tweetH.Delete)
	}

	// Realtime subscribers; the handler runs its own auth gate because
	// browser websocket clients pass the token as a query parameter.
	r.GET("/stream", realtime.ServeWS(hub, tokens, users))

	r.NoRoute(func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	return r
}

// allowedOrigins reads the CORS allow-list from the environment.
func allowedOrigins() []string {
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000"}
}
