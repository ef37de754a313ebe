package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"dwitter_backend/internal/app/di"
	"dwitter_backend/internal/app/router"
	authadapters "dwitter_backend/internal/feature/auth/adapters"
	authhandler "dwitter_backend/internal/feature/auth/transport/handler"
	authusecase "dwitter_backend/internal/feature/auth/usecase"
	tweethandler "dwitter_backend/internal/feature/tweets/transport/handler"
	tweetusecase "dwitter_backend/internal/feature/tweets/usecase"
	"dwitter_backend/internal/platform/db"
	jwtmw "dwitter_backend/internal/platform/jwt"
	"dwitter_backend/internal/platform/realtime"
	infraredis "dwitter_backend/internal/platform/redis"
)

// defaultTokenLifetime applies when TOKEN_EXPIRES_IN is unset.
const defaultTokenLifetime = 48 * time.Hour

func main() {
	// DB
	gormDB := db.OpenDB()

	// Redis (optional: the tweet repository runs uncached without it)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Token service
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokens := jwtmw.NewTokenService(secret, tokenLifetime())

	// Repositories
	userRepo := authadapters.NewUserPostgres(gormDB)
	tweetRepo := di.NewTweetRepository(rdb, gormDB, time.Minute)

	// Realtime hub
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Close()

	// Usecases
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	tweetUC := tweetusecase.NewTweetUsecase(tweetRepo, userRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	tweetH := tweethandler.NewTweetHandler(tweetUC, hub)

	r := router.NewRouter(authH, tweetH, hub, tokens, userRepo)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

// tokenLifetime reads TOKEN_EXPIRES_IN (a Go duration string) from the
// environment.
func tokenLifetime() time.Duration {
	v := os.Getenv("TOKEN_EXPIRES_IN")
	if v == "" {
		return defaultTokenLifetime
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid TOKEN_EXPIRES_IN %q, using default: %v", v, defaultTokenLifetime)
		return defaultTokenLifetime
	}
	return d
}
