package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"lingua-link/internal/config"
	"lingua-link/internal/db"
	"lingua-link/internal/directory"
	apihttp "lingua-link/internal/http"
	"lingua-link/internal/repository"
	"lingua-link/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	friendRepo := repository.NewPgFriendRepository(pool)

	dirClient := directory.NewDisabledClient("directory client not configured")
	if cfg.DirectoryURL != "" {
		client, err := directory.NewHTTPClient(cfg.DirectoryURL, cfg.DirectoryKey, cfg.DirectorySecret)
		if err != nil {
			logger.Warn("directory client init failed", zap.Error(err))
		} else {
			dirClient = client
		}
	}

	var loginLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
		}
		cancel()
	}
	if loginLimiter == nil {
		loginLimiter = service.NewLoginRateLimiter(10*time.Minute, 10)
	}

	tokenServ := service.NewTokenService(cfg.JWTSecret, sessionTTL, cfg.IsProduction())
	authServ := service.NewAuthService(logger, userRepo, dirClient, loginLimiter)
	friendServ := service.NewFriendService(logger, userRepo, friendRepo)
	recommendServ := service.NewRecommendService(userRepo, friendRepo)

	authHandler := apihttp.NewAuthHandler(logger, authServ, tokenServ)
	userHandler := apihttp.NewUserHandler(logger, friendServ, recommendServ)
	router := apihttp.NewRouter(logger, tokenServ, userRepo, authHandler, userHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
