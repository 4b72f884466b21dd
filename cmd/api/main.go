package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamevault/catalog-api/internal/api"
	"github.com/gamevault/catalog-api/internal/api/handler"
	"github.com/gamevault/catalog-api/internal/core/domain"
	"github.com/gamevault/catalog-api/internal/core/service"
	mongodb "github.com/gamevault/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gamevault/catalog-api/internal/infrastructure/db/redis"
	"github.com/gamevault/catalog-api/internal/pkg/config"
	"github.com/gamevault/catalog-api/pkg/logger"
)

// @title        GameVault catalog API
// @version      1.0
// @description  User accounts and a video-game catalog behind stateless JWT cookie authentication.
// @BasePath     /api/v1
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}
	gameRepo := mongodb.NewGameRepository(db)

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL())
	throttle := redisdb.NewLoginThrottle(rdb, 0, 0)
	authService := service.NewAuthService(userRepo, tokenService, throttle, log)
	gameService := service.NewGameService(gameRepo)

	// --- Bootstrap accounts ---
	if err := authService.Seed(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword, cfg.Seed.AdminEmail, domain.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("admin account seeding failed")
	}
	if err := authService.Seed(ctx, cfg.Seed.UserUsername, cfg.Seed.UserPassword, cfg.Seed.UserEmail, domain.RoleUser); err != nil {
		log.Fatal().Err(err).Msg("user account seeding failed")
	}

	// --- HTTP server ---
	e := api.NewServer(api.Dependencies{
		Auth:   authService,
		Games:  gameService,
		Tokens: tokenService,
		Cookie: handler.CookieSettings{
			Name:     cfg.Cookie.Name,
			Path:     cfg.Cookie.Path,
			HTTPOnly: cfg.Cookie.HTTPOnly,
			Secure:   cfg.Cookie.Secure,
			SameSite: cfg.Cookie.SameSiteMode(),
			TTL:      cfg.JWT.TTL(),
		},
		Readiness: handler.NewHealthDependenciesHandler(db, rdb),
	}, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
}
