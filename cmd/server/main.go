// Package main wires and runs the notes service HTTP server: configuration
// from the environment, MongoDB and Redis connections, index creation, the
// activity dispatcher, and graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/speernotes/notes-system/internal/api"
	"github.com/speernotes/notes-system/internal/core/service"
	"github.com/speernotes/notes-system/internal/infrastructure/config"
	mongodb "github.com/speernotes/notes-system/internal/infrastructure/db/mongo"
	redisdb "github.com/speernotes/notes-system/internal/infrastructure/db/redis"
	"github.com/speernotes/notes-system/internal/infrastructure/queue"
	"github.com/speernotes/notes-system/internal/ratelimit"
	"github.com/speernotes/notes-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	if err := noteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create note indexes")
	}

	// --- Activity pipeline ---
	dedup := redisdb.NewDedupChecker(rdb)
	activitySvc := service.NewActivityService(activityRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activitySvc, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, log)
	resolver := service.NewPrincipalResolver(tokens, userRepo)
	notesSvc := service.NewNotesService(noteRepo, userRepo, service.NewAccessGuard(), dispatcher, log)

	// --- Rate limiter ---
	limiter := ratelimit.New(ratelimit.Config{
		Enabled:       cfg.RateLimit.Enabled,
		MaxRequests:   cfg.RateLimit.MaxRequests,
		Window:        cfg.RateLimit.Window,
		ThrottleDelay: cfg.RateLimit.ThrottleDelay,
	})
	go limiter.Run(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		AuthService:  authSvc,
		NotesService: notesSvc,
		Resolver:     resolver,
		Limiter:      limiter,
		Mongo:        db,
		Redis:        rdb,
		Logger:       log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
