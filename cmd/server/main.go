package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/rjoohappeh/forum-backend/internal/adapters/handler/http"
	"github.com/rjoohappeh/forum-backend/internal/adapters/hash"
	"github.com/rjoohappeh/forum-backend/internal/adapters/metrics"
	"github.com/rjoohappeh/forum-backend/internal/adapters/repository/postgres"
	"github.com/rjoohappeh/forum-backend/internal/adapters/token"
	"github.com/rjoohappeh/forum-backend/internal/config"
	"github.com/rjoohappeh/forum-backend/internal/core/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)

	hasher := hash.NewBcryptHasher(cfg.BcryptCost)
	issuer := token.NewJWTIssuer(
		[]byte(cfg.AccessTokenSecret),
		[]byte(cfg.RefreshTokenSecret),
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	collector := metrics.NewCollector()

	authService := services.NewAuthService(userRepo, hasher, issuer)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo)

	handler := http.NewHandler(http.RouterDeps{
		AuthHandler: http.NewAuthHandler(logger, authService, collector),
		UserHandler: http.NewUserHandler(userService),
		PostHandler: http.NewPostHandler(postService),
		TokenIssuer: issuer,
		Metrics:     collector,
	})

	server := &stdhttp.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
