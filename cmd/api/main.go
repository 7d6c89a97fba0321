// Package main is the entry point for the Catering Ops API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/catering-ops/backend/config"
	"github.com/catering-ops/backend/internal/infra/db"
	"github.com/catering-ops/backend/internal/infra/dependency"
	"github.com/catering-ops/backend/internal/integration/entrypoint/dto"
	"github.com/catering-ops/backend/internal/integration/messaging"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting Catering Ops API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"order_source", cfg.OrderSource.Kind,
	)

	if err := dto.RegisterValidators(); err != nil {
		slog.Error("Failed to register request validators", "error", err)
		os.Exit(1)
	}

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	deps := dependency.Dependencies{DB: database.DB()}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = db.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			slog.Error("Redis connection failed", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		deps.Redis = redisClient
	}

	if cfg.NATS.URL != "" {
		publisher, err := messaging.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			slog.Warn("NATS connection failed, order events will not be published", "error", err)
		} else {
			defer func() {
				if err := publisher.Close(); err != nil {
					slog.Error("Failed to drain NATS connection", "error", err)
				}
			}()
			deps.Publisher = publisher
		}
	}

	injector, err := dependency.NewInjector(cfg, deps)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if injector.Worker != nil {
		go injector.Worker.Start(workerCtx)
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
