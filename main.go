package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grocademy/course-service/internal/cache"
	"github.com/grocademy/course-service/internal/certificate"
	"github.com/grocademy/course-service/internal/config"
	"github.com/grocademy/course-service/internal/events"
	"github.com/grocademy/course-service/internal/handlers"
	"github.com/grocademy/course-service/internal/repositories/postgres"
	"github.com/grocademy/course-service/internal/services"
	"github.com/grocademy/course-service/internal/utils"
	"github.com/grocademy/course-service/internal/validator"
	"github.com/grocademy/course-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogger)
	logger := utils.NewSlogLogger(slogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", "error", err)
			redisClient = nil
		}
	}
	cacheManager := cache.NewCacheManager(redisClient, cfg.CatalogCacheTTL)

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogger)
		if err != nil {
			logger.Error("failed to initialize event publisher", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("no kafka brokers configured, events are logged only")
		publisher = events.NewMockEventPublisher(slogger)
	}
	defer publisher.Close()

	repoManager := postgres.NewRepositoryManager(db, cacheManager)
	defer repoManager.Close()

	renderer := certificate.NewImageRenderer(cfg.CertificateFontPath)
	serviceManager := services.NewServiceManager(
		repoManager.Repository(),
		validator.New(),
		logger,
		publisher,
		renderer,
		cfg,
	)

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	router := handlers.SetupRoutes(handlerManager, cfg, logger, repoManager, cacheManager)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
