package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menu-interativo/back-end/internal/auth"
	"github.com/menu-interativo/back-end/internal/cache"
	"github.com/menu-interativo/back-end/internal/config"
	"github.com/menu-interativo/back-end/internal/database"
	"github.com/menu-interativo/back-end/internal/events"
	"github.com/menu-interativo/back-end/internal/handler"
	"github.com/menu-interativo/back-end/internal/repository"
	"github.com/menu-interativo/back-end/internal/router"
	"github.com/menu-interativo/back-end/internal/service"
	"github.com/menu-interativo/back-end/internal/storage"

	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Str("env", cfg.Env).Msg("starting menu API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
		logger.Info().Msg("database schema ensured")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	tableRepo := repository.NewTableRepository(pool, logger)
	dishRepo := repository.NewDishRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	billRepo := repository.NewBillRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	reportRepo := repository.NewReportRepository(pool, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authorizer := auth.NewAuthorizer(tokens, userRepo, logger)

	// Initialize image storage with S3 and local fallback
	fileStore := storage.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.PublicBaseURL, logger)
	var s3Store storage.ImageStore
	s3Enabled := cfg.S3.Enabled
	if s3Enabled {
		s3Store, err = storage.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, cfg.S3.PublicBaseURL, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 store, falling back to local file system only")
			s3Enabled = false
		}
	} else {
		logger.Info().Str("dir", cfg.Uploads.Dir).Msg("using local file system for uploads (S3 disabled)")
	}
	images := storage.NewFallbackStore(s3Store, fileStore, s3Enabled, logger)

	// Initialize statistics cache
	var statsCache cache.Cache = cache.Nop{}
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, statistics will not be cached")
		} else {
			statsCache = cache.NewRedisCache(client, cfg.Redis.StatsTTL, logger)
		}
	}

	// Initialize event publisher
	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	// Initialize services
	userService := service.NewUserService(userRepo, tableRepo, tokens, images, cfg.Auth.BcryptCost, logger)
	tableService := service.NewTableService(tableRepo, userRepo, orderRepo, cfg.MenuURL, logger)
	billService := service.NewBillService(billRepo, tableRepo, logger)
	dishService := service.NewDishService(dishRepo, images, logger)
	orderService := service.NewOrderService(orderRepo, tableRepo, dishRepo, publisher, logger)
	reviewService := service.NewReviewService(reviewRepo, logger)
	reportService := service.NewReportService(reportRepo, statsCache, cfg.Reports.Bucketing, time.Local, logger)

	// Initialize HTTP handlers
	cookie := handler.SessionCookie{
		Name:   cfg.Session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.IsProduction(),
	}
	handlers := router.Handlers{
		Users:   handler.NewUserHandler(userService, authorizer, logger),
		Tables:  handler.NewTableHandler(tableService, billService, authorizer, logger),
		Orders:  handler.NewOrderHandler(orderService, authorizer, cookie, logger),
		Dishes:  handler.NewDishHandler(dishService, authorizer, logger),
		Reports: handler.NewReportHandler(reportService, reviewService, authorizer, logger),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		UploadDir:   cfg.Uploads.Dir,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
