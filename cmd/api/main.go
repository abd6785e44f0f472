package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zap-feed-service/config"
	httpHandler "zap-feed-service/internal/adapter/http/handler"
	"zap-feed-service/internal/adapter/lnbits"
	memoryStorage "zap-feed-service/internal/adapter/storage/memory"
	redisStorage "zap-feed-service/internal/adapter/storage/redis"
	"zap-feed-service/internal/core/ports"
	"zap-feed-service/internal/service"
	"zap-feed-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Zap Feed Service")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("ZAP_JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Initialize LNbits client
	ledger := lnbits.NewClient(cfg.LNbits.NodeURL, cfg.LNbits.Username, cfg.LNbits.Password, cfg.LNbits.Timeout, log)
	healthCheckers := []ports.HealthChecker{lnbits.NewHealthCheck(ledger)}

	// Initialize the session cache backend. Redis survives restarts and is
	// shared across replicas; memory is for single-instance deployments.
	var feedCache ports.FeedCache
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Cache.Backend == "redis" {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		feedCache = redisStorage.NewFeedCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		feedCache = memoryStorage.NewFeedCache()
		log.Info().Msg("Using in-memory cache, rate limiting disabled")
	}

	// Initialize the reconciliation pipeline
	classifier := service.NewWalletClassifier(cfg.Feed.SourceWallets, cfg.Feed.DestinationWallets)
	reconciler := service.NewReconciler(cfg.Feed.InternalPrefix, cfg.Feed.ExcludeMemo, cfg.Feed.MaxRecords)
	presenter := service.NewPresenter(cfg.Feed.PageSize)

	// Initialize business services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	feedSvc := service.NewFeedService(ledger, feedCache, classifier, reconciler, presenter, cfg.Cache.Name, cfg.Feed.FetchConcurrency, log)
	transferSvc := service.NewTransferService(ledger, feedCache, classifier, cfg.Cache.Name, log)
	authSvc := service.NewAuthService(ledger, feedCache, tokenSvc, cfg.Cache.Name, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		FeedSvc:        feedSvc,
		TransferSvc:    transferSvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
