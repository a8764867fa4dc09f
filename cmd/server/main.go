package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dealscout/backend/config"
	httpDelivery "github.com/dealscout/backend/internal/delivery/http"
	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/infrastructure/cache"
	"github.com/dealscout/backend/internal/infrastructure/proxy"
	"github.com/dealscout/backend/internal/monitoring"
	"github.com/dealscout/backend/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logger
	logger, err := monitoring.NewLogger(monitoring.LogOptions{
		Environment: cfg.Server.Environment,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting DealScout backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Monitoring
	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	observer := monitoring.Observers{
		monitoring.NewLogObserver(logger),
		monitoring.NewMetricsObserver(metrics),
	}

	// Initialize infrastructure dependencies
	resultCache, closeCache, err := newCache(cfg.Cache)
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := closeCache.Close(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	}()

	providers, err := proxy.ParseProviders(cfg.Fetcher.Proxies)
	if err != nil {
		logger.Fatal("invalid proxy configuration", zap.Error(err))
	}
	fetcher := proxy.NewClient(proxy.Options{
		Providers:         providers,
		Timeout:           cfg.Fetcher.Timeout,
		UserAgent:         cfg.Fetcher.UserAgent,
		RequestsPerSecond: cfg.Fetcher.RequestsPerSecond,
		Burst:             cfg.Fetcher.Burst,
		MaxBodyBytes:      cfg.Fetcher.MaxBodyBytes,
	}, logger, observer)

	names := make([]string, 0, len(fetcher.Providers()))
	for _, p := range fetcher.Providers() {
		names = append(names, p.Name)
	}
	logger.Info("proxy providers configured", zap.Strings("providers", names))

	// Initialize usecase layer
	extractionService := usecase.NewExtractionService(
		fetcher,
		resultCache,
		observer,
		logger,
		usecase.ExtractionServiceConfig{
			CacheTTL:          cfg.Cache.TTL,
			FallbackAllStores: cfg.Extraction.FallbackAllStores,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(extractionService)
	router := httpDelivery.SetupRouter(cfg, handler, httpDelivery.RouterDeps{
		Logger:  logger,
		Metrics: metrics,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Extraction may walk several proxies before answering
		WriteTimeout: cfg.Fetcher.Timeout*time.Duration(len(names)) + 10*time.Second,
	}

	// Graceful Shutdown
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

// newCache builds the result cache selected by configuration.
// The returned closer releases background resources.
func newCache(cfg config.CacheConfig) (domain.CacheRepository, io.Closer, error) {
	switch cfg.Type {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, redisCache, nil
	case "none":
		return cache.NoopCache{}, cache.NoopCache{}, nil
	default:
		memoryCache := cache.NewMemoryCache()
		return memoryCache, memoryCache, nil
	}
}
