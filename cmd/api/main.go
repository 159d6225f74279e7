package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"manzily/internal/catalog"
	"manzily/internal/config"
	"manzily/internal/handlers"
	"manzily/internal/listing"
	"manzily/internal/logging"
	"manzily/internal/ratelimit"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	configPath := config.GetEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	}

	logger := logging.New(appConfig.Logging)
	slog.SetDefault(logger)

	// Load the listing catalog
	cat, err := catalog.LoadSeed(appConfig.Catalog.SeedPath)
	if err != nil {
		logger.Error("failed to load catalog", "seed_path", appConfig.Catalog.SeedPath, "error", err)
		os.Exit(1)
	}
	logger.Info("catalog loaded",
		"properties", cat.Len(),
		"types", cat.Types().List(),
		"seed_path", appConfig.Catalog.SeedPath,
	)

	rateLimiter := ratelimit.NewRateLimiter(
		appConfig.RateLimit.RequestsPerMinute,
		appConfig.RateLimit.RequestsPerHour,
		appConfig.RateLimit.IsEnabled(),
	)
	logger.Info("submission rate limiter initialized",
		"per_minute", appConfig.RateLimit.RequestsPerMinute,
		"per_hour", appConfig.RateLimit.RequestsPerHour,
		"enabled", appConfig.RateLimit.IsEnabled(),
	)

	submitter := listing.NewSubmitter(cat.Types(), listing.DiscardSink{}, logger)
	propertyHandler := handlers.NewPropertyHandler(cat, submitter, logger)

	gin.SetMode(appConfig.Server.GinMode())
	r := handlers.NewRouter(propertyHandler, handlers.RouterConfig{
		CORSOrigins: appConfig.Server.CORSOrigins,
		LogRequests: appConfig.Logging.LogRequests,
		RateLimiter: rateLimiter,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", appConfig.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
