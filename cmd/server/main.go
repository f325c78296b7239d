package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/rankedversus/internal/api"
	"github.com/vytor/rankedversus/internal/cache"
	"github.com/vytor/rankedversus/internal/config"
	"github.com/vytor/rankedversus/internal/db"
	"github.com/vytor/rankedversus/internal/jobs"
	"github.com/vytor/rankedversus/internal/logger"
	"github.com/vytor/rankedversus/internal/metrics"
	"github.com/vytor/rankedversus/internal/ranked"
	"github.com/vytor/rankedversus/internal/repository/sqlite"
	"github.com/vytor/rankedversus/internal/services"
	"github.com/vytor/rankedversus/internal/worker"
)

// requestTimeout bounds one page load. A first walk over a long history can
// take many upstream round trips.
const requestTimeout = 2 * time.Minute

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Ranked Versus Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("ranked_api_url=%s", cfg.RankedAPIURL)
	log.Debug("http_timeout=%v", cfg.HTTPTimeout)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("warm_worker_count=%d", cfg.WarmWorkerCount)
	log.Debug("warm_queue_size=%d", cfg.WarmQueueSize)
	log.Debug("warm_limit=%d", cfg.WarmLimit)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	store := cache.New(sqlite.NewKeyValueRepository(database.DB))
	client := ranked.New(cfg.RankedAPIURL, cfg.HTTPTimeout)
	versusService := services.NewVersusService(client, store, metrics.NewService())

	// Initialize worker pool
	warmPool := worker.NewPool(cfg.WarmWorkerCount, cfg.WarmQueueSize)
	warmService := services.NewWarmService(client, jobs.NewWorkerQueue(warmPool, versusService))

	srv := &api.Server{
		VersusService:  versusService,
		WarmService:    warmService,
		DB:             database,
		MetricsHandler: metrics.NewHandler(),
		RequestTimeout: requestTimeout,
		WarmLimit:      cfg.WarmLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	warmPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Queued refreshes are dropped; the cache only ever holds finished walks.
	log.Debug("stopping warm pool")
	cancel()
	warmPool.Stop()
	stats := warmPool.Stats()
	log.Info("warm pool stopped: %d completed, %d failed", stats.Completed, stats.Failed)

	log.Info("===========================================")
	log.Info("Ranked Versus Server Stopped")
	log.Info("===========================================")
}
