package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/api/handlers"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/observability"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/services"
	"github.com/devsaad05858/Knowledge-Graph-Backend/internal/storage"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/config"
	"github.com/devsaad05858/Knowledge-Graph-Backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting knowledge graph API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("store", cfg.StoreDriver),
	)

	// Connect to the store
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn("store close error", zap.Error(err))
		}
	}()

	if cfg.AutoMigrate {
		if err := storage.Migrate(ctx, store); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Store schema up to date")
	}

	var metrics *observability.Collector
	if cfg.MetricsEnabled {
		metrics = observability.NewCollector("knowledge_graph")
	}

	// Services and handlers
	query := services.NewQueryService(store)
	mutate := services.NewMutationService(store, metrics)

	router := api.NewRouter(api.Dependencies{
		GraphHandler:   handlers.NewGraphHandler(query),
		NodesHandler:   handlers.NewNodesHandler(query, mutate),
		EdgesHandler:   handlers.NewEdgesHandler(query, mutate),
		HealthHandler:  handlers.NewHealthHandler(store),
		Metrics:        metrics,
		AllowedOrigins: cfg.AllowedOrigins(),
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		TrustProxy:     cfg.TrustProxy,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
