package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Investment-Simulator-Backend/internal/api"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/cache"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/config"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/database"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/logging"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/repository"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/scheduler"
	"github.com/ndewijer/Investment-Simulator-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stdout sync fails on some terminals
	zap.ReplaceGlobals(logger)

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database", zap.String("path", cfg.Database.Path))

	resultCache := newCache(cfg.Cache, logger)

	shareKey, generated, err := service.LoadShareKey(cfg.Share.Key)
	if err != nil {
		logger.Fatal("failed to load share key", zap.Error(err))
	}
	if generated {
		logger.Warn("SHARE_KEY not set, share tokens will not survive a restart")
	}

	// Create services
	systemService := service.NewSystemService(db)
	simulationService := service.NewSimulationService(
		db,
		repository.NewSimulationRepository(db),
		resultCache,
		logger,
		service.SimulationOptions{
			CacheTTL:         cfg.Cache.TTL,
			ShareKey:         shareKey,
			ShareTokenTTL:    cfg.Share.TokenTTL,
			BatchConcurrency: cfg.Simulation.BatchConcurrency,
		},
	)

	sched, err := scheduler.New(simulationService, cfg.Retention, logger)
	if err != nil {
		logger.Fatal("failed to create scheduler", zap.Error(err))
	}
	sched.Start()

	// Create router
	router := api.NewRouter(systemService, simulationService, logger, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sched.Stop(ctx)
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if closer, ok := resultCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close cache", zap.Error(err))
		}
	}

	logger.Info("server exited")
}

// newCache connects to Redis when configured and falls back to process memory
// when it is not, or when Redis does not answer.
func newCache(cfg config.CacheConfig, logger *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory result cache")
		return cache.NewMemoryCache()
	}

	rc := cache.NewRedisCache(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory result cache",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = rc.Close()
		return cache.NewMemoryCache()
	}

	logger.Info("using redis result cache", zap.String("addr", cfg.RedisAddr))
	return rc
}
