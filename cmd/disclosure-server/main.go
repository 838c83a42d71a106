// cmd/disclosure-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"disclosure-pipeline/internal/addrcode"
	"disclosure-pipeline/internal/common/config"
	"disclosure-pipeline/internal/common/database"
	"disclosure-pipeline/internal/common/logger"
	"disclosure-pipeline/internal/parser"
	"disclosure-pipeline/internal/pipeline"
	"disclosure-pipeline/internal/registry"
	"disclosure-pipeline/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting disclosure server",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	if cfg.Registry.APIKey == "" {
		zapLog.Warn("no registry API key configured, registry lookups will fail (set BUILDING_API_KEY)")
	}

	// Redis backs the registry response cache; the server runs without it.
	var redisClient *database.RedisClient
	if cfg.Registry.CacheEnabled {
		redisClient, _ = database.NewRedis(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Warn("redis unavailable, registry cache disabled", zap.Error(err))
			redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	registryClient := registry.NewHTTPClient(cfg.Registry, redisCache(redisClient), log)

	pipe := pipeline.New(
		parser.New(),
		addrcode.New(),
		registryClient,
		pipeline.Config{
			TitleRows: cfg.Registry.TitleRows,
			FloorRows: cfg.Registry.FloorRows,
			AreaRows:  cfg.Registry.AreaRows,
			UnitRows:  cfg.Registry.UnitRows,
		},
		log,
	)

	srv := server.New(pipe, log)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(cfg.Server),
	}

	go func() {
		zapLog.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		zapLog.Error("shutdown failed", zap.Error(err))
	}
	if redisClient != nil {
		redisClient.Close()
	}
	zapLog.Info("stopped")
}

func redisCache(c *database.RedisClient) *redis.Client {
	if c == nil {
		return nil
	}
	return c.GetClient()
}
