package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resto-notify/config"
	configRedis "resto-notify/config/redis"
	"resto-notify/internal/worker"
	"resto-notify/pkg/log"
	"resto-notify/pkg/osnotify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting push delivery worker...")

	// Connect to the push broker
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s", cfg.Redis.Host)

	// Start the delivery worker
	w := worker.New(logger, worker.Config{
		ChannelPrefix: cfg.Push.ChannelPrefix,
		HeartbeatKey:  cfg.Push.HeartbeatKey,
		HeartbeatTTL:  cfg.Push.HeartbeatTTL,
	},
		redisClient,
		osnotify.New(cfg.Notify.Command),
		worker.NewOpener(cfg.App.OpenCommand, cfg.App.URL),
	)
	if err := w.Start(); err != nil {
		logger.Errorf(ctx, "Failed to start worker: %v", err)
		return
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Error shutting down worker: %v", err)
	}

	rendered, dropped := w.Stats()
	logger.Infof(ctx, "Worker shutdown complete (rendered=%d dropped=%d)", rendered, dropped)
}
