package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"resto-notify/config"
	configRedis "resto-notify/config/redis"
	"resto-notify/internal/cache"
	"resto-notify/internal/dispatch"
	"resto-notify/internal/dispatch/delivery"
	dispatchUC "resto-notify/internal/dispatch/usecase"
	"resto-notify/internal/focus"
	"resto-notify/internal/livechannel"
	livechannelUC "resto-notify/internal/livechannel/usecase"
	"resto-notify/internal/push"
	pushUC "resto-notify/internal/push/usecase"
	"resto-notify/internal/server"
	"resto-notify/internal/session"
	"resto-notify/internal/store"
	"resto-notify/pkg/alerting"
	"resto-notify/pkg/log"
	"resto-notify/pkg/osnotify"
	"resto-notify/pkg/panelapi"
	"resto-notify/pkg/sound"
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
	logger.Info(ctx, "Starting notification agent...")

	// Initialize Discord webhook (optional)
	var alerter *alerting.Alerter
	if cfg.Discord.WebhookID != "" && cfg.Discord.WebhookToken != "" {
		alerter, err = alerting.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Warnf(ctx, "Failed to initialize Discord webhook: %v", err)
		} else {
			logger.Info(ctx, "Discord webhook initialized")
		}
	}

	// Connect to the push broker
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected successfully to %s", cfg.Redis.Host)

	// Open the local notification store
	st, err := store.New(logger, cfg.Store.Path)
	if err != nil {
		logger.Errorf(ctx, "Failed to open local store: %v", err)
		return
	}
	defer st.Close()

	// Session holder feeds the backend client its auth token
	sessions := session.NewHolder()
	api := panelapi.New(logger, panelapi.Config{
		BaseURL:        cfg.Backend.BaseURL,
		RequestTimeout: cfg.Backend.RequestTimeout,
		RetryCount:     cfg.Backend.RetryCount,
		RetryDelay:     cfg.Backend.RetryDelay,
		TokenSource:    sessions.Token,
	})

	// Display surfaces and cue player
	tracker := focus.NewTracker(logger)
	toasts := delivery.NewToastFeed(0)
	notifier := osnotify.New(cfg.Notify.Command)
	player := sound.New(sound.Config{
		Command: cfg.Sound.Command,
		File:    cfg.Sound.File,
	})

	invalidator := cache.NewInvalidator(logger, redisClient, cfg.Push.CacheTagPrefix)

	// The dispatcher is the single decision point for both transports
	dispatcher := dispatchUC.New(
		logger,
		st,
		tracker,
		invalidator,
		api,
		player,
		toasts,
		delivery.NewOSSink(notifier),
	)

	// Live channel feeds the dispatcher
	live := livechannelUC.New(logger, livechannel.Config{
		URL:             cfg.LiveChannel.URL,
		PingInterval:    cfg.LiveChannel.PingInterval,
		PongWait:        cfg.LiveChannel.PongWait,
		WriteWait:       cfg.LiveChannel.WriteWait,
		MaxMessageSize:  cfg.LiveChannel.MaxMessageSize,
		HandshakeWait:   cfg.LiveChannel.HandshakeWait,
		RedialBaseDelay: cfg.LiveChannel.RedialBaseDelay,
		RedialMaxDelay:  cfg.LiveChannel.RedialMaxDelay,
	})
	unsubscribe := live.OnEvent(func(ctx context.Context, payload json.RawMessage) {
		if err := dispatcher.Handle(ctx, payload, dispatch.SourceLive); err != nil {
			logger.Errorf(ctx, "Live event dispatch failed: %v", err)
		}
	})
	defer unsubscribe()

	// Push manager owns the device token and the foreground subscription
	pushManager := pushUC.New(logger, push.Config{
		ChannelPrefix:    cfg.Push.ChannelPrefix,
		HeartbeatKey:     cfg.Push.HeartbeatKey,
		PermissionPrompt: cfg.Push.PermissionPrompt,
	}, st, api, redisClient, dispatcher)

	teardown := session.NewTeardown(logger, live, pushManager, st, dispatcher, invalidator, alerter)

	// Setup Gin router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup control server
	srv := server.New(server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		Router:       router,
		Logger:       logger,
		Dispatcher:   dispatcher,
		Tracker:      tracker,
		Store:        st,
		Toasts:       toasts,
		Live:         live,
		Push:         pushManager,
		Sessions:     sessions,
		RedisClient:  redisClient,
		HeartbeatKey: cfg.Push.HeartbeatKey,
		Teardown:     teardown,
	})

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil {
			logger.Errorf(ctx, "Server error: %v", err)
		}
	}()

	logger.Infof(ctx, "Control server listening on %s:%d", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown components in order
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Error shutting down control server: %v", err)
	}

	if err := pushManager.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Error shutting down push manager: %v", err)
	}

	if err := live.Disconnect(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Error disconnecting live channel: %v", err)
	}

	logger.Info(ctx, "Agent shutdown complete")
}
