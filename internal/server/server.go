// Package server exposes the agent's local control surface. The panel UI
// talks to it over loopback HTTP: focus transitions in, pending toasts and
// click resolutions out.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto-notify/internal/dispatch"
	"resto-notify/internal/dispatch/delivery"
	"resto-notify/internal/focus"
	"resto-notify/internal/livechannel"
	"resto-notify/internal/push"
	"resto-notify/internal/session"
	"resto-notify/internal/store"
	"resto-notify/pkg/log"
	"resto-notify/pkg/redis"
)

// Server represents the control HTTP server
type Server struct {
	config Config
	server *http.Server
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	Router       *gin.Engine
	Logger       log.Logger
	Dispatcher   dispatch.UseCase
	Tracker      *focus.Tracker
	Store        store.Store
	Toasts       *delivery.ToastFeed
	Live         livechannel.Manager
	Push         push.Manager
	Sessions     *session.Holder
	RedisClient  *redis.Client
	HeartbeatKey string
	Teardown     *session.Teardown
}

// New creates a new Server instance
func New(cfg Config) *Server {
	setupRoutes(cfg)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:        cfg.Router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	return &Server{
		config: cfg,
		server: server,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.config.Logger.Infof(context.Background(), "Starting control server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.config.Logger.Info(ctx, "Shutting down control server...")
	return s.server.Shutdown(ctx)
}

// setupRoutes sets up HTTP routes
func setupRoutes(cfg Config) {
	r := cfg.Router

	r.GET("/health", func(c *gin.Context) {
		healthHandler(c, cfg)
	})
	r.GET("/stats", func(c *gin.Context) {
		statsHandler(c, cfg)
	})

	r.POST("/focus", func(c *gin.Context) {
		focusHandler(c, cfg)
	})
	r.POST("/gesture", func(c *gin.Context) {
		gestureHandler(c, cfg)
	})
	r.POST("/sound", func(c *gin.Context) {
		soundHandler(c, cfg)
	})

	r.GET("/notifications", func(c *gin.Context) {
		notificationsHandler(c, cfg)
	})
	r.GET("/toasts", func(c *gin.Context) {
		toastsHandler(c, cfg)
	})
	r.POST("/notifications/:id/click", func(c *gin.Context) {
		clickHandler(c, cfg)
	})
	r.PUT("/notifications/:id/seen", func(c *gin.Context) {
		seenHandler(c, cfg)
	})

	r.POST("/login", func(c *gin.Context) {
		loginHandler(c, cfg)
	})
	r.POST("/logout", func(c *gin.Context) {
		logoutHandler(c, cfg)
	})
}
