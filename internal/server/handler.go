package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto-notify/internal/dispatch"
	"resto-notify/internal/livechannel"
	"resto-notify/internal/session"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string      `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Broker      *BrokerInfo `json:"broker"`
	LiveChannel string      `json:"live_channel"`
	PushWorker  *WorkerInfo `json:"push_worker,omitempty"`
	Uptime      int64       `json:"uptime_seconds"`
}

// BrokerInfo represents push broker health status
type BrokerInfo struct {
	Status string  `json:"status"`
	PingMs float64 `json:"ping_ms,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// WorkerInfo reports whether the background delivery worker is alive.
type WorkerInfo struct {
	Alive bool `json:"alive"`
}

var startTime = time.Now()

func healthHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now(),
		LiveChannel: string(cfg.Live.State()),
		Uptime:      int64(time.Since(startTime).Seconds()),
	}

	broker := &BrokerInfo{Status: "connected"}
	if cfg.RedisClient == nil {
		broker.Status = "disabled"
	} else {
		latency, err := cfg.RedisClient.Latency(ctx)
		if err != nil {
			broker.Status = "disconnected"
			broker.Error = err.Error()
			response.Status = "degraded"
			cfg.Logger.Errorf(ctx, "internal.server.healthHandler: broker check failed: %v", err)
		} else {
			broker.PingMs = float64(latency.Microseconds()) / 1000.0

			alive, err := cfg.RedisClient.Exists(ctx, cfg.HeartbeatKey).Result()
			if err == nil {
				response.PushWorker = &WorkerInfo{Alive: alive > 0}
			}
		}
	}
	response.Broker = broker

	statusCode := http.StatusOK
	if response.Status == "degraded" {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

func statsHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"dispatch": cfg.Dispatcher.Stats(ctx),
		"unread":   cfg.Store.Unread(ctx),
		"pending":  cfg.Toasts.Pending(),
		"focused":  cfg.Tracker.Focused(),
	})
}

type focusRequest struct {
	Focused bool `json:"focused"`
}

// focusHandler records a focus transition reported by the panel UI. The
// tracker is the authority; the store only keeps a snapshot for diagnostics.
func focusHandler(c *gin.Context, cfg Config) {
	var req focusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	cfg.Tracker.SetFocused(ctx, req.Focused)
	cfg.Store.SetFocusSnapshot(req.Focused)
	c.JSON(http.StatusOK, gin.H{"focused": req.Focused})
}

// gestureHandler reports the first user interaction. Audio output stays
// locked until it arrives.
func gestureHandler(c *gin.Context, cfg Config) {
	cfg.Dispatcher.WarmUpSound(c.Request.Context())
	c.Status(http.StatusNoContent)
}

type soundRequest struct {
	Enabled bool `json:"enabled"`
}

func soundHandler(c *gin.Context, cfg Config) {
	var req soundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	ctx := c.Request.Context()
	if err := cfg.Store.SetSoundEnabled(ctx, req.Enabled); err != nil {
		cfg.Logger.Errorf(ctx, "internal.server.soundHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": req.Enabled})
}

func notificationsHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"notifications": cfg.Store.Events(ctx),
		"unread":        cfg.Store.Unread(ctx),
	})
}

// toastsHandler drains the pending toast feed. Each toast is delivered to
// the UI at most once.
func toastsHandler(c *gin.Context, cfg Config) {
	c.JSON(http.StatusOK, gin.H{"toasts": cfg.Toasts.Drain()})
}

// clickHandler resolves a toast click: marks the notification read and
// returns the deep link the UI should navigate to.
func clickHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()
	link, err := cfg.Dispatcher.Click(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, dispatch.ErrUnknownNotification) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown notification"})
			return
		}
		cfg.Logger.Errorf(ctx, "internal.server.clickHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "click failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deep_link": link})
}

func seenHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()
	if err := cfg.Dispatcher.MarkRead(ctx, c.Param("id")); err != nil {
		cfg.Logger.Errorf(ctx, "internal.server.seenHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mark read failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

type loginRequest struct {
	Token string `json:"token"`
}

// loginHandler starts a session from the auth token the panel UI obtained.
// It brings up the live channel for the token's identity and kicks off
// device push registration; a push failure degrades to live-only delivery.
func loginHandler(c *gin.Context, cfg Config) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	ctx := c.Request.Context()

	sess, err := session.FromToken(req.Token)
	if err != nil {
		cfg.Logger.Warnf(ctx, "internal.server.loginHandler: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "token missing identity claims"})
		return
	}
	cfg.Sessions.Set(sess)

	if err := cfg.Live.Connect(ctx, sess.UserID, sess.RestaurantID); err != nil {
		if !errors.Is(err, livechannel.ErrIdentityChanged) {
			cfg.Logger.Errorf(ctx, "internal.server.loginHandler: live connect: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "live channel unavailable"})
			return
		}
		// A new identity on a live connection: tear the old one down first.
		if err := cfg.Live.Disconnect(ctx); err != nil {
			cfg.Logger.Errorf(ctx, "internal.server.loginHandler: live disconnect: %v", err)
		}
		if err := cfg.Live.Connect(ctx, sess.UserID, sess.RestaurantID); err != nil {
			cfg.Logger.Errorf(ctx, "internal.server.loginHandler: live reconnect: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "live channel unavailable"})
			return
		}
	}

	token, err := cfg.Push.RequestPermissionAndToken(ctx)
	if err != nil {
		cfg.Logger.Errorf(ctx, "internal.server.loginHandler: push setup: %v", err)
	} else if token != "" {
		if err := cfg.Push.Register(ctx, token); err != nil {
			cfg.Logger.Errorf(ctx, "internal.server.loginHandler: push register: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":       sess.UserID,
		"restaurant_id": sess.RestaurantID,
		"push_token":    cfg.Push.TokenState(ctx),
	})
}

// logoutHandler runs the session teardown sequence. Partial failures are
// reported but the session is gone either way.
func logoutHandler(c *gin.Context, cfg Config) {
	ctx := c.Request.Context()
	err := cfg.Teardown.Run(ctx)
	cfg.Sessions.Clear()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "partial", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "clean"})
}
