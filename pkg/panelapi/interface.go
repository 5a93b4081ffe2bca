package panelapi

import (
	"context"
	"net/http"
	"time"

	"resto-notify/pkg/log"
)

// API is the panel backend surface this layer consumes. The backend owns
// token bookkeeping and read state; every call here is idempotent on its side.
type API interface {
	// RegisterToken records a device push token. Any non-2xx response means
	// "not yet registered" and the caller may retry on a later mount.
	RegisterToken(ctx context.Context, token string) error
	// RevokeToken removes a device push token registration.
	RevokeToken(ctx context.Context, token string) error
	// MarkSeen marks a notification as read, keyed by notification id.
	MarkSeen(ctx context.Context, notificationID string) error
}

// Config holds client settings. TokenSource, when set, supplies the session
// credential attached to every request.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RetryCount     int
	RetryDelay     time.Duration
	TokenSource    func() string
}

// New creates a panel backend client.
func New(l log.Logger, cfg Config) API {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return &client{
		l:   l,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}
