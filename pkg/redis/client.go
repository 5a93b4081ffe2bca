package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps goredis.Client. The notification pipeline uses the broker for
// push delivery channels, worker heartbeats and tagged response caches.
type Client struct {
	*goredis.Client
	config Config
}

// NewClient creates a new broker client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, ErrHostRequired
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, ErrInvalidPort
	}

	opts := &goredis.Options{
		Addr:            fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinIdleConns:    cfg.MinIdleConns,
		PoolSize:        cfg.PoolSize,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{
		Client: client,
		config: cfg,
	}, nil
}

// Close closes the broker connection.
func (c *Client) Close() error {
	return c.Client.Close()
}

// Latency checks if the connection is alive and returns round-trip time.
func (c *Client) Latency(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// IsConnected checks if the client is connected to the broker.
func (c *Client) IsConnected(ctx context.Context) bool {
	_, err := c.Latency(ctx)
	return err == nil
}
