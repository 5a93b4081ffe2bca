package redis

import "time"

// Config holds connection settings for the push broker.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	// Connection pool settings
	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}
