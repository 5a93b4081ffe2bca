package cache

import (
	"context"
	"fmt"

	"resto-notify/pkg/log"
	pkgRedis "resto-notify/pkg/redis"
)

const scanBatch = 100

// redisInvalidator implements Invalidator over broker-side tagged entries.
// Cached responses live under {prefix}{tag}:{key}.
type redisInvalidator struct {
	l      log.Logger
	client *pkgRedis.Client
	prefix string
}

// NewInvalidator creates a broker-backed Invalidator.
func NewInvalidator(l log.Logger, client *pkgRedis.Client, prefix string) Invalidator {
	return &redisInvalidator{
		l:      l,
		client: client,
		prefix: prefix,
	}
}

func (c *redisInvalidator) InvalidateTag(ctx context.Context, tag string) error {
	return c.deleteByPattern(ctx, c.prefix+tag+":*")
}

func (c *redisInvalidator) Clear(ctx context.Context) error {
	return c.deleteByPattern(ctx, c.prefix+"*")
}

func (c *redisInvalidator) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("scanning cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("deleting cache keys: %w", err)
			}
			c.l.Debugf(ctx, "internal.cache.deleteByPattern: dropped %d entries for %s", len(keys), pattern)
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
