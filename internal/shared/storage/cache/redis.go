package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"cv-backend/internal/shared/telemetry"
)

const defaultPingTimeout = 5 * time.Second

// Connect opens a Redis client from a redis:// or rediss:// URL and verifies connectivity.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	telemetry.Info("redis.init", map[string]any{"addr": opts.Addr, "db": opts.DB, "tls": opts.TLSConfig != nil})
	return client, nil
}

// ParseURL converts a connection URL into client options. Username, password,
// database number and TLS (rediss) are taken from the URL.
func ParseURL(redisURL string) (*redis.Options, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("REDIS_URL is empty")
	}
	opts, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}
