// Package redis owns the optional distributed-cache connection.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectFromEnv dials Redis using REDIS_ADDR and returns the client plus a
// cleanup function. A missing address or failed ping returns nil with a no-op
// cleanup; callers are expected to degrade to in-process caching.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*redis.Client, func()) {
	return ConnectWithFallback(ctx, os.Getenv("REDIS_ADDR"), logger)
}

// ConnectWithFallback dials Redis at the given address. An empty address or a
// failed ping returns nil with a no-op cleanup.
func ConnectWithFallback(ctx context.Context, addr string, logger *slog.Logger) (*redis.Client, func()) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		if logger != nil {
			logger.Warn("REDIS_ADDR not set, distributed cache disabled")
		}
		return nil, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if logger != nil {
			logger.Warn("failed to connect to redis, distributed cache disabled", slog.String("error", err.Error()))
		}
		_ = client.Close()
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("redis connection established", slog.String("addr", addr))
	}
	return client, func() { _ = client.Close() }
}
