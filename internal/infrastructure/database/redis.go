package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/taskflow/core/internal/infrastructure/config"
	"github.com/taskflow/core/internal/infrastructure/logger"
)

const (
	redisMaxRetries = 5
	redisRetryDelay = 2 * time.Second
)

// NewRedis connects to Redis, retrying with exponential backoff
func NewRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*redis.Client, error) {
	retryDelay := redisRetryDelay

	for attempt := 1; attempt <= redisMaxRetries; attempt++ {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.GetAddr(),
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
			MinIdleConns: 3,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			log.Infow("Redis connected", "address", cfg.GetAddr())
			return client, nil
		}
		client.Close()

		log.Warnw("Redis connection failed", "attempt", attempt, "max_attempts", redisMaxRetries, "error", err)

		if attempt < redisMaxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
			retryDelay *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect to Redis after %d attempts", redisMaxRetries)
}
