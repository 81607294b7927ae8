package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/lovematch/internal/config"
	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the key-value server that keeps the current
// session token. Only a handful of keys live there, so the pool is small.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	const op = "database.NewRedisClient"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %s: %w: %w", op, cfg.GetAddr(), domain.ErrStorage, err)
	}

	log.From(ctx).Info("redis_connected", "addr", cfg.GetAddr(), "db", cfg.DB)
	return client, nil
}
