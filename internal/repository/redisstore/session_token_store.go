// Package redisstore keeps the current session token in Redis so a restarted
// process can resume the session.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/repository"
	"github.com/redis/go-redis/v9"
)

const currentTokenKey = "auth:current_token"

type sessionTokenStore struct {
	rdb    *redis.Client
	prefix string
}

// NewSessionTokenStore returns a token store keyed under prefix.
func NewSessionTokenStore(rdb *redis.Client, prefix string) repository.SessionTokenStore {
	return &sessionTokenStore{rdb: rdb, prefix: prefix}
}

func (s *sessionTokenStore) key() string { return s.prefix + currentTokenKey }

func (s *sessionTokenStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	const op = "redisstore.sessionTokenStore.Save"

	if err := s.rdb.Set(ctx, s.key(), token, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return nil
}

func (s *sessionTokenStore) Load(ctx context.Context) (string, error) {
	const op = "redisstore.sessionTokenStore.Load"

	token, err := s.rdb.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return token, nil
}

func (s *sessionTokenStore) Clear(ctx context.Context) error {
	const op = "redisstore.sessionTokenStore.Clear"

	if err := s.rdb.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return nil
}
