package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.AuthSession) error
	// ProfileByToken returns the owner of a session whose expiry is after now.
	ProfileByToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Profile, error)
	GetByToken(ctx context.Context, tokenHash string) (*domain.AuthSession, error)
	DeleteByToken(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionTokenStore keeps the current session token across restarts.
type SessionTokenStore interface {
	Save(ctx context.Context, token string, ttl time.Duration) error
	// Load returns "" when no token is stored.
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
