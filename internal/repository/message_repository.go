package repository

import (
	"context"

	"github.com/gdugdh24/lovematch/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListRecent returns at most limit messages of a match, newest first.
	ListRecent(ctx context.Context, matchID int64, limit int) ([]*domain.Message, error)
}
