package repository

import (
	"context"

	"github.com/gdugdh24/lovematch/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id int64) (*domain.Match, error)
	// ListViews returns the matches of profileID joined with the counterpart
	// profile. Matches whose counterpart row is missing are left out.
	ListViews(ctx context.Context, profileID int64) ([]*domain.MatchView, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus) error
	// DeleteWithMessages removes the match and every message it owns in one
	// transaction.
	DeleteWithMessages(ctx context.Context, id int64) error
}
