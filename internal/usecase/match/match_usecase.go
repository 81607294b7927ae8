package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/gdugdh24/lovematch/internal/repository"
)

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewMatchUseCase(matchRepo repository.MatchRepository, profileRepo repository.ProfileRepository) *MatchUseCase {
	return &MatchUseCase{matchRepo: matchRepo, profileRepo: profileRepo, now: time.Now}
}

// CreateMatch scores two profiles and stores a pending match between them.
// The same pair may be matched more than once.
func (uc *MatchUseCase) CreateMatch(ctx context.Context, profileAID, profileBID int64) (*domain.Match, error) {
	const op = "match.MatchUseCase.CreateMatch"

	a, err := uc.profileRepo.GetByID(ctx, profileAID)
	if err != nil {
		return nil, fmt.Errorf("%s: profile %d: %w", op, profileAID, err)
	}
	b, err := uc.profileRepo.GetByID(ctx, profileBID)
	if err != nil {
		return nil, fmt.Errorf("%s: profile %d: %w", op, profileBID, err)
	}

	score, details := domain.Compatibility(a, b)
	match := &domain.Match{
		Profile1ID:           a.ID,
		Profile2ID:           b.ID,
		Status:               domain.MatchPending,
		CompatibilityScore:   score,
		CompatibilityDetails: details,
		CreatedAt:            uc.now(),
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("match_created", "op", op, "match_id", match.ID, "score", score)
	return match, nil
}

func (uc *MatchUseCase) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	const op = "match.MatchUseCase.GetByID"

	match, err := uc.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return match, nil
}

// ListMatches returns the matches of profileID, each with the counterpart's
// profile and whether the two bios overlap.
func (uc *MatchUseCase) ListMatches(ctx context.Context, profileID int64) ([]*domain.MatchView, error) {
	const op = "match.MatchUseCase.ListMatches"

	views, err := uc.matchRepo.ListViews(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views, nil
}

// UpdateStatus moves a match to any valid status.
func (uc *MatchUseCase) UpdateStatus(ctx context.Context, matchID int64, status domain.MatchStatus) error {
	const op = "match.MatchUseCase.UpdateStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: %q: %w", op, status, domain.ErrInvalidStatus)
	}
	if err := uc.matchRepo.UpdateStatus(ctx, matchID, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("match_status_updated", "op", op, "match_id", matchID, "status", status)
	return nil
}

// DeleteMatch removes the match together with its messages.
func (uc *MatchUseCase) DeleteMatch(ctx context.Context, matchID int64) error {
	const op = "match.MatchUseCase.DeleteMatch"

	if err := uc.matchRepo.DeleteWithMessages(ctx, matchID); err != nil {
		if !errors.Is(err, domain.ErrMatchNotFound) {
			log.From(ctx).Error("match_delete_failed", "op", op, "match_id", matchID, "err", err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("match_deleted", "op", op, "match_id", matchID)
	return nil
}
