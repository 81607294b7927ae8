package repository

import (
	"context"

	"github.com/gdugdh24/lovematch/internal/domain"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Update(ctx context.Context, id int64, update *domain.ProfileUpdate) error
	// ListWithBioMatches returns every profile with the number of other
	// profiles whose bio overlaps its own. The count is a self-join and
	// grows quadratically with the number of profiles.
	ListWithBioMatches(ctx context.Context) ([]*domain.ProfileWithBioMatches, error)
}
