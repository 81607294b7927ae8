package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/gdugdh24/lovematch/internal/pkg/validate"
	"github.com/gdugdh24/lovematch/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	now         func() time.Time
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo, now: time.Now}
}

// CreateProfileRequest creates a profile without credentials, e.g. when
// seeding. Such a profile cannot log in.
type CreateProfileRequest struct {
	Email            string                  `json:"email" validate:"required,email,max=254"`
	Name             string                  `json:"name" validate:"required,max=100"`
	Bio              string                  `json:"bio" validate:"max=1000"`
	Zodiac           string                  `json:"zodiac" validate:"max=20"`
	ImageURL         string                  `json:"image_url" validate:"max=500"`
	Location         string                  `json:"location" validate:"max=200"`
	Zipcode          string                  `json:"zipcode" validate:"max=20"`
	SubscriptionTier domain.SubscriptionTier `json:"subscription_tier" validate:"omitempty,oneof=basic premium elite"`
	Personality      string                  `json:"personality" validate:"max=1000"`
	Education        string                  `json:"education" validate:"max=1000"`
	Financial        string                  `json:"financial" validate:"max=1000"`
}

// Create inserts a profile. Tier defaults to basic and image to the
// placeholder.
func (uc *ProfileUseCase) Create(ctx context.Context, req *CreateProfileRequest) (*domain.Profile, error) {
	const op = "profile.ProfileUseCase.Create"

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile := &domain.Profile{
		Email:            req.Email,
		Name:             req.Name,
		Bio:              req.Bio,
		Zodiac:           req.Zodiac,
		ImageURL:         req.ImageURL,
		Location:         req.Location,
		Zipcode:          req.Zipcode,
		SubscriptionTier: req.SubscriptionTier,
		Personality:      req.Personality,
		Education:        req.Education,
		Financial:        req.Financial,
		CreatedAt:        uc.now(),
	}
	if profile.ImageURL == "" {
		profile.ImageURL = domain.DefaultImageURL
	}
	if profile.SubscriptionTier == "" {
		profile.SubscriptionTier = domain.TierBasic
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("profile_created", "op", op, "profile_id", profile.ID)
	return profile, nil
}

func (uc *ProfileUseCase) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	const op = "profile.ProfileUseCase.GetByID"

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// List returns every profile with its bio_matches count.
func (uc *ProfileUseCase) List(ctx context.Context) ([]*domain.ProfileWithBioMatches, error) {
	const op = "profile.ProfileUseCase.List"

	profiles, err := uc.profileRepo.ListWithBioMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profiles, nil
}

// Update applies the non-nil fields of update and returns the stored profile.
func (uc *ProfileUseCase) Update(ctx context.Context, id int64, update *domain.ProfileUpdate) (*domain.Profile, error) {
	const op = "profile.ProfileUseCase.Update"

	if update == nil {
		update = &domain.ProfileUpdate{}
	}
	if err := validate.Struct(update); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.profileRepo.Update(ctx, id, update); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile, err := uc.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("profile_updated", "op", op, "profile_id", id)
	return profile, nil
}
