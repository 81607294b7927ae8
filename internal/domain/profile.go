package domain

import "time"

type SubscriptionTier string

const (
	TierBasic   SubscriptionTier = "basic"
	TierPremium SubscriptionTier = "premium"
	TierElite   SubscriptionTier = "elite"
)

// DefaultImageURL is assigned to profiles registered without a picture.
const DefaultImageURL = "/placeholder.svg"

type Profile struct {
	ID               int64            `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	Name             string           `json:"name"`
	Bio              string           `json:"bio"`
	Zodiac           string           `json:"zodiac"`
	ImageURL         string           `json:"image_url"`
	Location         string           `json:"location"`
	Zipcode          string           `json:"zipcode"`
	Verified         bool             `json:"verified"`
	VerificationType string           `json:"verification_type"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	Personality      string           `json:"personality"`
	Education        string           `json:"education"`
	Financial        string           `json:"financial"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ProfileWithBioMatches is a profile plus the number of other profiles
// whose bio overlaps with this one.
type ProfileWithBioMatches struct {
	Profile
	BioMatches int `json:"bio_matches"`
}

// ProfileUpdate carries a partial set of profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Name             *string           `json:"name" validate:"omitempty,max=100"`
	Bio              *string           `json:"bio" validate:"omitempty,max=1000"`
	Zodiac           *string           `json:"zodiac" validate:"omitempty,max=20"`
	ImageURL         *string           `json:"image_url" validate:"omitempty,max=500"`
	Location         *string           `json:"location" validate:"omitempty,max=200"`
	Zipcode          *string           `json:"zipcode" validate:"omitempty,max=20"`
	Verified         *bool             `json:"verified"`
	VerificationType *string           `json:"verification_type" validate:"omitempty,max=50"`
	SubscriptionTier *SubscriptionTier `json:"subscription_tier" validate:"omitempty,oneof=basic premium elite"`
	Personality      *string           `json:"personality" validate:"omitempty,max=1000"`
	Education        *string           `json:"education" validate:"omitempty,max=1000"`
	Financial        *string           `json:"financial" validate:"omitempty,max=1000"`
}

// IsEmpty reports whether no field is set.
func (u *ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Bio == nil && u.Zodiac == nil && u.ImageURL == nil &&
		u.Location == nil && u.Zipcode == nil && u.Verified == nil && u.VerificationType == nil &&
		u.SubscriptionTier == nil && u.Personality == nil && u.Education == nil && u.Financial == nil
}
