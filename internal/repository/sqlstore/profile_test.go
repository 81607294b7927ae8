package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database/dbtest"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 123456789, time.UTC)
	p := &domain.Profile{
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Name:         "Alice",
		Bio:          "Love hiking and photography",
		Zodiac:       "Libra",
		ImageURL:     domain.DefaultImageURL,
		Verified:     true,
		CreatedAt:    created,
	}
	require.NoError(t, r.profiles.Create(ctx, p))
	require.NotZero(t, p.ID)
	require.Equal(t, domain.TierBasic, p.SubscriptionTier)

	got, err := r.profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.Equal(t, created.Truncate(time.Millisecond), got.CreatedAt)

	byEmail, err := r.profiles.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, p.ID, byEmail.ID)
}

func TestProfileRepository_CreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	r.profile(t, "dup@example.com", "", "")

	err := r.profiles.Create(context.Background(), &domain.Profile{Email: "dup@example.com"})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileRepository_GetMissing(t *testing.T) {
	t.Parallel()

	r := newRepos(t)

	_, err := r.profiles.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.profiles.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepository_UpdatePartial(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	ctx := context.Background()
	p := r.profile(t, "bob@example.com", "Coffee enthusiast", "Taurus")

	bio := "Coffee enthusiast and tech lover"
	tier := domain.TierPremium
	verified := true
	require.NoError(t, r.profiles.Update(ctx, p.ID, &domain.ProfileUpdate{
		Bio:              &bio,
		SubscriptionTier: &tier,
		Verified:         &verified,
	}))

	got, err := r.profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, bio, got.Bio)
	require.Equal(t, domain.TierPremium, got.SubscriptionTier)
	require.True(t, got.Verified)
	require.Equal(t, "Taurus", got.Zodiac)
	require.Equal(t, p.Name, got.Name)
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	name := "Ghost"

	err := r.profiles.Update(context.Background(), 999, &domain.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)

	err = r.profiles.Update(context.Background(), 999, &domain.ProfileUpdate{})
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfileRepository_UpdateEmptyOnExisting(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	p := r.profile(t, "carol@example.com", "Foodie", "Gemini")

	require.NoError(t, r.profiles.Update(context.Background(), p.ID, &domain.ProfileUpdate{}))
}

func TestProfileRepository_ListWithBioMatches(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	hiker := r.profile(t, "a@example.com", "Love hiking and photography", "Libra")
	short := r.profile(t, "b@example.com", "hiking", "Aries")
	coffee := r.profile(t, "c@example.com", "Coffee", "Leo")
	empty := r.profile(t, "d@example.com", "", "Leo")
	upper := r.profile(t, "e@example.com", "HIKING", "Leo")

	list, err := r.profiles.ListWithBioMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)

	counts := make(map[int64]int, len(list))
	for _, p := range list {
		counts[p.ID] = p.BioMatches
	}
	// An empty bio is contained in every bio, as with LIKE '%%'.
	require.Equal(t, 2, counts[hiker.ID])
	require.Equal(t, 2, counts[short.ID])
	require.Equal(t, 1, counts[coffee.ID])
	require.Equal(t, 4, counts[empty.ID])
	require.Equal(t, 1, counts[upper.ID])
}

func TestProfileRepository_ListWithBioMatchesEmptyBio(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	empty := r.profile(t, "a@example.com", "", "")
	coffee := r.profile(t, "b@example.com", "coffee", "")
	tea := r.profile(t, "c@example.com", "tea", "")

	list, err := r.profiles.ListWithBioMatches(context.Background())
	require.NoError(t, err)

	counts := make(map[int64]int, len(list))
	for _, p := range list {
		counts[p.ID] = p.BioMatches
	}
	require.Equal(t, map[int64]int{empty.ID: 2, coffee.ID: 1, tea.ID: 1}, counts)
}

func TestProfileRepository_StorageFault(t *testing.T) {
	t.Parallel()

	store, mock := dbtest.NewMock(t)
	repo := NewProfileRepository(store)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE id = ?").
		WithArgs(int64(7)).
		WillReturnError(errors.New("database disk image is malformed"))

	_, err := repo.GetByID(context.Background(), 7)
	require.ErrorIs(t, err, domain.ErrStorage)
	require.NotErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_UpdateStorageFault(t *testing.T) {
	t.Parallel()

	store, mock := dbtest.NewMock(t)
	repo := NewProfileRepository(store)

	name := "New"
	mock.ExpectExec("UPDATE profiles SET name = ?").
		WithArgs("New", int64(3)).
		WillReturnError(errors.New("disk full"))

	err := repo.Update(context.Background(), 3, &domain.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}
