package match

import (
	"context"
	"testing"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database/dbtest"
	"github.com/gdugdh24/lovematch/internal/repository"
	"github.com/gdugdh24/lovematch/internal/repository/sqlstore"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	uc       *MatchUseCase
	profiles repository.ProfileRepository
	messages repository.MessageRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := dbtest.NewSQLite(t)
	profiles := sqlstore.NewProfileRepository(store)
	return &fixture{
		uc:       NewMatchUseCase(sqlstore.NewMatchRepository(store), profiles),
		profiles: profiles,
		messages: sqlstore.NewMessageRepository(store),
	}
}

func (f *fixture) profile(t *testing.T, email, zodiac, bio string) *domain.Profile {
	t.Helper()

	p := &domain.Profile{Email: email, Name: email, Zodiac: zodiac, Bio: bio}
	require.NoError(t, f.profiles.Create(context.Background(), p))
	return p
}

func TestCreateMatch_Scoring(t *testing.T) {
	tests := []struct {
		name        string
		zodiacA     string
		zodiacB     string
		bioA        string
		bioB        string
		wantScore   int
		wantDetails domain.CompatibilityDetails
	}{
		{"same sign", "Libra", "Libra", "coffee", "tea", 70, domain.CompatibilityDetails{Zodiac: 20}},
		{"listed compatible", "Aries", "Leo", "coffee", "tea", 65, domain.CompatibilityDetails{Zodiac: 15}},
		{"other sign", "Aries", "Taurus", "coffee", "tea", 55, domain.CompatibilityDetails{Zodiac: 5}},
		{"same sign with bio overlap", "Libra", "Libra", "coffee and books", "books", 80,
			domain.CompatibilityDetails{Zodiac: 20, Interests: 10}},
		{"listed compatible with bio overlap", "Aries", "Leo", "books", "coffee and books", 75,
			domain.CompatibilityDetails{Zodiac: 15, Interests: 10}},
		{"other sign with bio overlap", "Aries", "Taurus", "coffee and books", "books", 65,
			domain.CompatibilityDetails{Zodiac: 5, Interests: 10}},
		{"sign case ignored", "libra", "LIBRA", "coffee", "tea", 70, domain.CompatibilityDetails{Zodiac: 20}},
		{"missing sign", "", "Leo", "coffee", "tea", 50, domain.CompatibilityDetails{}},
		{"empty bio adds no score", "", "", "", "tea", 50, domain.CompatibilityDetails{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.profile(t, "a@example.com", tt.zodiacA, tt.bioA)
			b := f.profile(t, "b@example.com", tt.zodiacB, tt.bioB)

			m, err := f.uc.CreateMatch(context.Background(), a.ID, b.ID)
			require.NoError(t, err)
			require.Equal(t, tt.wantScore, m.CompatibilityScore)
			require.Equal(t, tt.wantDetails, m.CompatibilityDetails)
			require.Equal(t, domain.MatchPending, m.Status)

			stored, err := f.uc.GetByID(context.Background(), m.ID)
			require.NoError(t, err)
			require.Equal(t, m, stored)
		})
	}
}

func TestCreateMatch_MissingProfile(t *testing.T) {
	f := newFixture(t)
	a := f.profile(t, "a@example.com", "Leo", "")

	_, err := f.uc.CreateMatch(context.Background(), a.ID, 999)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.CreateMatch(context.Background(), 999, a.ID)
	require.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListMatches_BothSides(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a@example.com", "Leo", "long walks on the beach")
	b := f.profile(t, "b@example.com", "Aries", "the beach")
	c := f.profile(t, "c@example.com", "Pisces", "chess")

	ab, err := f.uc.CreateMatch(ctx, a.ID, b.ID)
	require.NoError(t, err)
	ca, err := f.uc.CreateMatch(ctx, c.ID, a.ID)
	require.NoError(t, err)

	views, err := f.uc.ListMatches(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, ab.ID, views[0].ID)
	require.Equal(t, b.ID, views[0].Counterpart.ID)
	require.True(t, views[0].IsBioMatch)
	require.Equal(t, ca.ID, views[1].ID)
	require.Equal(t, c.ID, views[1].Counterpart.ID)
	require.False(t, views[1].IsBioMatch)

	views, err = f.uc.ListMatches(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, a.ID, views[0].Counterpart.ID)
	require.True(t, views[0].IsBioMatch)

	views, err = f.uc.ListMatches(ctx, 999)
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a@example.com", "", "")
	b := f.profile(t, "b@example.com", "", "")
	m, err := f.uc.CreateMatch(ctx, a.ID, b.ID)
	require.NoError(t, err)

	for _, status := range []domain.MatchStatus{domain.MatchAccepted, domain.MatchRejected, domain.MatchPending, domain.MatchAccepted} {
		require.NoError(t, f.uc.UpdateStatus(ctx, m.ID, status))
		got, err := f.uc.GetByID(ctx, m.ID)
		require.NoError(t, err)
		require.Equal(t, status, got.Status)
	}

	err = f.uc.UpdateStatus(ctx, m.ID, "maybe")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	require.ErrorIs(t, err, domain.ErrValidation)

	err = f.uc.UpdateStatus(ctx, 999, domain.MatchAccepted)
	require.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestDeleteMatch_RemovesMessages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.profile(t, "a@example.com", "", "")
	b := f.profile(t, "b@example.com", "", "")
	c := f.profile(t, "c@example.com", "", "")

	m, err := f.uc.CreateMatch(ctx, a.ID, b.ID)
	require.NoError(t, err)
	other, err := f.uc.CreateMatch(ctx, a.ID, c.ID)
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		require.NoError(t, f.messages.Create(ctx, &domain.Message{MatchID: m.ID, SenderID: a.ID, Content: "hi"}))
	}
	require.NoError(t, f.messages.Create(ctx, &domain.Message{MatchID: other.ID, SenderID: c.ID, Content: "yo"}))

	require.NoError(t, f.uc.DeleteMatch(ctx, m.ID))

	msgs, err := f.messages.ListRecent(ctx, m.ID, domain.MessageWindow)
	require.NoError(t, err)
	require.Empty(t, msgs)

	for _, id := range []int64{a.ID, b.ID} {
		views, err := f.uc.ListMatches(ctx, id)
		require.NoError(t, err)
		for _, v := range views {
			require.NotEqual(t, m.ID, v.ID)
		}
	}

	msgs, err = f.messages.ListRecent(ctx, other.ID, domain.MessageWindow)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = f.uc.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, domain.ErrMatchNotFound)

	err = f.uc.DeleteMatch(ctx, m.ID)
	require.ErrorIs(t, err, domain.ErrMatchNotFound)
}
