package sqlstore

import (
	"context"
	"testing"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database/dbtest"
	"github.com/stretchr/testify/require"
)

type repos struct {
	store    *database.Store
	profiles *profileRepository
	sessions *sessionRepository
	matches  *matchRepository
	messages *messageRepository
}

func newRepos(t *testing.T) *repos {
	t.Helper()

	store := dbtest.NewSQLite(t)
	return &repos{
		store:    store,
		profiles: NewProfileRepository(store).(*profileRepository),
		sessions: NewSessionRepository(store).(*sessionRepository),
		matches:  NewMatchRepository(store).(*matchRepository),
		messages: NewMessageRepository(store).(*messageRepository),
	}
}

func (r *repos) profile(t *testing.T, email, bio, zodiac string) *domain.Profile {
	t.Helper()

	p := &domain.Profile{Email: email, Name: email, Bio: bio, Zodiac: zodiac}
	require.NoError(t, r.profiles.Create(context.Background(), p))
	return p
}

func (r *repos) match(t *testing.T, a, b int64) *domain.Match {
	t.Helper()

	m := &domain.Match{Profile1ID: a, Profile2ID: b, CompatibilityScore: 55,
		CompatibilityDetails: domain.CompatibilityDetails{Zodiac: 5}}
	require.NoError(t, r.matches.Create(context.Background(), m))
	return m
}
