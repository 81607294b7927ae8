package sqlstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_CreateAndList(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	ctx := context.Background()
	a := r.profile(t, "a@example.com", "", "")
	b := r.profile(t, "b@example.com", "", "")
	m := r.match(t, a.ID, b.ID)

	msg := &domain.Message{MatchID: m.ID, SenderID: a.ID, Content: "hello"}
	require.NoError(t, r.messages.Create(ctx, msg))
	require.NotZero(t, msg.ID)
	require.False(t, msg.SentAt.IsZero())

	list, err := r.messages.ListRecent(ctx, m.ID, domain.MessageWindow)
	require.NoError(t, err)
	require.Equal(t, []*domain.Message{msg}, list)
}

func TestMessageRepository_ListRecentWindowAndOrder(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	ctx := context.Background()
	a := r.profile(t, "a@example.com", "", "")
	b := r.profile(t, "b@example.com", "", "")
	m := r.match(t, a.ID, b.ID)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 60; i++ {
		// pairs of messages share a timestamp
		msg := &domain.Message{
			MatchID:  m.ID,
			SenderID: a.ID,
			Content:  fmt.Sprintf("m%02d", i),
			SentAt:   base.Add(time.Duration(i/2) * time.Second),
		}
		require.NoError(t, r.messages.Create(ctx, msg))
		ids = append(ids, msg.ID)
	}

	list, err := r.messages.ListRecent(ctx, m.ID, domain.MessageWindow)
	require.NoError(t, err)
	require.Len(t, list, domain.MessageWindow)

	for i, msg := range list {
		require.Equal(t, ids[59-i], msg.ID, "position %d", i)
	}
	require.Equal(t, "m59", list[0].Content)
	require.Equal(t, "m10", list[len(list)-1].Content)
}

func TestMessageRepository_ListEmpty(t *testing.T) {
	t.Parallel()

	r := newRepos(t)
	list, err := r.messages.ListRecent(context.Background(), 1, domain.MessageWindow)
	require.NoError(t, err)
	require.Empty(t, list)
}
