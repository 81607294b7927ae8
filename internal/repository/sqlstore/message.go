package sqlstore

import (
	"context"
	"fmt"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/repository"
)

type messageRow struct {
	ID       int64  `db:"id"`
	MatchID  int64  `db:"match_id"`
	SenderID int64  `db:"sender_id"`
	Content  string `db:"content"`
	SentAt   int64  `db:"sent_at"`
	Read     bool   `db:"is_read"`
}

func (r *messageRow) toDomain() *domain.Message {
	return &domain.Message{
		ID:       r.ID,
		MatchID:  r.MatchID,
		SenderID: r.SenderID,
		Content:  r.Content,
		SentAt:   fromMillis(r.SentAt),
		Read:     r.Read,
	}
}

type messageRepository struct {
	store *database.Store
}

func NewMessageRepository(store *database.Store) repository.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	const op = "sqlstore.message.Create"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msg.SentAt = stamp(msg.SentAt)

	query := `
		INSERT INTO messages (match_id, sender_id, content, sent_at, is_read)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`
	err = db.QueryRowxContext(ctx, db.Rebind(query),
		msg.MatchID, msg.SenderID, msg.Content, toMillis(msg.SentAt), msg.Read,
	).Scan(&msg.ID)
	if err != nil {
		return storageErr(op, err)
	}
	return nil
}

// ListRecent orders by timestamp, newest first; ties go to the later insert.
func (r *messageRepository) ListRecent(ctx context.Context, matchID int64, limit int) ([]*domain.Message, error) {
	const op = "sqlstore.message.ListRecent"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, match_id, sender_id, content, sent_at, is_read
		FROM messages
		WHERE match_id = ?
		ORDER BY sent_at DESC, id DESC
		LIMIT ?
	`
	var rows []messageRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), matchID, limit); err != nil {
		return nil, storageErr(op, err)
	}

	out := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
