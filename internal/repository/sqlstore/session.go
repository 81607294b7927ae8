package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/repository"
)

type sessionRow struct {
	ID        int64  `db:"id"`
	ProfileID int64  `db:"profile_id"`
	TokenHash string `db:"session_token"`
	ExpiresAt int64  `db:"expires_at"`
	CreatedAt int64  `db:"created_at"`
}

func (r *sessionRow) toDomain() *domain.AuthSession {
	return &domain.AuthSession{
		ID:        r.ID,
		ProfileID: r.ProfileID,
		TokenHash: r.TokenHash,
		ExpiresAt: fromMillis(r.ExpiresAt),
		CreatedAt: fromMillis(r.CreatedAt),
	}
}

type sessionRepository struct {
	store *database.Store
}

func NewSessionRepository(store *database.Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.AuthSession) error {
	const op = "sqlstore.session.Create"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	session.CreatedAt = stamp(session.CreatedAt)
	session.ExpiresAt = fromMillis(toMillis(session.ExpiresAt))

	query := `
		INSERT INTO auth_sessions (profile_id, session_token, expires_at, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	err = db.QueryRowxContext(ctx, db.Rebind(query),
		session.ProfileID, session.TokenHash, toMillis(session.ExpiresAt), toMillis(session.CreatedAt),
	).Scan(&session.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrTokenCollision)
		}
		return storageErr(op, err)
	}
	return nil
}

func (r *sessionRepository) ProfileByToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Profile, error) {
	const op = "sqlstore.session.ProfileByToken"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT ` + qualify("p", profileColumns) + `
		FROM profiles p
		JOIN auth_sessions s ON p.id = s.profile_id
		WHERE s.session_token = ? AND s.expires_at > ?
	`
	var row profileRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), tokenHash, toMillis(now)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
		}
		return nil, storageErr(op, err)
	}
	return row.toDomain(), nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, tokenHash string) (*domain.AuthSession, error) {
	const op = "sqlstore.session.GetByToken"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, profile_id, session_token, expires_at, created_at
		FROM auth_sessions
		WHERE session_token = ?
	`
	var row sessionRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), tokenHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
		}
		return nil, storageErr(op, err)
	}
	return row.toDomain(), nil
}

// DeleteByToken is a no-op when the session is already gone.
func (r *sessionRepository) DeleteByToken(ctx context.Context, tokenHash string) error {
	const op = "sqlstore.session.DeleteByToken"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM auth_sessions WHERE session_token = ?`), tokenHash); err != nil {
		return storageErr(op, err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "sqlstore.session.DeleteExpired"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM auth_sessions WHERE expires_at <= ?`), toMillis(now))
	if err != nil {
		return 0, storageErr(op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, storageErr(op, err)
	}
	return rows, nil
}
