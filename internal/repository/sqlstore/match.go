package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/repository"
	"github.com/jmoiron/sqlx"
)

type matchRow struct {
	ID         int64                       `db:"id"`
	Profile1ID int64                       `db:"profile1_id"`
	Profile2ID int64                       `db:"profile2_id"`
	Status     string                      `db:"status"`
	Score      int                         `db:"compatibility_score"`
	Details    domain.CompatibilityDetails `db:"compatibility_details"`
	CreatedAt  int64                       `db:"created_at"`
}

func (r *matchRow) toDomain() *domain.Match {
	return &domain.Match{
		ID:                   r.ID,
		Profile1ID:           r.Profile1ID,
		Profile2ID:           r.Profile2ID,
		Status:               domain.MatchStatus(r.Status),
		CompatibilityScore:   r.Score,
		CompatibilityDetails: r.Details,
		CreatedAt:            fromMillis(r.CreatedAt),
	}
}

// matchViewRow is one match joined with the counterpart's profile. Match
// columns that collide with profile columns are aliased.
type matchViewRow struct {
	profileRow
	MatchID        int64                       `db:"match_id"`
	Profile1ID     int64                       `db:"profile1_id"`
	Profile2ID     int64                       `db:"profile2_id"`
	Status         string                      `db:"status"`
	Score          int                         `db:"compatibility_score"`
	Details        domain.CompatibilityDetails `db:"compatibility_details"`
	MatchCreatedAt int64                       `db:"match_created_at"`
	IsBioMatch     bool                        `db:"is_bio_match"`
}

func (r *matchViewRow) toDomain() *domain.MatchView {
	return &domain.MatchView{
		Match: domain.Match{
			ID:                   r.MatchID,
			Profile1ID:           r.Profile1ID,
			Profile2ID:           r.Profile2ID,
			Status:               domain.MatchStatus(r.Status),
			CompatibilityScore:   r.Score,
			CompatibilityDetails: r.Details,
			CreatedAt:            fromMillis(r.MatchCreatedAt),
		},
		Counterpart: *r.profileRow.toDomain(),
		IsBioMatch:  r.IsBioMatch,
	}
}

type matchRepository struct {
	store *database.Store
}

func NewMatchRepository(store *database.Store) repository.MatchRepository {
	return &matchRepository{store: store}
}

// Create stores the match as given; the pair is neither ordered nor
// checked for duplicates.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	const op = "sqlstore.match.Create"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if match.Status == "" {
		match.Status = domain.MatchPending
	}
	match.CreatedAt = stamp(match.CreatedAt)

	query := `
		INSERT INTO matches (profile1_id, profile2_id, status, compatibility_score, compatibility_details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err = db.QueryRowxContext(ctx, db.Rebind(query),
		match.Profile1ID, match.Profile2ID, string(match.Status),
		match.CompatibilityScore, match.CompatibilityDetails, toMillis(match.CreatedAt),
	).Scan(&match.ID)
	if err != nil {
		return storageErr(op, err)
	}
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (*domain.Match, error) {
	const op = "sqlstore.match.GetByID"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT id, profile1_id, profile2_id, status, compatibility_score, compatibility_details, created_at
		FROM matches
		WHERE id = ?
	`
	var row matchRow
	if err := db.GetContext(ctx, &row, db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrMatchNotFound)
		}
		return nil, storageErr(op, err)
	}
	return row.toDomain(), nil
}

func (r *matchRepository) ListViews(ctx context.Context, profileID int64) ([]*domain.MatchView, error) {
	const op = "sqlstore.match.ListViews"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := r.store.Dialect()
	query := `
		SELECT m.id AS match_id, m.profile1_id, m.profile2_id, m.status,
		       m.compatibility_score, m.compatibility_details, m.created_at AS match_created_at,
		       ` + qualify("p", profileColumns) + `,
		       CASE WHEN ` + d.Overlap("p.bio", "me.bio") + ` THEN 1 ELSE 0 END AS is_bio_match
		FROM matches m
		JOIN profiles p ON (m.profile1_id = p.id OR m.profile2_id = p.id)
		LEFT JOIN profiles me ON me.id = ?
		WHERE (m.profile1_id = ? OR m.profile2_id = ?) AND p.id <> ?
		ORDER BY m.id
	`
	var rows []matchViewRow
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), profileID, profileID, profileID, profileID); err != nil {
		return nil, storageErr(op, err)
	}

	views := make([]*domain.MatchView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toDomain())
	}
	return views, nil
}

func (r *matchRepository) UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus) error {
	const op = "sqlstore.match.UpdateStatus"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := db.ExecContext(ctx, db.Rebind(`UPDATE matches SET status = ? WHERE id = ?`), string(status), id)
	if err != nil {
		return storageErr(op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrMatchNotFound)
	}
	return nil
}

func (r *matchRepository) DeleteWithMessages(ctx context.Context, id int64) error {
	const op = "sqlstore.match.DeleteWithMessages"

	return r.store.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM messages WHERE match_id = ?`), id); err != nil {
			return storageErr(op, err)
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM matches WHERE id = ?`), id)
		if err != nil {
			return storageErr(op, err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return storageErr(op, err)
		}
		if rows == 0 {
			return fmt.Errorf("%s: %w", op, domain.ErrMatchNotFound)
		}
		return nil
	})
}
