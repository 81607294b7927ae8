package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/repository"
)

var profileColumns = []string{
	"id", "email", "password_hash", "name", "bio", "zodiac", "image_url", "location", "zipcode",
	"verified", "verification_type", "subscription_tier", "personality", "education", "financial",
	"created_at",
}

type profileRow struct {
	ID               int64  `db:"id"`
	Email            string `db:"email"`
	PasswordHash     string `db:"password_hash"`
	Name             string `db:"name"`
	Bio              string `db:"bio"`
	Zodiac           string `db:"zodiac"`
	ImageURL         string `db:"image_url"`
	Location         string `db:"location"`
	Zipcode          string `db:"zipcode"`
	Verified         bool   `db:"verified"`
	VerificationType string `db:"verification_type"`
	SubscriptionTier string `db:"subscription_tier"`
	Personality      string `db:"personality"`
	Education        string `db:"education"`
	Financial        string `db:"financial"`
	CreatedAt        int64  `db:"created_at"`
}

func (r *profileRow) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:               r.ID,
		Email:            r.Email,
		PasswordHash:     r.PasswordHash,
		Name:             r.Name,
		Bio:              r.Bio,
		Zodiac:           r.Zodiac,
		ImageURL:         r.ImageURL,
		Location:         r.Location,
		Zipcode:          r.Zipcode,
		Verified:         r.Verified,
		VerificationType: r.VerificationType,
		SubscriptionTier: domain.SubscriptionTier(r.SubscriptionTier),
		Personality:      r.Personality,
		Education:        r.Education,
		Financial:        r.Financial,
		CreatedAt:        fromMillis(r.CreatedAt),
	}
}

type profileRepository struct {
	store *database.Store
}

func NewProfileRepository(store *database.Store) repository.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	const op = "sqlstore.profile.Create"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if profile.SubscriptionTier == "" {
		profile.SubscriptionTier = domain.TierBasic
	}
	profile.CreatedAt = stamp(profile.CreatedAt)

	query := `
		INSERT INTO profiles (
			email, password_hash, name, bio, zodiac, image_url, location, zipcode,
			verified, verification_type, subscription_tier, personality, education, financial,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	err = db.QueryRowxContext(ctx, db.Rebind(query),
		profile.Email, profile.PasswordHash, profile.Name, profile.Bio, profile.Zodiac,
		profile.ImageURL, profile.Location, profile.Zipcode,
		profile.Verified, profile.VerificationType, string(profile.SubscriptionTier),
		profile.Personality, profile.Education, profile.Financial,
		toMillis(profile.CreatedAt),
	).Scan(&profile.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, domain.ErrEmailTaken)
		}
		return storageErr(op, err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	return r.getOne(ctx, "sqlstore.profile.GetByID", "id", id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, "sqlstore.profile.GetByEmail", "email", email)
}

func (r *profileRepository) getOne(ctx context.Context, op, column string, value any) (*domain.Profile, error) {
	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var row profileRow
	query := `SELECT ` + strings.Join(profileColumns, ", ") + ` FROM profiles WHERE ` + column + ` = ?`
	if err := db.GetContext(ctx, &row, db.Rebind(query), value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrProfileNotFound)
		}
		return nil, storageErr(op, err)
	}
	return row.toDomain(), nil
}

func (r *profileRepository) Update(ctx context.Context, id int64, update *domain.ProfileUpdate) error {
	const op = "sqlstore.profile.Update"

	if update == nil || update.IsEmpty() {
		if _, err := r.GetByID(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Bio != nil {
		set("bio", *update.Bio)
	}
	if update.Zodiac != nil {
		set("zodiac", *update.Zodiac)
	}
	if update.ImageURL != nil {
		set("image_url", *update.ImageURL)
	}
	if update.Location != nil {
		set("location", *update.Location)
	}
	if update.Zipcode != nil {
		set("zipcode", *update.Zipcode)
	}
	if update.Verified != nil {
		set("verified", *update.Verified)
	}
	if update.VerificationType != nil {
		set("verification_type", *update.VerificationType)
	}
	if update.SubscriptionTier != nil {
		set("subscription_tier", string(*update.SubscriptionTier))
	}
	if update.Personality != nil {
		set("personality", *update.Personality)
	}
	if update.Education != nil {
		set("education", *update.Education)
	}
	if update.Financial != nil {
		set("financial", *update.Financial)
	}

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE profiles SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := db.ExecContext(ctx, db.Rebind(query), append(args, id)...)
	if err != nil {
		return storageErr(op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr(op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrProfileNotFound)
	}
	return nil
}

type profileBioMatchesRow struct {
	profileRow
	BioMatches int `db:"bio_matches"`
}

func (r *profileRepository) ListWithBioMatches(ctx context.Context) ([]*domain.ProfileWithBioMatches, error) {
	const op = "sqlstore.profile.ListWithBioMatches"

	db, err := r.store.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := r.store.Dialect()
	query := `
		SELECT ` + qualify("p", profileColumns) + `,
		       (SELECT COUNT(*)
		          FROM profiles p2
		         WHERE p2.id <> p.id
		           AND ` + d.Overlap("p.bio", "p2.bio") + `) AS bio_matches
		FROM profiles p
		ORDER BY p.id
	`
	var rows []profileBioMatchesRow
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storageErr(op, err)
	}

	out := make([]*domain.ProfileWithBioMatches, 0, len(rows))
	for i := range rows {
		out = append(out, &domain.ProfileWithBioMatches{
			Profile:    *rows[i].toDomain(),
			BioMatches: rows[i].BioMatches,
		})
	}
	return out, nil
}
