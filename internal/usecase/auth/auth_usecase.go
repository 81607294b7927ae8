package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/gdugdh24/lovematch/internal/pkg/validate"
	"github.com/gdugdh24/lovematch/internal/repository"
	"github.com/google/uuid"
)

const (
	// maxTokenAttempts bounds the retries on a session token unique collision.
	maxTokenAttempts = 5
	// maxPasswordBytes is the most bcrypt accepts.
	maxPasswordBytes = 72
)

type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	sessionRepo repository.SessionRepository
	hasher      CredentialHasher
	current     *CurrentSession
	ttl         time.Duration
	now         func() time.Time
	newToken    func() (string, error)
}

type Option func(*AuthUseCase)

// WithSessionTTL sets how long issued sessions stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *AuthUseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// WithTokenGenerator replaces the random token source.
func WithTokenGenerator(gen func() (string, error)) Option {
	return func(uc *AuthUseCase) { uc.newToken = gen }
}

func NewAuthUseCase(
	profileRepo repository.ProfileRepository,
	sessionRepo repository.SessionRepository,
	hasher CredentialHasher,
	current *CurrentSession,
	opts ...Option,
) *AuthUseCase {
	uc := &AuthUseCase{
		profileRepo: profileRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		current:     current,
		ttl:         domain.DefaultSessionTTL,
		now:         time.Now,
		newToken:    randomToken,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RegisterInput is the data accepted at sign-up. Password is additionally
// limited to maxPasswordBytes bytes, which multi-byte runes reach sooner.
type RegisterInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	Name        string `json:"name" validate:"required,max=100"`
	Bio         string `json:"bio" validate:"max=1000"`
	Zodiac      string `json:"zodiac" validate:"max=20"`
	ImageURL    string `json:"image_url" validate:"max=500"`
	Location    string `json:"location" validate:"max=200"`
	Zipcode     string `json:"zipcode" validate:"max=20"`
	Personality string `json:"personality" validate:"max=1000"`
	Education   string `json:"education" validate:"max=1000"`
	Financial   string `json:"financial" validate:"max=1000"`
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Profile   *domain.Profile `json:"profile"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Register creates a basic-tier profile for a new email address.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*domain.Profile, error) {
	const op = "auth.AuthUseCase.Register"

	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%s: password longer than %d bytes: %w", op, maxPasswordBytes, domain.ErrInvalidInput)
	}

	_, err := uc.profileRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", op, domain.ErrEmailTaken)
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w: %w", op, domain.ErrInvalidInput, err)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = domain.DefaultImageURL
	}
	profile := &domain.Profile{
		Email:            in.Email,
		PasswordHash:     hash,
		Name:             in.Name,
		Bio:              in.Bio,
		Zodiac:           in.Zodiac,
		ImageURL:         imageURL,
		Location:         in.Location,
		Zipcode:          in.Zipcode,
		SubscriptionTier: domain.TierBasic,
		Personality:      in.Personality,
		Education:        in.Education,
		Financial:        in.Financial,
		CreatedAt:        uc.now(),
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("profile_registered", "op", op, "profile_id", profile.ID)
	return profile, nil
}

// Login checks the credentials and issues a new session. Existing sessions of
// the profile stay valid.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "auth.AuthUseCase.Login"

	logger := log.From(ctx)

	profile, err := uc.profileRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			logger.Warn("login_failed", "op", op, "reason", "unknown_email")
			return nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := uc.hasher.Compare(profile.PasswordHash, password)
	if err != nil {
		logger.Warn("login_failed", "op", op, "reason", "unreadable_hash", "profile_id", profile.ID)
		return nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}
	if !ok {
		logger.Warn("login_failed", "op", op, "reason", "wrong_password", "profile_id", profile.ID)
		return nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
	}

	token, session, err := uc.issueSession(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := uc.current.Set(ctx, &Session{Profile: profile, Token: token}); err != nil {
		logger.Warn("current_session_persist_failed", "op", op, "err", err)
	}

	logger.Info("login_succeeded", "op", op, "profile_id", profile.ID)
	return &LoginResult{Profile: profile, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

func (uc *AuthUseCase) issueSession(ctx context.Context, profileID int64) (string, *domain.AuthSession, error) {
	const op = "auth.AuthUseCase.issueSession"

	now := uc.now()
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		token, err := uc.newToken()
		if err != nil {
			return "", nil, fmt.Errorf("%s: generate token: %w: %w", op, domain.ErrStorage, err)
		}

		session := &domain.AuthSession{
			ProfileID: profileID,
			TokenHash: hashToken(token),
			ExpiresAt: now.Add(uc.ttl),
			CreatedAt: now,
		}
		err = uc.sessionRepo.Create(ctx, session)
		if err == nil {
			return token, session, nil
		}
		if !errors.Is(err, domain.ErrTokenCollision) {
			return "", nil, fmt.Errorf("%s: %w", op, err)
		}
		log.From(ctx).Warn("session_token_collision", "op", op, "attempt", attempt)
	}
	return "", nil, fmt.Errorf("%s: %w", op, domain.ErrTokenCollision)
}

// ValidateToken returns the profile owning a live session token. There is no
// nil-profile result: an empty, unknown, expired or logged-out token yields
// ErrInvalidToken instead.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, token string) (*domain.Profile, error) {
	const op = "auth.AuthUseCase.ValidateToken"

	if token == "" {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidToken)
	}

	profile, err := uc.sessionRepo.ProfileByToken(ctx, hashToken(token), uc.now())
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return profile, nil
}

// Logout deletes the session of token. Logging out twice is not an error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	const op = "auth.AuthUseCase.Logout"

	if token != "" {
		if err := uc.sessionRepo.DeleteByToken(ctx, hashToken(token)); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if cur := uc.current.Get(); cur != nil && cur.Token == token {
		if err := uc.current.Clear(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	log.From(ctx).Info("logout", "op", op)
	return nil
}

// CurrentSession returns the last resolved session, or nil.
func (uc *AuthUseCase) CurrentSession() *Session {
	return uc.current.Get()
}

// SetCurrentSession replaces the current session. nil clears it.
func (uc *AuthUseCase) SetCurrentSession(ctx context.Context, s *Session) error {
	const op = "auth.AuthUseCase.SetCurrentSession"

	if err := uc.current.Set(ctx, s); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Restore resumes the session whose token was persisted by an earlier
// process. A stale token is forgotten and Restore returns nil.
func (uc *AuthUseCase) Restore(ctx context.Context) (*Session, error) {
	const op = "auth.AuthUseCase.Restore"

	logger := log.From(ctx)

	token, err := uc.current.persistedToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if token == "" {
		return nil, nil
	}

	session, err := uc.sessionRepo.GetByToken(ctx, hashToken(token))
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return uc.forgetStale(ctx, op, "unknown_token")
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	case !session.Valid(uc.now()):
		return uc.forgetStale(ctx, op, "expired")
	}

	profile, err := uc.profileRepo.GetByID(ctx, session.ProfileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return uc.forgetStale(ctx, op, "profile_missing")
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Session{Profile: profile, Token: token}
	uc.current.remember(s)
	logger.Info("session_restored", "op", op, "profile_id", profile.ID)
	return uc.current.Get(), nil
}

func (uc *AuthUseCase) forgetStale(ctx context.Context, op, reason string) (*Session, error) {
	log.From(ctx).Info("session_restore_stale", "op", op, "reason", reason)
	if err := uc.current.Clear(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return nil, nil
}

// PurgeExpiredSessions deletes session rows that are no longer valid and
// returns how many were removed.
func (uc *AuthUseCase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	const op = "auth.AuthUseCase.PurgeExpiredSessions"

	n, err := uc.sessionRepo.DeleteExpired(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		log.From(ctx).Info("expired_sessions_purged", "op", op, "count", n)
	}
	return n, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
