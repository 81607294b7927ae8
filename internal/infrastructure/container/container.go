package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdugdh24/lovematch/internal/config"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/gdugdh24/lovematch/internal/repository"
	"github.com/gdugdh24/lovematch/internal/repository/redisstore"
	"github.com/gdugdh24/lovematch/internal/repository/sqlstore"
	"github.com/gdugdh24/lovematch/internal/usecase/auth"
	"github.com/gdugdh24/lovematch/internal/usecase/match"
	"github.com/gdugdh24/lovematch/internal/usecase/message"
	"github.com/gdugdh24/lovematch/internal/usecase/profile"
	"github.com/redis/go-redis/v9"
)

// Container holds the process-wide services. It is built once at startup
// and closed at exit.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *database.Store
	Redis  *redis.Client

	Auth     *auth.AuthUseCase
	Profiles *profile.ProfileUseCase
	Matches  *match.MatchUseCase
	Messages *message.MessageUseCase
}

// NewContainer wires repositories and use cases. The store is opened lazily
// on first use; redis is connected eagerly when configured.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	store, err := database.NewStoreFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	var (
		redisClient *redis.Client
		tokens      repository.SessionTokenStore
	)
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		tokens = redisstore.NewSessionTokenStore(redisClient, cfg.Redis.KeyPrefix)
	} else {
		logger.Info("redis_disabled", "detail", "current session is kept in memory only")
	}

	profileRepo := sqlstore.NewProfileRepository(store)
	sessionRepo := sqlstore.NewSessionRepository(store)
	matchRepo := sqlstore.NewMatchRepository(store)
	messageRepo := sqlstore.NewMessageRepository(store)

	authUseCase := auth.NewAuthUseCase(
		profileRepo,
		sessionRepo,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewCurrentSession(tokens, cfg.Auth.SessionTTL),
		auth.WithSessionTTL(cfg.Auth.SessionTTL),
	)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Redis:    redisClient,
		Auth:     authUseCase,
		Profiles: profile.NewProfileUseCase(profileRepo),
		Matches:  match.NewMatchUseCase(matchRepo, profileRepo),
		Messages: message.NewMessageUseCase(messageRepo, matchRepo),
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close store: %w", err))
		}
	}

	return errors.Join(errs...)
}
