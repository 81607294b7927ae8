package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdugdh24/lovematch/internal/config"
	"github.com/gdugdh24/lovematch/internal/infrastructure/container"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, cfg.Logging.Level).With("env", cfg.Env)
	ctx, stop := signal.NotifyContext(log.Into(context.Background(), logger), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("app_failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.From(ctx)

	app, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("app_close_failed", "err", err)
		}
	}()

	// Open the store and create the schema before anything else touches it.
	if _, err := app.Store.Acquire(ctx); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	session, err := app.Auth.Restore(ctx)
	if err != nil {
		logger.Warn("session_restore_failed", "err", err)
	} else if session != nil {
		logger.Info("session_resumed", "profile_id", session.Profile.ID)
	}

	logger.Info("app_started", "driver", cfg.Store.Driver)

	<-ctx.Done()

	logger.Info("app_stopping")
	return nil
}
