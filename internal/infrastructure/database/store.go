package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gdugdh24/lovematch/internal/config"
	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Opener opens a connection pool to the engine. It is called once per
// initialization attempt.
type Opener func(ctx context.Context) (*sqlx.DB, error)

type state int

const (
	stateUninitialized state = iota
	stateInitializing
	stateReady
	stateFailed
	stateClosed
)

// initAttempt is shared by every caller that arrives while it runs.
type initAttempt struct {
	done chan struct{}
	db   *sqlx.DB
	err  error
}

// Store owns the single engine instance. The first Acquire opens it and
// creates the schema; concurrent callers wait for that attempt instead of
// starting their own. A failed attempt is not cached, so the next Acquire
// tries again.
type Store struct {
	dialect  Dialect
	open     Opener
	attempts int
	backoff  time.Duration

	mu       sync.Mutex
	state    state
	db       *sqlx.DB
	inflight *initAttempt

	schemaPasses atomic.Int64
}

type Option func(*Store)

// WithInitRetry bounds the number of initialization attempts made by one
// Acquire and sets the first backoff interval between them.
func WithInitRetry(attempts int, interval time.Duration) Option {
	return func(s *Store) {
		if attempts > 0 {
			s.attempts = attempts
		}
		if interval >= 0 {
			s.backoff = interval
		}
	}
}

func NewStore(dialect Dialect, open Opener, opts ...Option) *Store {
	s := &Store{
		dialect:  dialect,
		open:     open,
		attempts: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStoreFromConfig picks the dialect and opener for the configured driver.
func NewStoreFromConfig(cfg *config.Config) (*Store, error) {
	dialect, err := DialectFor(cfg.Store.Driver)
	if err != nil {
		return nil, err
	}

	var open Opener
	switch dialect.Name {
	case config.DriverPostgres:
		open = PostgresOpener(&cfg.Database)
	default:
		open = SQLiteOpener(cfg.Store.Path)
	}

	return NewStore(dialect, open, WithInitRetry(cfg.Store.InitAttempts, cfg.Store.InitBackoff)), nil
}

// SQLiteOpener opens an embedded database file. The pool is limited to one
// connection: the engine has a single writer.
func SQLiteOpener(path string) Opener {
	return func(ctx context.Context) (*sqlx.DB, error) {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}

		dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		db, err := sqlx.Open(SQLite.DriverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db.SetMaxOpenConns(1)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		return db, nil
	}
}

// PostgresOpener connects to a PostgreSQL server using sqlx.
func PostgresOpener(cfg *config.DatabaseConfig) Opener {
	return func(ctx context.Context) (*sqlx.DB, error) {
		db, err := sqlx.Open(Postgres.DriverName, cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Configure connection pool
		db.SetMaxIdleConns(10)
		db.SetMaxOpenConns(100)
		db.SetConnMaxLifetime(time.Hour)

		// Test connection
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return db, nil
	}
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Acquire returns the shared handle, initializing it on first use.
func (s *Store) Acquire(ctx context.Context) (*sqlx.DB, error) {
	const op = "database.Store.Acquire"

	s.mu.Lock()
	switch s.state {
	case stateReady:
		db := s.db
		s.mu.Unlock()
		return db, nil
	case stateClosed:
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, domain.ErrStoreClosed)
	case stateInitializing:
		a := s.inflight
		s.mu.Unlock()
		select {
		case <-a.done:
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, ctx.Err())
		}
		return a.db, a.err
	}

	a := &initAttempt{done: make(chan struct{})}
	s.state = stateInitializing
	s.inflight = a
	s.mu.Unlock()

	db, err := s.initialize(ctx)

	s.mu.Lock()
	switch {
	case s.state == stateClosed:
		if db != nil {
			db.Close()
		}
		db, err = nil, fmt.Errorf("%s: %w", op, domain.ErrStoreClosed)
	case err != nil:
		s.state = stateFailed
		err = fmt.Errorf("%s: %w", op, err)
	default:
		s.state = stateReady
		s.db = db
	}
	a.db, a.err = db, err
	s.inflight = nil
	close(a.done)
	s.mu.Unlock()

	return db, err
}

// initialize opens the engine and creates the schema, retrying with
// exponential backoff up to s.attempts times.
func (s *Store) initialize(ctx context.Context) (*sqlx.DB, error) {
	const op = "database.Store.initialize"

	lg := log.From(ctx)

	var db *sqlx.DB
	attempt := func() error {
		conn, err := s.open(ctx)
		if err != nil {
			return err
		}
		if err := s.createSchema(ctx, conn); err != nil {
			conn.Close()
			return err
		}
		db = conn
		return nil
	}

	notify := func(err error, wait time.Duration) {
		lg.Warn("store_init_retry",
			slog.String("op", op),
			slog.String("dialect", s.dialect.Name),
			slog.Duration("wait", wait),
			slog.String("err", err.Error()),
		)
	}

	if err := backoff.RetryNotify(attempt, s.newBackOff(ctx), notify); err != nil {
		lg.Error("store_init_failed",
			slog.String("op", op),
			slog.String("dialect", s.dialect.Name),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}

	lg.Info("store_ready", slog.String("dialect", s.dialect.Name))
	return db, nil
}

func (s *Store) newBackOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff = &backoff.ZeroBackOff{}
	if s.backoff > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = s.backoff
		exp.MaxElapsedTime = 0
		exp.Reset()
		b = exp
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(s.attempts-1)), ctx)
}

func (s *Store) createSchema(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema: %w", err)
	}
	for _, stmt := range s.dialect.Schema() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	s.schemaPasses.Add(1)
	return nil
}

// InTx runs fn in a transaction. The transaction commits only if fn returns
// nil; any error or panic rolls it back.
func (s *Store) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	const op = "database.Store.InTx"

	db, err := s.Acquire(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.From(ctx).Error("tx_rollback_failed",
					slog.String("op", op),
					slog.String("err", rbErr.Error()),
				)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	committed = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
	return nil
}

// Close releases the engine. Acquire fails with ErrStoreClosed afterwards.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	db := s.db
	s.db = nil
	s.state = stateClosed
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
