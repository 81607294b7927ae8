// Package dbtest builds stores for tests: a real embedded database in a
// temporary directory, or a sqlmock-backed one for driver-fault paths.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gdugdh24/lovematch/internal/infrastructure/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewSQLite returns an initialized store backed by a fresh database file.
func NewSQLite(t *testing.T) *database.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store := database.NewStore(database.SQLite, database.SQLiteOpener(path))
	t.Cleanup(func() { _ = store.Close() })

	_, err := store.Acquire(context.Background())
	require.NoError(t, err)
	return store
}

// NewMock returns a store whose engine is a sqlmock. The schema pass is
// already expected and consumed, so callers only set expectations for the
// statements under test.
func NewMock(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(raw, "sqlmock")
	store := database.NewStore(database.SQLite, func(context.Context) (*sqlx.DB, error) {
		return db, nil
	})
	t.Cleanup(func() { _ = store.Close() })

	ExpectSchema(mock, database.SQLite)
	_, err = store.Acquire(context.Background())
	require.NoError(t, err)
	return store, mock
}

// ExpectSchema registers the statements of one schema pass.
func ExpectSchema(mock sqlmock.Sqlmock, d database.Dialect) {
	mock.ExpectBegin()
	for range d.Schema() {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()
}
