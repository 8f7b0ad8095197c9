// Package dbtest opens throwaway SQLite databases with the blog schema for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/infrastructure/database"
)

// New returns an in-memory SQLite database with the schema applied.
// It is closed automatically when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.OpenSQLite(ctx, database.InMemory)
	require.NoError(t, err)

	require.NoError(t, database.EnsureSchema(ctx, db, database.DialectSQLite))

	t.Cleanup(func() { _ = db.Close() })
	return db
}
