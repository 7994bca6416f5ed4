// Package dbtest opens throwaway sqlite databases with the bootstrap schema
// for package tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur-trivia/internal/database"
)

// New returns an empty in-memory database with every table created.  It is
// closed when the test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err, "open sqlite")
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Bootstrap(context.Background(), db, "sqlite"), "bootstrap schema")
	return db
}
