package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a private in-memory SQLite database with all migrations
// applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate(context.Background()), "failed to apply migrations")
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
