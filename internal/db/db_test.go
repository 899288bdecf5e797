package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *db.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:db-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestMigrate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := openMemory(t)

	require.NoError(t, database.Migrate(ctx))
	require.NoError(t, database.Migrate(ctx))

	versions, err := database.AppliedMigrations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_tests.sql"}, versions)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := db.Open(context.Background(), "mysql", "root@/edu")
	assert.ErrorContains(t, err, "unsupported")
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	database := openMemory(t)
	require.NoError(t, database.Migrate(ctx))

	insert := func() error {
		_, err := database.Builder().
			Insert("user_achievements").
			Columns("user_id", "achievement_id", "earned_at").
			Values("u1", "first-lesson", "2024-01-01 00:00:00").
			RunWith(database.DB).
			ExecContext(ctx)
		return err
	}

	require.NoError(t, insert())
	err := insert()
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
	assert.False(t, db.IsUniqueViolation(fmt.Errorf("plain")))
	assert.False(t, db.IsUniqueViolation(nil))
}

func TestBuilder_Placeholders(t *testing.T) {
	database := openMemory(t)

	query, _, err := database.Builder().Select("id").From("courses").Where("id = ?", "c1").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM courses WHERE id = ?", query)
}

func TestTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	database := openMemory(t)
	require.NoError(t, database.Migrate(ctx))

	boom := fmt.Errorf("boom")
	err := database.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO user_points (user_id, points, updated_at) VALUES ('u1', 5, '2024-01-01 00:00:00')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, database.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_points`).Scan(&n))
	assert.Equal(t, 0, n)
}
