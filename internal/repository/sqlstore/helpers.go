package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/bbaxromov14/eduhelper/internal/logger"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return utcNow()
	}
	return t.UTC()
}

// nullableTime converts a scanned timestamp. SQLite yields the zero time
// for text it cannot parse; such values are reported and treated as absent.
func nullableTime(log *logger.Logger, nt sql.NullTime, what string) *time.Time {
	if !nt.Valid {
		return nil
	}
	if nt.Time.IsZero() {
		log.Warn("ignoring unreadable %s timestamp", what)
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// creditPoints adds points to the user's running total inside tx.
func creditPoints(ctx context.Context, b squirrel.StatementBuilderType, tx *sql.Tx, userID string, points int, at time.Time) error {
	if points <= 0 {
		return nil
	}
	_, err := b.Insert("user_points").
		Columns("user_id", "points", "updated_at").
		Values(userID, points, at).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET points = user_points.points + excluded.points, updated_at = excluded.updated_at").
		RunWith(tx).
		ExecContext(ctx)
	return err
}
