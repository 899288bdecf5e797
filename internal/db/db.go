package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB wraps *sql.DB with the SQL dialect of the underlying driver.
type DB struct {
	*sql.DB
	driver string
	log    *logger.Logger
}

// Open connects to driver (sqlite3 or postgres) and verifies the
// connection. Migrations are applied separately with Migrate.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	log.Info("opening %s database", driver)
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	if driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1) // single writer
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		log.Error("failed to reach database: %v", err)
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	log.Info("database ready")
	return &DB{DB: sqlDB, driver: driver, log: log}, nil
}

func (db *DB) Driver() string {
	return db.driver
}

// Builder returns a squirrel statement builder using the driver's
// placeholder format.
func (db *DB) Builder() squirrel.StatementBuilderType {
	if db.driver == DriverPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// Tx runs fn in a transaction, rolling back when fn fails. Inside fn only
// tx may be used: with SQLite the pool holds a single connection.
func (db *DB) Tx(ctx context.Context, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

// IsUniqueViolation reports whether err is a unique or primary key
// constraint failure from either supported driver.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}

// sqliteDSN adds the connection options the store relies on unless the
// caller already set them.
func sqliteDSN(dsn string) string {
	opts := [][2]string{
		{"_busy_timeout", "5000"},
		{"_foreign_keys", "on"},
	}
	if !strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, ":memory:") {
		opts = append(opts, [2]string{"_journal_mode", "WAL"}, [2]string{"_synchronous", "NORMAL"})
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	var b strings.Builder
	b.WriteString(dsn)
	for _, o := range opts {
		if strings.Contains(dsn, o[0]+"=") {
			continue
		}
		b.WriteString(sep)
		b.WriteString(o[0])
		b.WriteByte('=')
		b.WriteString(o[1])
		sep = "&"
	}
	return b.String()
}
