package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect identifies the SQL engine behind a DSN.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// postgres unique_violation
const pgUniqueViolation = "23505"

// DetectDialect picks the engine from the DSN scheme. postgres:// and
// postgresql:// select pgx; file: and sqlite: select the embedded SQLite.
func DetectDialect(dsn string) (Dialect, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, nil
	case strings.HasPrefix(dsn, "file:"), strings.HasPrefix(dsn, "sqlite:"):
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("unsupported database dsn %q", dsn)
}

// Open opens a *sql.DB for the DSN and reports its dialect.
//
// SQLite connections are limited to a single open connection: writes are
// serialized by the engine anyway, and in-memory databases only live as long
// as their connection.
func Open(dsn string) (*sql.DB, Dialect, error) {
	dialect, err := DetectDialect(dsn)
	if err != nil {
		return nil, "", err
	}

	switch dialect {
	case DialectPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("db open error: %w", err)
		}
		return db, dialect, nil
	default:
		db, err := sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, "", fmt.Errorf("db open error: %w", err)
		}
		db.SetMaxOpenConns(1)
		return db, dialect, nil
	}
}

// sqliteDSN strips the sqlite: scheme and turns on foreign key enforcement,
// which SQLite leaves off per connection by default.
func sqliteDSN(dsn string) string {
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// IsUniqueViolation reports whether err was caused by a unique constraint
// in either supported engine.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// extended result codes disabled on this connection
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}
