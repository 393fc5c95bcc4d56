// Package storetest opens migrated databases for tests of the store layers.
//
// Open always returns an in-memory SQLite database. Backends additionally
// yields PostgreSQL when TEST_DATABASE_URL is set.
package storetest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// EnvPostgresURL names the variable holding a disposable Postgres DSN.
const EnvPostgresURL = "TEST_DATABASE_URL"

// Store bundles an open, migrated database with its repository manager.
type Store struct {
	DB      *sql.DB
	Manager *repomanager.SQLRepositoryManager
	Dialect dbx.Dialect
}

// Open returns a fresh migrated in-memory SQLite store closed on cleanup.
func Open(t testing.TB) *Store {
	t.Helper()
	return open(t, fmt.Sprintf("file:st_%s?mode=memory&cache=shared", uuid.NewString()))
}

// OpenPostgres returns a migrated store on TEST_DATABASE_URL with all tables
// emptied, or skips the test when the variable is unset.
func OpenPostgres(t testing.TB) *Store {
	t.Helper()
	dsn := os.Getenv(EnvPostgresURL)
	if dsn == "" {
		t.Skipf("%s not set", EnvPostgresURL)
	}
	s := open(t, dsn)
	truncate := func() {
		_, err := s.DB.Exec(`TRUNCATE budgets, transactions, categories, users RESTART IDENTITY`)
		require.NoError(t, err)
	}
	truncate()
	t.Cleanup(truncate)
	return s
}

// Backends runs fn once per available backend as a subtest.
func Backends(t *testing.T, fn func(t *testing.T, s *Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, Open(t)) })
	t.Run("postgres", func(t *testing.T) { fn(t, OpenPostgres(t)) })
}

func open(t testing.TB, dsn string) *Store {
	t.Helper()

	db, dialect, err := dbx.Open(dsn)
	require.NoError(t, err)

	m, err := repomanager.NewSQLRepositoryManager(dialect, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background(), db))

	t.Cleanup(func() { db.Close() })
	return &Store{DB: db, Manager: m, Dialect: dialect}
}

// CreateUser inserts a user with a placeholder hash and returns it.
func (s *Store) CreateUser(t testing.TB, email string) *models.User {
	t.Helper()
	u, err := s.Manager.Users(s.DB).Create(context.Background(), &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return u
}
