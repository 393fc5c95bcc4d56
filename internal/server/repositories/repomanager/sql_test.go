package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/categories"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewSQLRepositoryManager(t *testing.T) {
	m, err := NewSQLRepositoryManager(dbx.DialectPostgres, nil)
	require.NoError(t, err)
	var _ RepositoryManager = m

	_, err = NewSQLRepositoryManager(dbx.Dialect("oracle"), logging.Nop())
	require.Error(t, err)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	m, err := NewSQLRepositoryManager(dbx.DialectSQLite, logging.Nop())
	require.NoError(t, err)

	assert.IsType(t, &users.SQLRepository{}, m.Users(db))
	assert.IsType(t, &categories.SQLRepository{}, m.Categories(db))
	assert.IsType(t, &transactions.SQLRepository{}, m.Transactions(db))
	assert.IsType(t, &budgets.SQLRepository{}, m.Budgets(db))
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestRunMigrations_UsesDialectDir(t *testing.T) {
	for _, d := range []dbx.Dialect{dbx.DialectPostgres, dbx.DialectSQLite} {
		t.Run(string(d), func(t *testing.T) {
			var gotDir string
			stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
				gotDir = dir
				return nil
			})

			m, err := NewSQLRepositoryManager(d, logging.Nop())
			require.NoError(t, err)
			require.NoError(t, m.RunMigrations(context.Background(), newDB(t)))
			assert.Equal(t, string(d), gotDir)
		})
	}
}

func TestRunMigrations_Error(t *testing.T) {
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	m, err := NewSQLRepositoryManager(dbx.DialectPostgres, logging.Nop())
	require.NoError(t, err)

	err = m.RunMigrations(context.Background(), newDB(t))
	require.ErrorContains(t, err, "boom")
}

func TestRunMigrations_SQLite(t *testing.T) {
	db, dialect, err := dbx.Open(fmt.Sprintf("file:rm_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m, err := NewSQLRepositoryManager(dialect, logging.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, m.RunMigrations(ctx, db))
	require.NoError(t, m.RunMigrations(ctx, db), "second run is a no-op")

	for _, table := range []string{"users", "categories", "transactions", "budgets"} {
		var n int
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}
