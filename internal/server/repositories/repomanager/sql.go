// Package repomanager provides a concrete RepositoryManager for PostgreSQL
// and SQLite, wiring together repository constructors and database
// migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/migrations"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/categories"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// SQLRepositoryManager vends database/sql backed repositories. The SQL is
// shared between dialects; only migrations differ.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	logger  logging.Logger
}

var _ RepositoryManager = (*SQLRepositoryManager)(nil)

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect, logger logging.Logger) (*SQLRepositoryManager, error) {
	if _, err := migrations.Dir(string(dialect)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &SQLRepositoryManager{dialect: dialect, logger: logger}, nil
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Transactions(db dbx.DBTX) transactions.Repository {
	return transactions.NewSQLRepository(db)
}

func (m *SQLRepositoryManager) Budgets(db dbx.DBTX) budgets.Repository {
	return budgets.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

func gooseDialect(d dbx.Dialect) goose.Dialect {
	if d == dbx.DialectSQLite {
		return goose.DialectSQLite3
	}
	return goose.DialectPostgres
}

// RunMigrations sets up goose with the embedded migrations for the
// manager's dialect and applies them to db.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	dir, err := migrations.Dir(string(m.dialect))
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{ctx: ctx, l: m.logger.With("module", "migrations")})
	if err := goose.SetDialect(string(gooseDialect(m.dialect))); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through logging.Logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.l.Info(g.ctx, fmt.Sprintf(format, v...))
}

func (g *gooseLogger) Fatalf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	g.l.Error(g.ctx, msg)
	panic(msg)
}
