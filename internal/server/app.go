// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/config"
	"github.com/dmitrijs2005/expensetracker/internal/server/httpapi"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/dmitrijs2005/expensetracker/internal/server/telemetry"
	"golang.org/x/sync/errgroup"
)

const serviceName = "expensetracker"

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	server    *httpapi.HTTPServer
	telemetry telemetry.ShutdownFunc
}

// NewApp opens the database, applies migrations and builds the HTTP stack.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, c.LogLevel, os.Stdout)

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: serviceName,
		Stdout:      c.TraceStdout,
	})
	if err != nil {
		return nil, fmt.Errorf("telemetry init error: %w", err)
	}

	db, dialect, err := dbx.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db, dialect)
	if err != nil {
		_ = db.Close()
		_ = shutdownTelemetry(ctx)
		return nil, err
	}
	app.telemetry = shutdownTelemetry

	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, dialect dbx.Dialect) (*App, error) {
	rm, err := repomanager.NewSQLRepositoryManager(dialect, logger)
	if err != nil {
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewJWTService(auth.TokenConfig{
		Secret:   []byte(c.SecretKey),
		Validity: c.TokenValidityDuration,
	})
	if err != nil {
		return nil, err
	}

	users, err := services.NewUserService(db, rm, hasher, logger)
	if err != nil {
		return nil, err
	}

	h := httpapi.NewHandlers(httpapi.Deps{
		Users:        users,
		Categories:   services.NewCategoryService(db, rm, logger),
		Transactions: services.NewTransactionService(db, rm, logger),
		Budgets:      services.NewBudgetService(db, rm, logger),
		Tokens:       tokens,
		Logger:       logger,
	})
	router := httpapi.NewRouter(h, httpapi.RouterOptions{AllowedOrigins: c.CORSAllowedOrigins})

	logger.Info(ctx, "storage ready", "dialect", string(dialect))

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		server:    httpapi.NewHTTPServer(c.EndpointAddrHTTP, router, logger),
		telemetry: func(context.Context) error { return nil },
	}, nil
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or ctx cancellation, then
// releases the database and flushes telemetry.
func (app *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.EndpointAddrHTTP)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.EndpointAddrHTTP, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.server.Serve(gctx, ln)
	})
	runErr := g.Wait()

	app.logger.Info(context.Background(), "Shutting down...")

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return errors.Join(runErr, app.db.Close(), app.telemetry(flushCtx))
}
