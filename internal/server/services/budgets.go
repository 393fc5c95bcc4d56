package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
)

// BudgetService reads and writes the single budget of a user.
type BudgetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBudgetService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *BudgetService {
	return &BudgetService{db: db, repomanager: m, logger: logger.With("module", "budgets")}
}

// Get returns the principal's budget or common.ErrorNotFound before the
// first Set.
func (s *BudgetService) Get(ctx context.Context, g tenancy.Guard) (*models.Budget, error) {
	b, err := s.repomanager.Budgets(s.db).Get(ctx, g)
	if err != nil {
		return nil, wrapInternal("get budget", err)
	}
	return b, nil
}

// Set creates or overwrites the budget. Negative amounts are rejected.
func (s *BudgetService) Set(ctx context.Context, g tenancy.Guard, total decimal.Decimal) (*models.Budget, error) {
	if total.IsNegative() {
		return nil, badRequest("budget must not be negative")
	}
	total, err := checkAmount("budget", total)
	if err != nil {
		return nil, err
	}

	b, err := s.repomanager.Budgets(s.db).Upsert(ctx, g, total)
	if err != nil {
		return nil, wrapInternal("set budget", err)
	}
	return b, nil
}
