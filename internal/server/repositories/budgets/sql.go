// Package budgets stores the single budget row each user may have.
package budgets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
)

type SQLRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Get(ctx context.Context, g tenancy.Guard) (*models.Budget, error) {
	owner, uid := g.Where("user_id", 1)
	query := `SELECT id, user_id, total_budget FROM budgets WHERE ` + owner

	b := &models.Budget{}
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&b.ID, &b.UserID, &b.TotalBudget)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tenancy.Admit(g, b)
}

// Upsert relies on the UNIQUE (user_id) constraint to keep one row per user.
func (r *SQLRepository) Upsert(ctx context.Context, g tenancy.Guard, total decimal.Decimal) (*models.Budget, error) {
	if !g.Valid() {
		return nil, common.ErrNoPrincipal
	}

	query :=
		`INSERT INTO budgets (user_id, total_budget)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET total_budget = EXCLUDED.total_budget
		 RETURNING id, user_id, total_budget
		 `

	b := &models.Budget{}
	err := r.db.QueryRowContext(ctx, query, g.UserID(), total).Scan(&b.ID, &b.UserID, &b.TotalBudget)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}
