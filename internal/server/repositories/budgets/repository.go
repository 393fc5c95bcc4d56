package budgets

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Get(ctx context.Context, g tenancy.Guard) (*models.Budget, error)
	// Upsert creates the principal's budget or overwrites its amount.
	Upsert(ctx context.Context, g tenancy.Guard, total decimal.Decimal) (*models.Budget, error)
}
