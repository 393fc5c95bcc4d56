package httpapi

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
)

// UserDirectory registers users and checks credentials.
type UserDirectory interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type CategoryStore interface {
	List(ctx context.Context, g tenancy.Guard) ([]*models.Category, error)
	Get(ctx context.Context, g tenancy.Guard, id int64) (*models.Category, error)
	Create(ctx context.Context, g tenancy.Guard, title, description string) (*models.Category, error)
	Update(ctx context.Context, g tenancy.Guard, id int64, title, description string) error
	Delete(ctx context.Context, g tenancy.Guard, id int64) error
}

type TransactionStore interface {
	List(ctx context.Context, g tenancy.Guard, categoryID int64) ([]*models.Transaction, error)
	Get(ctx context.Context, g tenancy.Guard, categoryID, id int64) (*models.Transaction, error)
	Create(ctx context.Context, g tenancy.Guard, categoryID int64, in services.TransactionInput) (*models.Transaction, error)
	Update(ctx context.Context, g tenancy.Guard, categoryID, id int64, in services.TransactionInput) error
	Delete(ctx context.Context, g tenancy.Guard, categoryID, id int64) error
}

type BudgetStore interface {
	Get(ctx context.Context, g tenancy.Guard) (*models.Budget, error)
	Set(ctx context.Context, g tenancy.Guard, total decimal.Decimal) (*models.Budget, error)
}

var (
	_ UserDirectory    = (*services.UserService)(nil)
	_ CategoryStore    = (*services.CategoryService)(nil)
	_ TransactionStore = (*services.TransactionService)(nil)
	_ BudgetStore      = (*services.BudgetService)(nil)
)
