package client

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
	"github.com/shopspring/decimal"
)

// Client is the API surface the CLI talks to.
type Client interface {
	Ping(ctx context.Context) error

	Register(ctx context.Context, in models.RegisterInput) error
	Login(ctx context.Context, email, password string) error
	Logout()
	LoggedIn() bool

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) error
	DeleteCategory(ctx context.Context, id int64) error

	ListTransactions(ctx context.Context, categoryID int64) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, categoryID int64, in models.TransactionInput) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, categoryID, id int64, in models.TransactionInput) error
	DeleteTransaction(ctx context.Context, categoryID, id int64) error

	GetBudget(ctx context.Context) (*models.Budget, error)
	SetBudget(ctx context.Context, total decimal.Decimal) (*models.Budget, error)
}
