package categories

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
)

// Repository reads and writes categories scoped to a tenancy.Guard.
// Reads return TotalExpense computed from the category's transactions.
type Repository interface {
	List(ctx context.Context, g tenancy.Guard) ([]*models.Category, error)
	Get(ctx context.Context, g tenancy.Guard, id int64) (*models.Category, error)
	Create(ctx context.Context, g tenancy.Guard, c *models.Category) (*models.Category, error)
	// Update changes title and description; common.ErrorNotFound when no
	// owned row matched.
	Update(ctx context.Context, g tenancy.Guard, c *models.Category) error
	// Delete removes the category row only; common.ErrorNotFound when no
	// owned row matched.
	Delete(ctx context.Context, g tenancy.Guard, id int64) error
}
