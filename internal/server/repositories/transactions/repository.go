package transactions

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
)

// Repository reads and writes transactions scoped to a tenancy.Guard and
// to their parent category.
type Repository interface {
	List(ctx context.Context, g tenancy.Guard, categoryID int64) ([]*models.Transaction, error)
	Get(ctx context.Context, g tenancy.Guard, categoryID, id int64) (*models.Transaction, error)
	// Create inserts t only if its category is owned by the principal;
	// otherwise common.ErrBadRequest.
	Create(ctx context.Context, g tenancy.Guard, t *models.Transaction) (*models.Transaction, error)
	Update(ctx context.Context, g tenancy.Guard, t *models.Transaction) error
	Delete(ctx context.Context, g tenancy.Guard, categoryID, id int64) error
	// DeleteByCategory removes every transaction of categoryID. Callers
	// must have admitted the category for the principal first.
	DeleteByCategory(ctx context.Context, categoryID int64) (int64, error)
}
