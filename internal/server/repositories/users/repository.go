package users

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
)

type Repository interface {
	// Create stores user and fills in its id. A duplicate email yields
	// common.ErrEmailAlreadyInUse.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
