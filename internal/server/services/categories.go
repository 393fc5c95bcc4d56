package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
)

// CategoryService manages a user's categories. Totals are always derived
// from the transactions on read.
type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *CategoryService {
	return &CategoryService{db: db, repomanager: m, logger: logger.With("module", "categories")}
}

func (s *CategoryService) List(ctx context.Context, g tenancy.Guard) ([]*models.Category, error) {
	list, err := s.repomanager.Categories(s.db).List(ctx, g)
	if err != nil {
		return nil, wrapInternal("list categories", err)
	}
	return list, nil
}

func (s *CategoryService) Get(ctx context.Context, g tenancy.Guard, id int64) (*models.Category, error) {
	c, err := s.repomanager.Categories(s.db).Get(ctx, g, id)
	if err != nil {
		return nil, wrapInternal("get category", err)
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, g tenancy.Guard, title, description string) (*models.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, badRequest("title must not be empty")
	}

	c, err := s.repomanager.Categories(s.db).Create(ctx, g, &models.Category{Title: title, Description: description})
	if err != nil {
		return nil, wrapInternal("create category", err)
	}
	return c, nil
}

// Update changes title and description. A category the principal does not
// own is reported as common.ErrBadRequest.
func (s *CategoryService) Update(ctx context.Context, g tenancy.Guard, id int64, title, description string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return badRequest("title must not be empty")
	}

	err := s.repomanager.Categories(s.db).Update(ctx, g, &models.Category{ID: id, Title: title, Description: description})
	if errors.Is(err, common.ErrorNotFound) {
		return badRequest("category not found")
	}
	return wrapInternal("update category", err)
}

// Delete removes the category's transactions and then the category in one
// database transaction. A category the principal does not own is
// common.ErrorNotFound and nothing is deleted.
func (s *CategoryService) Delete(ctx context.Context, g tenancy.Guard, id int64) error {
	var removed int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		categories := s.repomanager.Categories(tx)

		if _, err := categories.Get(ctx, g, id); err != nil {
			return err
		}

		n, err := s.repomanager.Transactions(tx).DeleteByCategory(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return categories.Delete(ctx, g, id)
	})
	if err != nil {
		return wrapInternal("delete category", err)
	}

	s.logger.Info(ctx, "category deleted", "user_id", g.UserID(), "category_id", id, "transactions", removed)
	return nil
}
