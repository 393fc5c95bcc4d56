// Package categories stores expense categories and derives their totals
// from the transactions table on every read.
package categories

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

// selectWithTotal is completed with a WHERE predicate on c. The LEFT JOIN
// keeps categories that have no transactions. The sum runs over whole cents
// so SQLite, which keeps amounts as REAL, adds exact integers.
const selectWithTotal = `SELECT c.id, c.user_id, c.title, c.description,
		 COALESCE(SUM(ROUND(t.amount * 100)), 0) AS total_cents
		 FROM categories c
		 LEFT JOIN transactions t ON t.category_id = c.id
		 WHERE `

const groupByCategory = `
		 GROUP BY c.id, c.user_id, c.title, c.description
		 ORDER BY c.id
		 `

type SQLRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context, g tenancy.Guard) ([]*models.Category, error) {
	owner, uid := g.Where("c.user_id", 1)
	query := selectWithTotal + owner + groupByCategory

	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tenancy.Filter(g, result), nil
}

func (r *SQLRepository) Get(ctx context.Context, g tenancy.Guard, id int64) (*models.Category, error) {
	owner, uid := g.Where("c.user_id", 2)
	query := selectWithTotal + "c.id = $1 AND " + owner + groupByCategory

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tenancy.Admit(g, c)
}

func (r *SQLRepository) Create(ctx context.Context, g tenancy.Guard, c *models.Category) (*models.Category, error) {
	if !g.Valid() {
		return nil, common.ErrNoPrincipal
	}

	query :=
		`INSERT INTO categories (user_id, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, g.UserID(), c.Title, c.Description).Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	c.UserID = g.UserID()
	c.TotalExpense = decimal.Zero

	return c, nil
}

func (r *SQLRepository) Update(ctx context.Context, g tenancy.Guard, c *models.Category) error {
	owner, uid := g.Where("user_id", 4)
	query :=
		`UPDATE categories SET title = $1, description = $2
		 WHERE id = $3 AND ` + owner

	res, err := r.db.ExecContext(ctx, query, c.Title, c.Description, c.ID, uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, g tenancy.Guard, id int64) error {
	owner, uid := g.Where("user_id", 2)
	query := `DELETE FROM categories WHERE id = $1 AND ` + owner

	res, err := r.db.ExecContext(ctx, query, id, uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(s rowScanner) (*models.Category, error) {
	c := &models.Category{}
	var cents decimal.Decimal
	if err := s.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &cents); err != nil {
		return nil, err
	}
	c.TotalExpense = cents.Shift(-2)
	return c, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
