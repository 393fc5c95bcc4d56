// Package transactions stores individual expenses. Dates are persisted as
// epoch milliseconds.
package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
)

const transactionColumns = `id, category_id, user_id, amount, note, transaction_date`

type SQLRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context, g tenancy.Guard, categoryID int64) ([]*models.Transaction, error) {
	owner, uid := g.Where("user_id", 2)
	query :=
		`SELECT ` + transactionColumns + ` FROM transactions
		 WHERE category_id = $1 AND ` + owner + `
		 ORDER BY transaction_date, id
		 `

	rows, err := r.db.QueryContext(ctx, query, categoryID, uid)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tenancy.Filter(g, result), nil
}

func (r *SQLRepository) Get(ctx context.Context, g tenancy.Guard, categoryID, id int64) (*models.Transaction, error) {
	owner, uid := g.Where("user_id", 3)
	query :=
		`SELECT ` + transactionColumns + ` FROM transactions
		 WHERE id = $1 AND category_id = $2 AND ` + owner

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, categoryID, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tenancy.Admit(g, t)
}

// Create copies category and owner from the matching category row, so a
// category that is missing or foreign inserts nothing.
func (r *SQLRepository) Create(ctx context.Context, g tenancy.Guard, t *models.Transaction) (*models.Transaction, error) {
	if !g.Valid() {
		return nil, common.ErrNoPrincipal
	}

	owner, uid := g.Where("c.user_id", 2)
	query :=
		`INSERT INTO transactions (category_id, user_id, amount, note, transaction_date)
		 SELECT c.id, c.user_id, CAST($3 AS NUMERIC), CAST($4 AS TEXT), CAST($5 AS BIGINT)
		 FROM categories c
		 WHERE c.id = $1 AND ` + owner + `
		 RETURNING ` + transactionColumns

	created, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		t.CategoryID, uid, t.Amount, t.Note, t.TransactionDate.UnixMilli()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrBadRequest
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *SQLRepository) Update(ctx context.Context, g tenancy.Guard, t *models.Transaction) error {
	owner, uid := g.Where("user_id", 6)
	query :=
		`UPDATE transactions SET amount = $1, note = $2, transaction_date = $3
		 WHERE id = $4 AND category_id = $5 AND ` + owner

	res, err := r.db.ExecContext(ctx, query,
		t.Amount, t.Note, t.TransactionDate.UnixMilli(), t.ID, t.CategoryID, uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, g tenancy.Guard, categoryID, id int64) error {
	owner, uid := g.Where("user_id", 3)
	query := `DELETE FROM transactions WHERE id = $1 AND category_id = $2 AND ` + owner

	res, err := r.db.ExecContext(ctx, query, id, categoryID, uid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

func (r *SQLRepository) DeleteByCategory(ctx context.Context, categoryID int64) (int64, error) {
	query := `DELETE FROM transactions WHERE category_id = $1`

	res, err := r.db.ExecContext(ctx, query, categoryID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var dateMillis int64
	if err := s.Scan(&t.ID, &t.CategoryID, &t.UserID, &t.Amount, &t.Note, &dateMillis); err != nil {
		return nil, err
	}
	t.TransactionDate = time.UnixMilli(dateMillis).UTC()
	return t, nil
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
