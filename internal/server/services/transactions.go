package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
)

// TransactionInput is the writable part of a transaction. A zero Date
// means "now".
type TransactionInput struct {
	Amount decimal.Decimal
	Note   string
	Date   time.Time
}

// TransactionService manages the transactions of a user's categories.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *TransactionService {
	return &TransactionService{
		db:          db,
		repomanager: m,
		logger:      logger.With("module", "transactions"),
		now:         time.Now,
	}
}

// List returns the transactions of categoryID. A foreign or missing
// category yields an empty list.
func (s *TransactionService) List(ctx context.Context, g tenancy.Guard, categoryID int64) ([]*models.Transaction, error) {
	list, err := s.repomanager.Transactions(s.db).List(ctx, g, categoryID)
	if err != nil {
		return nil, wrapInternal("list transactions", err)
	}
	return list, nil
}

func (s *TransactionService) Get(ctx context.Context, g tenancy.Guard, categoryID, id int64) (*models.Transaction, error) {
	t, err := s.repomanager.Transactions(s.db).Get(ctx, g, categoryID, id)
	if err != nil {
		return nil, wrapInternal("get transaction", err)
	}
	return t, nil
}

// Create adds a transaction to categoryID. Amounts need at most 2 decimal
// places and a magnitude below 10^12. The insert is a single
// statement scoped by the category's owner, so the category total reflects
// it as soon as it returns. A foreign category is common.ErrBadRequest.
func (s *TransactionService) Create(ctx context.Context, g tenancy.Guard, categoryID int64, in TransactionInput) (*models.Transaction, error) {
	amount, err := checkAmount("amount", in.Amount)
	if err != nil {
		return nil, err
	}

	t, err := s.repomanager.Transactions(s.db).Create(ctx, g, &models.Transaction{
		CategoryID:      categoryID,
		Amount:          amount,
		Note:            in.Note,
		TransactionDate: s.dateOrNow(in.Date),
	})
	if err != nil {
		return nil, wrapInternal("create transaction", err)
	}

	s.logger.Debug(ctx, "transaction created", "user_id", g.UserID(), "category_id", categoryID, "transaction_id", t.ID)
	return t, nil
}

// Update overwrites amount, note and date. No matching owned transaction is
// common.ErrBadRequest.
func (s *TransactionService) Update(ctx context.Context, g tenancy.Guard, categoryID, id int64, in TransactionInput) error {
	amount, err := checkAmount("amount", in.Amount)
	if err != nil {
		return err
	}

	err = s.repomanager.Transactions(s.db).Update(ctx, g, &models.Transaction{
		ID:              id,
		CategoryID:      categoryID,
		Amount:          amount,
		Note:            in.Note,
		TransactionDate: s.dateOrNow(in.Date),
	})
	if errors.Is(err, common.ErrorNotFound) {
		return badRequest("transaction not found")
	}
	return wrapInternal("update transaction", err)
}

func (s *TransactionService) Delete(ctx context.Context, g tenancy.Guard, categoryID, id int64) error {
	err := s.repomanager.Transactions(s.db).Delete(ctx, g, categoryID, id)
	return wrapInternal("delete transaction", err)
}

func (s *TransactionService) dateOrNow(d time.Time) time.Time {
	if d.IsZero() || d.UnixMilli() == 0 {
		return s.now()
	}
	return d
}
