package httpapi

import (
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/shopspring/decimal"
)

// amount encodes as a bare JSON number with the decimal's exact digits.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	return (*decimal.Decimal)(a).UnmarshalJSON(b)
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type categoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	TotalExpense amount `json:"totalExpense"`
}

func newCategoryResponse(c *models.Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		Title:        c.Title,
		Description:  c.Description,
		TotalExpense: amount(c.TotalExpense),
	}
}

func newCategoryResponses(list []*models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, newCategoryResponse(c))
	}
	return out
}

// transactionRequest carries the date as epoch milliseconds; 0 means now.
type transactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate int64           `json:"transactionDate"`
}

type transactionResponse struct {
	ID              int64  `json:"id"`
	CategoryID      int64  `json:"categoryId"`
	UserID          int64  `json:"userId"`
	Amount          amount `json:"amount"`
	Note            string `json:"note"`
	TransactionDate int64  `json:"transactionDate"`
}

func newTransactionResponse(t *models.Transaction) transactionResponse {
	return transactionResponse{
		ID:              t.ID,
		CategoryID:      t.CategoryID,
		UserID:          t.UserID,
		Amount:          amount(t.Amount),
		Note:            t.Note,
		TransactionDate: t.TransactionDate.UnixMilli(),
	}
}

func dateFromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

type budgetRequest struct {
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

type budgetResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	TotalBudget amount `json:"totalBudget"`
}

func newBudgetResponse(b *models.Budget) budgetResponse {
	return budgetResponse{ID: b.ID, UserID: b.UserID, TotalBudget: amount(b.TotalBudget)}
}

type successResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}
