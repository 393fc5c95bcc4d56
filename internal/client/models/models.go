// Package models holds the client-side shapes of the REST API resources.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

// Transaction carries its date as epoch milliseconds, as on the wire.
type Transaction struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"categoryId"`
	UserID          int64           `json:"userId"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate int64           `json:"transactionDate"`
}

func (t *Transaction) Date() time.Time {
	return time.UnixMilli(t.TransactionDate).UTC()
}

type Budget struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type CategoryInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TransactionInput leaves TransactionDate at 0 to let the server use now.
type TransactionInput struct {
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate int64           `json:"transactionDate"`
}
