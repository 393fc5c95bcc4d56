package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"categoryId"`
	UserID          int64           `json:"userId"`
	Amount          decimal.Decimal `json:"amount"`
	Note            string          `json:"note"`
	TransactionDate time.Time       `json:"-"`
}

func (t *Transaction) OwnerID() int64 { return t.UserID }
