package models

import "github.com/shopspring/decimal"

// Budget is the single spending limit a user may set.
type Budget struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	TotalBudget decimal.Decimal `json:"totalBudget"`
}

func (b *Budget) OwnerID() int64 { return b.UserID }
