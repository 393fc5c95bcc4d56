package models

import "github.com/shopspring/decimal"

// Category groups a user's transactions. TotalExpense is computed on read
// as the sum of the category's transaction amounts and is never stored.
type Category struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
}

func (c *Category) OwnerID() int64 { return c.UserID }
