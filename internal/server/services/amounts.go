package services

import (
	"github.com/shopspring/decimal"
)

// amountLimit is the first magnitude NUMERIC(14,2) cannot hold.
var amountLimit = decimal.New(1, 12)

// checkAmount rejects values with sub-cent digits or outside NUMERIC(14,2)
// and returns the amount at scale 2, so both storage engines keep the same
// value.
func checkAmount(field string, d decimal.Decimal) (decimal.Decimal, error) {
	if !d.Equal(d.Round(2)) {
		return decimal.Zero, badRequest(field + " must have at most 2 decimal places")
	}
	if d.Abs().GreaterThanOrEqual(amountLimit) {
		return decimal.Zero, badRequest(field + " is out of range")
	}
	return d.Round(2), nil
}
