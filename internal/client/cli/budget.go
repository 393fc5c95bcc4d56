package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/expensetracker/internal/client/client"
	"github.com/shopspring/decimal"
)

// Budget shows the budget next to the sum of all category totals.
func (a *App) Budget(ctx context.Context) error {
	b, err := a.api.GetBudget(ctx)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 404 {
		fmt.Fprintln(a.out, "No budget set, use 'setbudget'")
		return nil
	}
	if err != nil {
		return err
	}

	categories, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	spent := decimal.Zero
	for _, c := range categories {
		spent = spent.Add(c.TotalExpense)
	}

	fmt.Fprintf(a.out, "Budget:    %s\n", b.TotalBudget.StringFixed(2))
	fmt.Fprintf(a.out, "Spent:     %s\n", spent.StringFixed(2))
	fmt.Fprintf(a.out, "Remaining: %s\n", b.TotalBudget.Sub(spent).StringFixed(2))
	return nil
}

func (a *App) SetBudget(ctx context.Context) error {
	total, err := GetAmount(a.reader, "Total budget", a.out)
	if err != nil {
		return err
	}
	b, err := a.api.SetBudget(ctx, total)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Budget set to %s\n", b.TotalBudget.StringFixed(2))
	return nil
}
