package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

func (a *App) Transactions(ctx context.Context) error {
	categoryID, err := GetID(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	list, err := a.api.ListTransactions(ctx, categoryID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No transactions")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tNOTE")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Date().Format(dateLayout), t.Amount.StringFixed(2), t.Note)
	}
	return tw.Flush()
}

// AddTransaction records an expense. An empty date lets the server use now.
func (a *App) AddTransaction(ctx context.Context) error {
	categoryID, err := GetID(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	note, err := a.prompt("Note (optional)")
	if err != nil {
		return err
	}
	date, err := GetDate(a.reader, "Date YYYY-MM-DD (empty for today)", a.out)
	if err != nil {
		return err
	}

	in := models.TransactionInput{Amount: amount, Note: note}
	if !date.IsZero() {
		in.TransactionDate = date.UnixMilli()
	}

	t, err := a.api.CreateTransaction(ctx, categoryID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created transaction %d\n", t.ID)
	return nil
}

func (a *App) DeleteTransaction(ctx context.Context) error {
	categoryID, err := GetID(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	id, err := GetID(a.reader, "Transaction id", a.out)
	if err != nil {
		return err
	}
	if err := a.api.DeleteTransaction(ctx, categoryID, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
