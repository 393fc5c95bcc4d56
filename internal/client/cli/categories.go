package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/expensetracker/internal/client/models"
)

// Categories prints every category with its running total.
func (a *App) Categories(ctx context.Context) error {
	list, err := a.api.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No categories yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTOTAL\tDESCRIPTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Title, c.TotalExpense.StringFixed(2), c.Description)
	}
	return tw.Flush()
}

func (a *App) readCategoryInput() (models.CategoryInput, error) {
	title, err := GetRequiredText(a.reader, "Title", a.out)
	if err != nil {
		return models.CategoryInput{}, err
	}
	description, err := a.prompt("Description (optional)")
	if err != nil {
		return models.CategoryInput{}, err
	}
	return models.CategoryInput{Title: title, Description: description}, nil
}

func (a *App) AddCategory(ctx context.Context) error {
	in, err := a.readCategoryInput()
	if err != nil {
		return err
	}
	c, err := a.api.CreateCategory(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created category %d\n", c.ID)
	return nil
}

func (a *App) EditCategory(ctx context.Context) error {
	id, err := GetID(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	in, err := a.readCategoryInput()
	if err != nil {
		return err
	}
	if err := a.api.UpdateCategory(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Updated")
	return nil
}

// DeleteCategory removes a category together with all of its transactions
// after an explicit confirmation.
func (a *App) DeleteCategory(ctx context.Context) error {
	id, err := GetID(a.reader, "Category id", a.out)
	if err != nil {
		return err
	}
	answer, err := a.prompt("This also deletes all transactions of the category. Type 'yes' to confirm")
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.api.DeleteCategory(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
