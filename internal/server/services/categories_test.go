package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/dbx"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/categories"
	"github.com/dmitrijs2005/expensetracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/expensetracker/internal/server/storetest"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countTransactions(t *testing.T, s *storetest.Store, categoryID int64) int {
	t.Helper()
	var n int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestCategoryService_LiveTotals(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

		food, err := cats.Create(ctx, g, "Food", "groceries")
		require.NoError(t, err)
		requireDecimal(t, "0", food.TotalExpense)

		empty, err := cats.Create(ctx, g, "Travel", "")
		require.NoError(t, err)

		_, err = txs.Create(ctx, g, food.ID, TransactionInput{Amount: dec("10.00"), Note: "bread"})
		require.NoError(t, err)
		_, err = txs.Create(ctx, g, food.ID, TransactionInput{Amount: dec("15.50"), Note: "cheese"})
		require.NoError(t, err)

		got, err := cats.Get(ctx, g, food.ID)
		require.NoError(t, err)
		requireDecimal(t, "25.5", got.TotalExpense)

		list, err := cats.List(ctx, g)
		require.NoError(t, err)
		require.Len(t, list, 2, "a category without transactions is still listed")
		assert.Equal(t, food.ID, list[0].ID)
		requireDecimal(t, "25.5", list[0].TotalExpense)
		assert.Equal(t, empty.ID, list[1].ID)
		requireDecimal(t, "0", list[1].TotalExpense)
	})
}

func TestCategoryService_TotalIsExactSum(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{name: "with a refund", amounts: []string{"10.0", "20.5", "-5.0"}, want: "25.5"},
		{name: "binary-inexact cents", amounts: []string{"0.10", "0.20"}, want: "0.3"},
		{name: "many small amounts", amounts: []string{"0.01", "0.01", "0.01", "0.07", "0.10", "0.10", "0.10", "0.60"}, want: "1"},
		{name: "cancelling out", amounts: []string{"19.99", "-19.99"}, want: "0"},
		{name: "large", amounts: []string{"999999999.99", "0.01", "0.33"}, want: "1000000000.33"},
	}

	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c, err := cats.Create(ctx, g, tt.name, "")
				require.NoError(t, err)

				for _, a := range tt.amounts {
					_, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec(a)})
					require.NoError(t, err)
				}

				got, err := cats.Get(ctx, g, c.ID)
				require.NoError(t, err)
				requireDecimal(t, tt.want, got.TotalExpense)

				list, err := cats.List(ctx, g)
				require.NoError(t, err)
				var found bool
				for _, l := range list {
					if l.ID == c.ID {
						found = true
						requireDecimal(t, tt.want, l.TotalExpense)
					}
				}
				require.True(t, found)
			})
		}
	})
}

func TestCategoryService_TenantIsolation(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		alice := guardFor(t, s.CreateUser(t, "alice@example.com").ID)
		bob := guardFor(t, s.CreateUser(t, "bob@example.com").ID)

		c, err := cats.Create(ctx, alice, "Rent", "")
		require.NoError(t, err)

		_, err = cats.Get(ctx, bob, c.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		list, err := cats.List(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, list)

		err = cats.Update(ctx, bob, c.ID, "Mine now", "")
		require.ErrorIs(t, err, common.ErrBadRequest)

		got, err := cats.Get(ctx, alice, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rent", got.Title)
	})
}

func TestCategoryService_Update(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()
	cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
	g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

	c, err := cats.Create(ctx, g, "Food", "")
	require.NoError(t, err)

	require.NoError(t, cats.Update(ctx, g, c.ID, "Groceries", "weekly"))
	got, err := cats.Get(ctx, g, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.Equal(t, "weekly", got.Description)

	require.ErrorIs(t, cats.Update(ctx, g, c.ID, "  ", ""), common.ErrBadRequest)
	require.ErrorIs(t, cats.Update(ctx, g, 9999, "X", ""), common.ErrBadRequest)

	_, err = cats.Create(ctx, g, "", "")
	require.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCategoryService_DeleteCascades(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

		doomed, err := cats.Create(ctx, g, "Doomed", "")
		require.NoError(t, err)
		kept, err := cats.Create(ctx, g, "Kept", "")
		require.NoError(t, err)

		for _, amount := range []string{"1", "2", "3"} {
			_, err := txs.Create(ctx, g, doomed.ID, TransactionInput{Amount: dec(amount)})
			require.NoError(t, err)
		}
		_, err = txs.Create(ctx, g, kept.ID, TransactionInput{Amount: dec("4")})
		require.NoError(t, err)

		require.NoError(t, cats.Delete(ctx, g, doomed.ID))

		assert.Zero(t, countTransactions(t, s, doomed.ID), "no orphaned transactions")
		assert.Equal(t, 1, countTransactions(t, s, kept.ID))

		_, err = cats.Get(ctx, g, doomed.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		require.ErrorIs(t, cats.Delete(ctx, g, doomed.ID), common.ErrorNotFound)
	})
}

func TestCategoryService_DeleteForeignTouchesNothing(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		alice := guardFor(t, s.CreateUser(t, "alice@example.com").ID)
		bob := guardFor(t, s.CreateUser(t, "bob@example.com").ID)

		c, err := cats.Create(ctx, alice, "Alice's", "")
		require.NoError(t, err)
		_, err = txs.Create(ctx, alice, c.ID, TransactionInput{Amount: dec("9.99")})
		require.NoError(t, err)

		require.ErrorIs(t, cats.Delete(ctx, bob, c.ID), common.ErrorNotFound)

		assert.Equal(t, 1, countTransactions(t, s, c.ID))
		got, err := cats.Get(ctx, alice, c.ID)
		require.NoError(t, err)
		requireDecimal(t, "9.99", got.TotalExpense)
	})
}

// failingDeleteRepo lets the child phase of a cascade succeed and fails
// the parent phase.
type failingDeleteRepo struct {
	categories.Repository
}

func (f failingDeleteRepo) Delete(context.Context, tenancy.Guard, int64) error {
	return errors.New("db error: disk full")
}

type failingCascadeManager struct {
	*repomanager.SQLRepositoryManager
}

func (m failingCascadeManager) Categories(db dbx.DBTX) categories.Repository {
	return failingDeleteRepo{Repository: m.SQLRepositoryManager.Categories(db)}
}

func TestCategoryService_DeleteIsAtomic(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()
	g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

	cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
	txs := NewTransactionService(s.DB, s.Manager, logging.Nop())

	c, err := cats.Create(ctx, g, "Food", "")
	require.NoError(t, err)
	_, err = txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("5"), Date: time.Now()})
	require.NoError(t, err)

	broken := NewCategoryService(s.DB, failingCascadeManager{s.Manager}, logging.Nop())
	err = broken.Delete(ctx, g, c.ID)
	require.ErrorIs(t, err, common.ErrorInternal)

	assert.Equal(t, 1, countTransactions(t, s, c.ID), "child deletion rolled back")
	got, err := cats.Get(ctx, g, c.ID)
	require.NoError(t, err)
	requireDecimal(t, "5", got.TotalExpense)
}

func TestCategoryService_NoPrincipal(t *testing.T) {
	s := storetest.Open(t)
	cats := NewCategoryService(s.DB, s.Manager, logging.Nop())

	_, err := cats.Create(context.Background(), tenancy.Guard{}, "Food", "")
	require.ErrorIs(t, err, common.ErrNoPrincipal)
}
