package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_CRUD(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

		c, err := cats.Create(ctx, g, "Food", "")
		require.NoError(t, err)

		when := time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
		created, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("12.34"), Note: "lunch", Date: when})
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.Equal(t, c.ID, created.CategoryID)
		assert.Equal(t, g.UserID(), created.UserID)
		assert.True(t, when.Equal(created.TransactionDate))
		requireDecimal(t, "12.34", created.Amount)

		got, err := txs.Get(ctx, g, c.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "lunch", got.Note)

		require.NoError(t, txs.Update(ctx, g, c.ID, created.ID, TransactionInput{Amount: dec("20"), Note: "dinner", Date: when}))

		cat, err := cats.Get(ctx, g, c.ID)
		require.NoError(t, err)
		requireDecimal(t, "20", cat.TotalExpense)

		list, err := txs.List(ctx, g, c.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "dinner", list[0].Note)

		require.NoError(t, txs.Delete(ctx, g, c.ID, created.ID))
		require.ErrorIs(t, txs.Delete(ctx, g, c.ID, created.ID), common.ErrorNotFound)

		cat, err = cats.Get(ctx, g, c.ID)
		require.NoError(t, err)
		requireDecimal(t, "0", cat.TotalExpense)
	})
}

func TestTransactionService_ForeignCategory(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		alice := guardFor(t, s.CreateUser(t, "alice@example.com").ID)
		bob := guardFor(t, s.CreateUser(t, "bob@example.com").ID)

		c, err := cats.Create(ctx, alice, "Alice's", "")
		require.NoError(t, err)
		mine, err := txs.Create(ctx, alice, c.ID, TransactionInput{Amount: dec("3")})
		require.NoError(t, err)

		_, err = txs.Create(ctx, bob, c.ID, TransactionInput{Amount: dec("100")})
		require.ErrorIs(t, err, common.ErrBadRequest)

		_, err = txs.Create(ctx, alice, 424242, TransactionInput{Amount: dec("1")})
		require.ErrorIs(t, err, common.ErrBadRequest)

		_, err = txs.Get(ctx, bob, c.ID, mine.ID)
		require.ErrorIs(t, err, common.ErrorNotFound)

		list, err := txs.List(ctx, bob, c.ID)
		require.NoError(t, err)
		assert.Empty(t, list)

		err = txs.Update(ctx, bob, c.ID, mine.ID, TransactionInput{Amount: dec("0")})
		require.ErrorIs(t, err, common.ErrBadRequest)

		require.ErrorIs(t, txs.Delete(ctx, bob, c.ID, mine.ID), common.ErrorNotFound)

		cat, err := cats.Get(ctx, alice, c.ID)
		require.NoError(t, err)
		requireDecimal(t, "3", cat.TotalExpense)
	})
}

func TestTransactionService_WrongCategoryPath(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()
	cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
	txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
	g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

	a, err := cats.Create(ctx, g, "A", "")
	require.NoError(t, err)
	b, err := cats.Create(ctx, g, "B", "")
	require.NoError(t, err)

	tx, err := txs.Create(ctx, g, a.ID, TransactionInput{Amount: dec("1")})
	require.NoError(t, err)

	_, err = txs.Get(ctx, g, b.ID, tx.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTransactionService_DefaultsDateToNow(t *testing.T) {
	s := storetest.Open(t)
	ctx := context.Background()
	cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
	txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
	g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	txs.now = func() time.Time { return fixed }

	c, err := cats.Create(ctx, g, "Food", "")
	require.NoError(t, err)

	zero, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("1")})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(zero.TransactionDate))

	epoch, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("1"), Date: time.UnixMilli(0)})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(epoch.TransactionDate))
}

func TestTransactionService_AmountValidation(t *testing.T) {
	storetest.Backends(t, func(t *testing.T, s *storetest.Store) {
		ctx := context.Background()
		cats := NewCategoryService(s.DB, s.Manager, logging.Nop())
		txs := NewTransactionService(s.DB, s.Manager, logging.Nop())
		g := guardFor(t, s.CreateUser(t, "a@example.com").ID)

		c, err := cats.Create(ctx, g, "Food", "")
		require.NoError(t, err)

		ok, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("999999999999.99")})
		require.NoError(t, err)
		requireDecimal(t, "999999999999.99", ok.Amount)

		tests := []struct {
			name   string
			amount string
		}{
			{name: "sub-cent", amount: "0.005"},
			{name: "sub-cent negative", amount: "-1.001"},
			{name: "at limit", amount: "1000000000000"},
			{name: "far above limit", amount: "1e13"},
			{name: "negative above limit", amount: "-1e12"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec(tt.amount)})
				require.ErrorIs(t, err, common.ErrBadRequest)

				err = txs.Update(ctx, g, c.ID, ok.ID, TransactionInput{Amount: dec(tt.amount)})
				require.ErrorIs(t, err, common.ErrBadRequest)
			})
		}

		// trailing zeros are not extra precision
		_, err = txs.Create(ctx, g, c.ID, TransactionInput{Amount: dec("1.500")})
		require.NoError(t, err)

		assert.Equal(t, 2, countTransactions(t, s, c.ID))
	})
}
