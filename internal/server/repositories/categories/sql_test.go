package categories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQuery = `(?s)^SELECT\s+c\.id,\s*c\.user_id,\s*c\.title,\s*c\.description,\s*COALESCE\(SUM\(ROUND\(t\.amount\s*\*\s*100\)\),\s*0\)\s+AS\s+total_cents\s+FROM\s+categories\s+c\s+LEFT\s+JOIN\s+transactions\s+t\s+ON\s+t\.category_id\s*=\s*c\.id\s+WHERE\s+c\.user_id\s*=\s*\$1\s+GROUP\s+BY\s+c\.id,\s*c\.user_id,\s*c\.title,\s*c\.description\s+ORDER\s+BY\s+c\.id\s*$`
	getQuery    = `(?s)^SELECT\s+c\.id,.*LEFT\s+JOIN\s+transactions\s+t\s+ON\s+t\.category_id\s*=\s*c\.id\s+WHERE\s+c\.id\s*=\s*\$1\s+AND\s+c\.user_id\s*=\s*\$2\s+GROUP\s+BY.*$`
	createQuery = `(?s)^INSERT\s+INTO\s+categories\s*\(user_id,\s*title,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id\s*$`
	updateQuery = `(?s)^UPDATE\s+categories\s+SET\s+title\s*=\s*\$1,\s*description\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s*$`
	deleteQuery = `(?s)^DELETE\s+FROM\s+categories\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`
)

var categoryColumns = []string{"id", "user_id", "title", "description", "total_cents"}

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewSQLRepository(db), mock
}

func guard(t *testing.T, id int64) tenancy.Guard {
	t.Helper()
	g, err := tenancy.For(id)
	require.NoError(t, err)
	return g
}

func TestList_AggregatesAndKeepsEmptyCategories(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(int64(1), int64(7), "Food", "groceries", "2550").
			AddRow(int64(2), int64(7), "Travel", "", int64(0)))

	got, err := repo.List(context.Background(), guard(t, 7))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Food", got[0].Title)
	assert.True(t, decimal.RequireFromString("25.5").Equal(got[0].TotalExpense))
	assert.True(t, got[1].TotalExpense.IsZero())
}

func TestList_DropsForeignRows(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(int64(1), int64(7), "Mine", "", int64(0)).
			AddRow(int64(2), int64(8), "Theirs", "", int64(0)))

	got, err := repo.List(context.Background(), guard(t, 7))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Mine", got[0].Title)
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs(int64(7)).WillReturnRows(sqlmock.NewRows(categoryColumns))

	got, err := repo.List(context.Background(), guard(t, 7))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), guard(t, 7))
	require.ErrorContains(t, err, "db error: db down")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(getQuery).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(int64(1), int64(7), "Food", "", 1250.0))
	mock.ExpectQuery(getQuery).
		WithArgs(int64(2), int64(7)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), guard(t, 7), 1)
	require.NoError(t, err)
	assert.Equal(t, "12.5", got.TotalExpense.String())

	_, err = repo.Get(context.Background(), guard(t, 7), 2)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(createQuery).
		WithArgs(int64(7), "Food", "groceries").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	got, err := repo.Create(context.Background(), guard(t, 7), &models.Category{Title: "Food", Description: "groceries"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.TotalExpense.IsZero())
}

func TestCreate_NoPrincipal(t *testing.T) {
	repo, _ := newRepoWithMock(t)

	_, err := repo.Create(context.Background(), tenancy.Guard{}, &models.Category{Title: "x"})
	require.ErrorIs(t, err, common.ErrNoPrincipal)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(updateQuery).
		WithArgs("New", "desc", int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQuery).
		WithArgs("New", "desc", int64(9), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(context.Background(), guard(t, 7), &models.Category{ID: 1, Title: "New", Description: "desc"}))

	err := repo.Update(context.Background(), guard(t, 7), &models.Category{ID: 9, Title: "New", Description: "desc"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQuery).WithArgs(int64(1), int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQuery).WithArgs(int64(2), int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQuery).WithArgs(int64(3), int64(7)).WillReturnError(errors.New("fk violation"))

	require.NoError(t, repo.Delete(context.Background(), guard(t, 7), 1))
	require.ErrorIs(t, repo.Delete(context.Background(), guard(t, 7), 2), common.ErrorNotFound)
	require.ErrorContains(t, repo.Delete(context.Background(), guard(t, 7), 3), "db error")
}

func TestGet_TotalFromFloatCents(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	// SQLite hands back the cent sum as REAL.
	mock.ExpectQuery(getQuery).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(int64(1), int64(7), "Food", "", 30.0))

	got, err := repo.Get(context.Background(), guard(t, 7), 1)
	require.NoError(t, err)
	assert.Equal(t, "0.3", got.TotalExpense.String())
}
