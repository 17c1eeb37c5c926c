// AngelaMos | 2026
// cascade_test.go

package ownership

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func q(s string) string {
	return regexp.QuoteMeta(s)
}

func TestMarketplaceOrder(t *testing.T) {
	tests := []struct {
		root string
		want []string
	}{
		{"users", []string{"users", "stores", "products", "services", "orders"}},
		{"stores", []string{"stores", "products", "services", "orders"}},
		{"products", []string{"products", "orders"}},
		{"services", []string{"services"}},
	}

	for _, tt := range tests {
		t.Run(tt.root, func(t *testing.T) {
			got, err := Marketplace.Order(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderDetectsCycle(t *testing.T) {
	g := NewGraph(
		Edge{Parent: "a", Child: "b", Column: "a_id"},
		Edge{Parent: "b", Child: "c", Column: "b_id"},
		Edge{Parent: "c", Child: "b", Column: "c_id"},
	)

	_, err := g.Order("a")
	assert.Error(t, err)
}

func expectStoreWalk(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(q("SELECT id FROM stores WHERE id = ? FOR UPDATE")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(q("SELECT id FROM products WHERE store_id IN (?)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	mock.ExpectQuery(q("SELECT id FROM services WHERE store_id IN (?)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(q("SELECT id FROM orders WHERE product_id IN (?, ?)")).
		WithArgs(11, 12).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
}

func TestRemoverDeletesStoreSubtree(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectStoreWalk(mock)
	mock.ExpectExec(q("DELETE FROM orders WHERE id IN (?)")).
		WithArgs(31).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM services WHERE id IN (?)")).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM products WHERE id IN (?, ?)")).
		WithArgs(11, 12).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(q("DELETE FROM stores WHERE id IN (?)")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := NewRemover(db, Marketplace).Delete(context.Background(), "stores", 7)
	require.NoError(t, err)

	assert.Equal(t, Result{
		"orders":   1,
		"services": 1,
		"products": 2,
		"stores":   1,
	}, res)
	assert.Equal(t, int64(5), res.Total())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverRollsBackOnPartialFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectStoreWalk(mock)
	mock.ExpectExec(q("DELETE FROM orders WHERE id IN (?)")).
		WithArgs(31).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM services WHERE id IN (?)")).
		WithArgs(21).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q("DELETE FROM products WHERE id IN (?, ?)")).
		WithArgs(11, 12).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	res, err := NewRemover(db, Marketplace).Delete(context.Background(), "stores", 7)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, core.ErrTransaction)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverMissingRootIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := NewRemover(db, Marketplace).Delete(context.Background(), "products", 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverSkipsEmptyChildren(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(q("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(q("SELECT id FROM orders WHERE product_id IN (?)")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(q("DELETE FROM products WHERE id IN (?)")).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := NewRemover(db, Marketplace).Delete(context.Background(), "products", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res["orders"])
	assert.Equal(t, int64(1), res["products"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoverRejectsUnknownTable(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := NewRemover(db, Marketplace).Delete(context.Background(), "ads", 1)
	assert.Error(t, err)
}
