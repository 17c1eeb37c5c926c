// AngelaMos | 2026
// repository_test.go

package catalog

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

func newTestRepos(t *testing.T) (Repositories, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := sqlx.NewDb(raw, "sqlmock")
	return NewPostgresRepositories(db, ownership.NewRemover(db, ownership.Marketplace)), mock
}

var (
	productColumns = []string{
		"id", "store_id", "merchant_id", "name", "description", "price",
		"is_active", "created_at", "updated_at", "store_name",
	}
	storeColumns = []string{
		"id", "merchant_id", "name", "description", "is_active",
		"created_at", "updated_at", "merchant_name", "products_count", "services_count",
	}
)

func TestProductGetByIDScansPrice(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(11, 7, 4, "Tea", "", "25.50", true, now, now, "ahmed's store"))

	p, err := repos.Products.GetByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, "25.50", p.Price.StringFixed(2))
	assert.Equal(t, "ahmed's store", p.StoreName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByIDMissing(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := repos.Products.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestProductDeleteRemovesOrders(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM orders WHERE product_id IN (?)")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE id IN (?)")).
		WithArgs(31).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id IN (?)")).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repos.Products.Delete(context.Background(), 11))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteMissingRollsBack(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE id = ? FOR UPDATE")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repos.Products.Delete(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductListFiltersAndPaginates(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM products p WHERE p.merchant_id = $1 AND p.store_id = $2")).
		WithArgs(4, 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $3 OFFSET $4")).
		WithArgs(4, 7, 10, 40).
		WillReturnRows(sqlmock.NewRows(productColumns))

	page, err := repos.Products.List(context.Background(), Filter{
		Page:       core.NewPageRequest(5, 10),
		MerchantID: 4,
		StoreID:    7,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 5, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureForMerchantCreatesOnce(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = $1 AND role = 'merchant' FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.merchant_id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(storeColumns))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO stores")).
		WithArgs("ahmed's store", "New store", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
			AddRow(7, true, now, now))
	mock.ExpectCommit()

	store, created, err := repos.Stores.EnsureForMerchant(context.Background(), &Store{
		MerchantID:  4,
		Name:        "ahmed's store",
		Description: "New store",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), store.ID)
	assert.True(t, store.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureForMerchantReturnsExisting(t *testing.T) {
	repos, mock := newTestRepos(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.merchant_id = $1")).
		WithArgs(4).
		WillReturnRows(sqlmock.NewRows(storeColumns).
			AddRow(7, 4, "Tea House", "", true, now, now, "ahmed", 2, 0))
	mock.ExpectCommit()

	store, created, err := repos.Stores.EnsureForMerchant(context.Background(), &Store{MerchantID: 4})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Tea House", store.Name)
	assert.Equal(t, 2, store.ProductsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderSetStatusMissing(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
		WithArgs(77, StatusShipping).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repos.Orders.SetStatus(context.Background(), 77, StatusShipping)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
