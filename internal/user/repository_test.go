// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

func newTestRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	db := sqlx.NewDb(raw, "sqlmock")
	return NewRepository(db, ownership.NewRemover(db, ownership.Marketplace)), mock
}

var userRowColumns = []string{
	"id", "username", "email", "password_hash", "role", "is_active",
	"created_at", "updated_at",
}

func TestRepositoryFindForLogin(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE (username = $1 OR email = LOWER($1)) AND role = $2 AND is_active = TRUE")).
		WithArgs("ahmed", RoleMerchant).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(4, "ahmed", "ahmed@example.com", "$argon2id$x", RoleMerchant, true, now, now))

	u, err := repo.FindForLogin(context.Background(), "ahmed", RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.ID)
	assert.Equal(t, "ahmed@example.com", u.EmailOrEmpty())
	assert.True(t, u.IsMerchant())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindForLoginEmailIgnoresCase(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("email = LOWER($1)")).
		WithArgs("Ahmed@Example.com", RoleMerchant).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(4, "ahmed", "ahmed@example.com", "$argon2id$x", RoleMerchant, true, now, now))

	u, err := repo.FindForLogin(context.Background(), "Ahmed@Example.com", RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, int64(4), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryFindForLoginMissing(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost", RoleAdmin).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.FindForLogin(context.Background(), "ghost", RoleAdmin)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryCreateDuplicate(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("ahmed", nil, sqlmock.AnyArg(), RoleMerchant, true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &User{
		Username: "ahmed",
		Role:     RoleMerchant,
		IsActive: true,
	}, "secret-pass")
	assert.ErrorIs(t, err, core.ErrDuplicateIdentity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreateHashesPassword(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(9, now, now))

	u := &User{Username: "admin", Role: RoleAdmin, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), u, "admin123"))

	assert.Equal(t, int64(9), u.ID)
	assert.NotEqual(t, "admin123", u.PasswordHash)

	ok, err := core.VerifyPassword("admin123", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRepositoryListPastLastPage(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE TRUE AND role = $1")).
		WithArgs(RoleMerchant).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(RoleMerchant, 20, 180).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	page, err := repo.List(context.Background(), ListParams{
		Page: core.NewPageRequest(10, 20),
		Role: RoleMerchant,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 10, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositorySetActiveMissing(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(42, false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetActive(context.Background(), 42, false)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryDeleteCascadesOwnedRows(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM users WHERE id = ? FOR UPDATE")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM stores WHERE merchant_id IN (?)")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE merchant_id IN (?)")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM orders WHERE merchant_id IN (?)")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE store_id IN (?)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM services WHERE store_id IN (?)")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM orders WHERE product_id IN (?)")).
		WithArgs(11).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM orders WHERE id IN (?)")).
		WithArgs(31).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id IN (?)")).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM stores WHERE id IN (?)")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id IN (?)")).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// hashOf matches a password hash argument that verifies against password.
type hashOf string

func (h hashOf) Match(v driver.Value) bool {
	hash, ok := v.(string)
	if !ok {
		return false
	}
	valid, err := core.VerifyPassword(string(h), hash)
	return err == nil && valid
}

func TestRepositoryUpdateProfileIsOneWrite(t *testing.T) {
	repo, mock := newTestRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SET email = $2, password_hash = COALESCE(NULLIF($3, ''), password_hash)")).
		WithArgs(7, "lina@example.com", hashOf("new-secret")).
		WillReturnRows(sqlmock.NewRows([]string{"password_hash", "updated_at"}).
			AddRow("$argon2id$stored", now))

	email := "lina@example.com"
	u := &User{ID: 7, Username: "lina", Email: &email, Role: RoleMerchant}
	require.NoError(t, repo.UpdateProfile(context.Background(), u, "new-secret"))

	assert.Equal(t, "$argon2id$stored", u.PasswordHash)
	assert.WithinDuration(t, now, u.UpdatedAt, time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateProfileKeepsPassword(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WithArgs(7, nil, "").
		WillReturnRows(sqlmock.NewRows([]string{"password_hash", "updated_at"}).
			AddRow("$argon2id$old", time.Now()))

	u := &User{ID: 7, Username: "lina", Role: RoleMerchant}
	require.NoError(t, repo.UpdateProfile(context.Background(), u, ""))
	assert.Equal(t, "$argon2id$old", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateProfileFailure(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	email := "taken@example.com"
	u := &User{ID: 7, Email: &email, PasswordHash: "$argon2id$old"}
	err := repo.UpdateProfile(context.Background(), u, "new-secret")
	assert.ErrorIs(t, err, core.ErrDuplicateIdentity)
	assert.Equal(t, "$argon2id$old", u.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}
