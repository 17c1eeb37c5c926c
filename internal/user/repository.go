// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

// Repository is the identity and credential store. The local implementation
// talks to Postgres; the remote one lives in internal/remote.
type Repository interface {
	// Create stores a new identity. Local stores hash password; remote
	// stores hand it to the API, which hashes it.
	Create(ctx context.Context, user *User, password string) error
	GetByID(ctx context.Context, id int64) (*User, error)
	// FindForLogin matches the username exactly and the email ignoring case.
	FindForLogin(ctx context.Context, identifier, role string) (*User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// UpdateProfile writes user's email and, when password is not empty, a
	// new password as one write.
	UpdateProfile(ctx context.Context, user *User, password string) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, params ListParams) (core.Page[User], error)
	CountByRole(ctx context.Context, role string) (int, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db      core.DBTX
	remover *ownership.Remover
}

// NewRepository builds the Postgres store. A nil remover disables Delete,
// which callers inside an open transaction use.
func NewRepository(db core.DBTX, remover *ownership.Remover) Repository {
	return &repository{db: db, remover: remover}
}

const userColumns = `id, username, email, password_hash, role, is_active,
		       created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User, password string) error {
	hash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.PasswordHash = hash

	query := `
		INSERT INTO users (username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = r.db.GetContext(ctx, user, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateIdentity)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// FindForLogin matches identifier against username or email, for the given
// role, among active accounts only. Stored emails are lowercase.
func (r *repository) FindForLogin(
	ctx context.Context,
	identifier, role string,
) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (username = $1 OR email = LOWER($1)) AND role = $2 AND is_active = TRUE
		ORDER BY id
		LIMIT 1`

	var user User
	err := r.db.GetContext(ctx, &user, query, identifier, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find login: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find login: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByUsernameOrEmail(
	ctx context.Context,
	username, email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR ($2 <> '' AND email = $2))`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username, email); err != nil {
		return false, fmt.Errorf("check identity exists: %w", err)
	}

	return exists, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) UpdateProfile(
	ctx context.Context,
	user *User,
	password string,
) error {
	var hash string
	if password != "" {
		var err error
		if hash, err = core.HashPassword(password); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
	}

	query := `
		UPDATE users
		SET email = $2,
		    password_hash = COALESCE(NULLIF($3, ''), password_hash),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING password_hash, updated_at`

	err := r.db.GetContext(ctx, user, query, user.ID, user.Email, hash)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("update profile: %w", core.ErrDuplicateIdentity)
		}
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `
		UPDATE users
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "set user active", query, id, active)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) (core.Page[User], error) {
	params.Page.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(username ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return core.Page[User]{}, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, username, email, role, is_active, created_at, updated_at
		FROM users
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIdx, argIdx+1)

	args = append(args, params.Page.PageSize, params.Page.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return core.Page[User]{}, fmt.Errorf("list users: %w", err)
	}

	return core.NewPage(users, total, params.Page), nil
}

func (r *repository) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role); err != nil {
		return 0, fmt.Errorf("count %s users: %w", role, err)
	}
	return n, nil
}

// Delete removes the user and everything it owns in one transaction.
func (r *repository) Delete(ctx context.Context, id int64) error {
	if r.remover == nil {
		return fmt.Errorf("delete user %d: %w", id, core.ErrUnsupported)
	}
	if _, err := r.remover.Delete(ctx, "users", id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
