// AngelaMos | 2026
// users.go

package remote

import (
	"context"
	"fmt"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/user"
)

type apiUser struct {
	ID        int64          `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	IsActive  bool           `json:"is_active"`
	CreatedAt apiclient.Time `json:"created_at"`
	UpdatedAt apiclient.Time `json:"updated_at"`
}

func (u apiUser) toUser() (user.User, error) {
	out := user.User{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Time,
		UpdatedAt: u.UpdatedAt.Time,
	}
	if u.Email != "" {
		email := u.Email
		out.Email = &email
	}
	return out, nil
}

// UserRepository serves accounts from the marketplace API. Credentials
// never leave the API, so password reads and writes are unsupported.
type UserRepository struct {
	client *apiclient.Client
	users  *apiclient.Resource[apiUser]
}

func NewUserRepository(client *apiclient.Client) *UserRepository {
	return &UserRepository{
		client: client,
		users:  apiclient.NewResource[apiUser](client, "/users", "users", "user"),
	}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User, password string) error {
	created, err := r.users.Create(ctx, map[string]any{
		"username":  u.Username,
		"email":     u.EmailOrEmpty(),
		"password":  password,
		"role":      u.Role,
		"is_active": u.IsActive,
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if created == nil {
		return fmt.Errorf("create user: empty answer: %w", core.ErrServer)
	}

	u.ID = created.ID
	u.CreatedAt = created.CreatedAt.Time
	u.UpdatedAt = created.UpdatedAt.Time
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	got, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if got == nil {
		return nil, fmt.Errorf("get user %d: %w", id, core.ErrNotFound)
	}

	u, err := got.toUser()
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindForLogin(context.Context, string, string) (*user.User, error) {
	return nil, fmt.Errorf("find user for login: %w", core.ErrUnsupported)
}

func (r *UserRepository) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return false, fmt.Errorf("user existence check: %w", core.ErrUnsupported)
}

func (r *UserRepository) UpdatePassword(context.Context, int64, string) error {
	return fmt.Errorf("update password: %w", core.ErrUnsupported)
}

// UpdateProfile sends the email and any new password in one update; the API
// hashes the password.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User, password string) error {
	body := map[string]string{"email": u.EmailOrEmpty()}
	if password != "" {
		body["password"] = password
	}

	updated, err := r.users.Update(ctx, u.ID, body)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if updated != nil {
		u.UpdatedAt = updated.UpdatedAt.Time
	}
	return nil
}

// SetActive goes through the API's toggle endpoint, so it only calls it when
// the flag actually has to change.
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.IsActive == active {
		return nil
	}

	if err := r.client.ToggleUserStatus(ctx, id); err != nil {
		return fmt.Errorf("toggle user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, params user.ListParams) (core.Page[user.User], error) {
	params.Page.Normalize()

	filter := query{}.str("role", params.Role).str("search", params.Search)
	page, err := r.users.List(ctx, params.Page, filter.values())
	if err != nil {
		return core.Page[user.User]{}, fmt.Errorf("list users: %w", err)
	}
	return mapPage(page, apiUser.toUser)
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	n, err := count(ctx, r.users, query{}.str("role", role))
	if err != nil {
		return 0, fmt.Errorf("count %s users: %w", role, err)
	}
	return n, nil
}

// Delete leaves the cascade to the API.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
