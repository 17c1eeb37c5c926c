// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
)

const (
	defaultAdminUsername = "admin"
	generatedPasswordLen = 12
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) FindForLogin(
	ctx context.Context,
	identifier, role string,
) (*auth.Account, error) {
	user, err := s.repo.FindForLogin(ctx, identifier, role)
	if err != nil {
		return nil, err
	}
	return user.account(), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id int64,
	passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

// IsActive re-reads the active flag for the guard.
func (s *Service) IsActive(ctx context.Context, id int64) (bool, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

func (s *Service) VerifyPassword(user *User, password string) bool {
	ok, err := core.VerifyPassword(password, user.PasswordHash)
	return err == nil && ok
}

func (s *Service) CreateAdmin(
	ctx context.Context,
	username, email, password string,
) (*User, error) {
	return s.create(ctx, username, email, password, RoleAdmin)
}

func (s *Service) CreateMerchant(
	ctx context.Context,
	req CreateMerchantRequest,
) (*User, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}
	return s.create(ctx, req.Username, req.Email, req.Password, RoleMerchant)
}

func (s *Service) create(
	ctx context.Context,
	username, email, password, role string,
) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username == "" {
		return nil, core.FieldError("username", "is required")
	}
	if password == "" {
		return nil, core.FieldError("password", "is required")
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	switch {
	case errors.Is(err, core.ErrUnsupported):
	case err != nil:
		return nil, err
	case exists:
		return nil, fmt.Errorf("create %s %q: %w", role, username, core.ErrDuplicateIdentity)
	}

	user := &User{
		Username: username,
		Email:    optionalEmail(email),
		Role:     role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user, password); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "identity created",
		"user_id", user.ID,
		"role", role,
	)
	return user, nil
}

// EnsureDefaultAdmin creates the first administrator when none exists. An
// empty configured password is replaced by a random one that is logged once.
func (s *Service) EnsureDefaultAdmin(
	ctx context.Context,
	cfg config.BootstrapConfig,
) (bool, error) {
	admins, err := s.repo.CountByRole(ctx, RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	username := cfg.AdminUsername
	if username == "" {
		username = defaultAdminUsername
	}

	password := cfg.AdminPassword
	generated := password == ""
	if generated {
		password, err = core.GenerateSecureToken(generatedPasswordLen)
		if err != nil {
			return false, fmt.Errorf("generate admin password: %w", err)
		}
	}

	if _, err := s.CreateAdmin(ctx, username, cfg.AdminEmail, password); err != nil {
		return false, fmt.Errorf("bootstrap admin: %w", err)
	}

	if generated {
		slog.WarnContext(ctx, "default admin created with generated password",
			"username", username,
			"password", password,
		)
	} else {
		slog.InfoContext(ctx, "default admin created", "username", username)
	}
	return true, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, params ListParams) (core.Page[User], error) {
	if params.Role != "" && !auth.ValidRole(params.Role) {
		return core.Page[User]{}, core.FieldError("role", "must be one of admin merchant")
	}
	return s.repo.List(ctx, params)
}

func (s *Service) CountByRole(ctx context.Context, role string) (int, error) {
	return s.repo.CountByRole(ctx, role)
}

// ToggleMerchant flips a merchant's active flag. Administrator accounts are
// not toggled from the console.
func (s *Service) ToggleMerchant(ctx context.Context, id int64) (*User, error) {
	user, err := s.merchant(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.SetActive(ctx, id, user.IsActive); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "merchant active flag changed",
		"user_id", id,
		"active", user.IsActive,
	)
	return user, nil
}

// DeleteMerchant removes a merchant together with its stores, products,
// services and orders.
func (s *Service) DeleteMerchant(ctx context.Context, id int64) error {
	if _, err := s.merchant(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) merchant(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsMerchant() {
		return nil, fmt.Errorf("user %d is %s: %w", id, user.Role, core.ErrNotModifiable)
	}
	return user, nil
}

func (s *Service) UpdateProfile(
	ctx context.Context,
	id int64,
	req UpdateProfileRequest,
) (*User, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NewPassword != "" && !s.VerifyPassword(user, req.CurrentPassword) {
		return nil, core.FieldError("current_password", "is incorrect")
	}

	changed := req.NewPassword != ""
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.EmailOrEmpty() {
			user.Email = optionalEmail(email)
			changed = true
		}
	}
	if !changed {
		return user, nil
	}

	if err := s.repo.UpdateProfile(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}

	return user, nil
}

var (
	_ auth.AccountStore  = (*Service)(nil)
	_ auth.ActiveChecker = (*Service)(nil)
)
