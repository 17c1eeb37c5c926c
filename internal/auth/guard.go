// AngelaMos | 2026
// guard.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/baytalsudani/console/internal/core"
)

// ActiveChecker re-reads the active flag of an identity on every request.
type ActiveChecker interface {
	IsActive(ctx context.Context, id int64) (bool, error)
}

// Guard is the single authorization gate for protected operations.
type Guard struct {
	active ActiveChecker
}

// NewGuard builds a guard. A nil checker skips the active-flag step, which is
// how the remote strategy runs: the marketplace API gates disabled accounts.
func NewGuard(active ActiveChecker) *Guard {
	return &Guard{active: active}
}

// Check evaluates, in order: a session exists, the role matches exactly, and
// the account is still active. The first failing step decides the error.
func (g *Guard) Check(
	ctx context.Context,
	identity *Identity,
	requiredRole string,
) error {
	if identity == nil || identity.SubjectID == 0 {
		return core.ErrUnauthenticated
	}

	if identity.Role != requiredRole {
		return fmt.Errorf(
			"role %q cannot access %q routes: %w",
			identity.Role,
			requiredRole,
			core.ErrForbidden,
		)
	}

	if g.active == nil {
		return nil
	}

	active, err := g.active.IsActive(ctx, identity.SubjectID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("identity %d no longer exists: %w",
			identity.SubjectID, core.ErrUnauthenticated)
	}
	if err != nil {
		return fmt.Errorf("check active flag: %w", err)
	}

	if !active {
		return core.ErrAccountDisabled
	}

	return nil
}

// Authorize runs Check and, on success, returns ctx with identity bound.
func (g *Guard) Authorize(
	ctx context.Context,
	identity *Identity,
	requiredRole string,
) (context.Context, error) {
	if err := g.Check(ctx, identity, requiredRole); err != nil {
		return ctx, err
	}
	return WithIdentity(ctx, identity), nil
}

// Reason names the guard step that rejected err, for metrics and logs.
func Reason(err error) string {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, core.ErrForbidden):
		return "forbidden"
	case errors.Is(err, core.ErrAccountDisabled):
		return "account_disabled"
	default:
		return "error"
	}
}
