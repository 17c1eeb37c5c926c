// AngelaMos | 2026
// identity.go

package auth

import (
	"context"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleMerchant = "merchant"
)

// Identity is the role-tagged descriptor a caller holds for the length of a
// login session. Both authentication strategies produce it and the guard
// only ever consumes it.
type Identity struct {
	SubjectID   int64  `json:"id"`
	Role        string `json:"role"`
	DisplayName string `json:"username"`
	Email       string `json:"email,omitempty"`
	StoreID     *int64 `json:"store_id,omitempty"`

	SessionID string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func (i *Identity) IsMerchant() bool {
	return i != nil && i.Role == RoleMerchant
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity bound by the guard, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey{}).(*Identity); ok {
		return identity
	}
	return nil
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMerchant
}
