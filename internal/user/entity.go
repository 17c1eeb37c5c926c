// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/baytalsudani/console/internal/auth"
)

const (
	RoleAdmin    = auth.RoleAdmin
	RoleMerchant = auth.RoleMerchant
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        *string   `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsMerchant() bool {
	return u.Role == RoleMerchant
}

func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *User) account() *auth.Account {
	return &auth.Account{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.EmailOrEmpty(),
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
	}
}

func optionalEmail(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}
