// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/baytalsudani/console/internal/core"
)

type CreateMerchantRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email"    validate:"omitempty,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// UpdateProfileRequest changes the caller's own account. A new password
// requires the current one.
type UpdateProfileRequest struct {
	Email           *string `json:"email,omitempty"    validate:"omitempty,email,max=120"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password"       validate:"omitempty,min=6,max=128"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListParams struct {
	Page   core.PageRequest
	Role   string
	Search string
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.EmailOrEmpty(),
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toResponse(u User) UserResponse {
	return ToUserResponse(&u)
}
