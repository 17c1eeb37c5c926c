// AngelaMos | 2026
// dto.go

package auth

import (
	"strings"
	"time"
)

// LoginRequest accepts the identifier under any of the field names the two
// login forms have used.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"max=120"`
	Username   string `json:"username"   validate:"max=80"`
	Email      string `json:"email"      validate:"max=120"`
	Password   string `json:"password"   validate:"max=128"`
}

func (r LoginRequest) LoginID() string {
	for _, v := range []string{r.Identifier, r.Username, r.Email} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

type SessionResponse struct {
	User      *Identity `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
	Redirect  string    `json:"redirect"`
}

type LoginView struct {
	Role     string `json:"role"`
	Strategy string `json:"strategy"`
}
