// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/metrics"
)

// Session is a successful login: the identity and its signed token.
type Session struct {
	Identity  *Identity
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	authenticator Authenticator
	sessions      *SessionManager
}

func NewService(authenticator Authenticator, sessions *SessionManager) *Service {
	return &Service{
		authenticator: authenticator,
		sessions:      sessions,
	}
}

func (s *Service) Strategy() string {
	return s.authenticator.Strategy()
}

func (s *Service) Login(
	ctx context.Context,
	identifier, password, role string,
) (*Session, error) {
	identity, err := s.authenticator.Authenticate(ctx, identifier, password, role)
	if err != nil {
		metrics.RecordLogin(role, s.Strategy(), loginOutcome(err))
		if !core.IsClientError(err) {
			slog.ErrorContext(ctx, "login failed",
				"role", role,
				"strategy", s.Strategy(),
				"error", err,
			)
		}
		return nil, err
	}

	token, expiresAt, err := s.sessions.Issue(identity)
	if err != nil {
		metrics.RecordLogin(role, s.Strategy(), "error")
		return nil, fmt.Errorf("issue session: %w", err)
	}

	metrics.RecordLogin(role, s.Strategy(), "success")
	slog.InfoContext(ctx, "login",
		"role", role,
		"user_id", identity.SubjectID,
		"strategy", s.Strategy(),
	)

	return &Session{
		Identity:  identity,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *Service) Logout(ctx context.Context, identity *Identity) error {
	if err := s.sessions.Revoke(ctx, identity); err != nil {
		return err
	}

	if identity != nil {
		slog.InfoContext(ctx, "logout",
			"role", identity.Role,
			"user_id", identity.SubjectID,
		)
	}
	return nil
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrConnectivity):
		return "connectivity"
	case errors.Is(err, core.ErrServer):
		return "server_error"
	default:
		return "error"
	}
}
