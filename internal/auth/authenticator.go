// AngelaMos | 2026
// authenticator.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
)

// Authenticator turns an identifier (username or email) and password into an
// Identity for the required role. Implementations are picked once at startup.
type Authenticator interface {
	Authenticate(
		ctx context.Context,
		identifier, password, role string,
	) (*Identity, error)
	Strategy() string
}

// Account is the credential record the local strategy checks against.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}

type AccountStore interface {
	// FindForLogin matches username OR email, the role, and active=true.
	FindForLogin(ctx context.Context, identifier, role string) (*Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type StoreResolver interface {
	PrimaryStoreID(ctx context.Context, merchantID int64) (int64, error)
}

type LocalAuthenticator struct {
	accounts AccountStore
	stores   StoreResolver
}

func NewLocalAuthenticator(
	accounts AccountStore,
	stores StoreResolver,
) *LocalAuthenticator {
	return &LocalAuthenticator{accounts: accounts, stores: stores}
}

func (a *LocalAuthenticator) Strategy() string {
	return config.StrategyLocal
}

func (a *LocalAuthenticator) Authenticate(
	ctx context.Context,
	identifier, password, role string,
) (*Identity, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" || !ValidRole(role) {
		return nil, core.ErrInvalidCredentials
	}

	account, err := a.accounts.FindForLogin(ctx, identifier, role)
	if errors.Is(err, core.ErrNotFound) {
		//nolint:errcheck // equalize timing for unknown identifiers
		_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
		return nil, core.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !account.IsActive || account.Role != role {
		return nil, core.ErrInvalidCredentials
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&account.PasswordHash,
	)
	if err != nil {
		slog.WarnContext(ctx, "unreadable password hash",
			"user_id", account.ID,
			"error", err,
		)
		return nil, core.ErrInvalidCredentials
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	if newHash != "" {
		if err := a.accounts.UpdatePassword(ctx, account.ID, newHash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", account.ID,
				"error", err,
			)
		}
	}

	identity := &Identity{
		SubjectID:   account.ID,
		Role:        account.Role,
		DisplayName: account.Username,
		Email:       account.Email,
	}

	if role == RoleMerchant && a.stores != nil {
		storeID, err := a.stores.PrimaryStoreID(ctx, account.ID)
		switch {
		case err == nil:
			identity.StoreID = &storeID
		case !errors.Is(err, core.ErrNotFound):
			slog.WarnContext(ctx, "resolve merchant store",
				"user_id", account.ID,
				"error", err,
			)
		}
	}

	return identity, nil
}

type RemoteLogin interface {
	Login(
		ctx context.Context,
		role, identifier, password string,
	) (*apiclient.LoginResult, error)
}

// RemoteAuthenticator delegates the credential check to the marketplace API.
type RemoteAuthenticator struct {
	client RemoteLogin
}

func NewRemoteAuthenticator(client RemoteLogin) *RemoteAuthenticator {
	return &RemoteAuthenticator{client: client}
}

func (a *RemoteAuthenticator) Strategy() string {
	return config.StrategyRemote
}

func (a *RemoteAuthenticator) Authenticate(
	ctx context.Context,
	identifier, password, role string,
) (identity *Identity, err error) {
	ctx, span := core.StartSpan(ctx, "auth.remote.authenticate",
		attribute.String("auth.role", role),
	)
	defer func() { core.EndSpan(span, err) }()

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" || !ValidRole(role) {
		return nil, core.ErrInvalidCredentials
	}

	res, err := a.client.Login(ctx, role, identifier, password)
	if err != nil {
		return nil, err
	}

	if res.Role != "" && res.Role != role {
		return nil, core.ErrInvalidCredentials
	}

	if res.ID == 0 {
		return nil, fmt.Errorf("login response without subject id: %w", core.ErrServer)
	}

	displayName := res.Username
	if displayName == "" {
		displayName = identifier
	}

	return &Identity{
		SubjectID:   res.ID,
		Role:        role,
		DisplayName: displayName,
		Email:       res.Email,
		StoreID:     res.StoreID,
	}, nil
}

var (
	_ Authenticator = (*LocalAuthenticator)(nil)
	_ Authenticator = (*RemoteAuthenticator)(nil)
)
