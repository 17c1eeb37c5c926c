// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/redis/go-redis/v9"

	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
)

const sessionTokenType = "session"

// SessionManager signs the identity descriptor into an ES256 token carried
// in a cookie, and keeps a Redis denylist of sessions ended by logout.
type SessionManager struct {
	privateKey jwk.Key
	publicKey  jwk.Key
	publicJWKS jwk.Set
	config     config.SessionConfig
	redis      *redis.Client
	now        func() time.Time
}

func NewSessionManager(
	cfg config.SessionConfig,
	rdb *redis.Client,
) (*SessionManager, error) {
	privateKeyPEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}

	privateKey, err := jwk.ParseKey(privateKeyPEM, jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return newSessionManager(cfg, privateKey, rdb)
}

func newSessionManager(
	cfg config.SessionConfig,
	privateKey jwk.Key,
	rdb *redis.Client,
) (*SessionManager, error) {
	if setErr := privateKey.Set(jwk.AlgorithmKey, jwa.ES256()); setErr != nil {
		return nil, fmt.Errorf("set algorithm: %w", setErr)
	}

	keyID := uuid.New().String()[:8]
	if setErr := privateKey.Set(jwk.KeyIDKey, keyID); setErr != nil {
		return nil, fmt.Errorf("set key id: %w", setErr)
	}

	publicKey, err := privateKey.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}

	if setErr := publicKey.Set(jwk.KeyUsageKey, "sig"); setErr != nil {
		return nil, fmt.Errorf("set key usage: %w", setErr)
	}

	publicJWKS := jwk.NewSet()
	if addErr := publicJWKS.AddKey(publicKey); addErr != nil {
		return nil, fmt.Errorf("add key to set: %w", addErr)
	}

	return &SessionManager{
		privateKey: privateKey,
		publicKey:  publicKey,
		publicJWKS: publicJWKS,
		config:     cfg,
		redis:      rdb,
		now:        time.Now,
	}, nil
}

func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}

	jwkPrivate, err := jwk.Import(privateKey)
	if err != nil {
		return fmt.Errorf("import private key: %w", err)
	}

	privatePEM, err := jwk.Pem(jwkPrivate)
	if err != nil {
		return fmt.Errorf("encode private key: %w", err)
	}

	if writeErr := os.WriteFile(privateKeyPath, privatePEM, 0o600); writeErr != nil {
		return fmt.Errorf("write private key: %w", writeErr)
	}

	jwkPublic, err := jwkPrivate.PublicKey()
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}

	publicPEM, err := jwk.Pem(jwkPublic)
	if err != nil {
		return fmt.Errorf("encode public key: %w", err)
	}

	//nolint:gosec // G306: public key is intentionally world-readable
	if writeErr := os.WriteFile(publicKeyPath, publicPEM, 0o644); writeErr != nil {
		return fmt.Errorf("write public key: %w", writeErr)
	}

	return nil
}

// Issue signs identity into a fresh session token. Every login gets a new
// session id.
func (m *SessionManager) Issue(identity *Identity) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.config.Lifetime)
	sessionID := uuid.New().String()

	builder := jwt.NewBuilder().
		JwtID(sessionID).
		Issuer(m.config.Issuer).
		Audience([]string{m.config.Audience}).
		Subject(strconv.FormatInt(identity.SubjectID, 10)).
		IssuedAt(now).
		NotBefore(now).
		Expiration(expiresAt).
		Claim("type", sessionTokenType).
		Claim("role", identity.Role).
		Claim("name", identity.DisplayName)

	if identity.Email != "" {
		builder = builder.Claim("email", identity.Email)
	}
	if identity.StoreID != nil {
		builder = builder.Claim("store_id", *identity.StoreID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("build session: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.ES256(), m.privateKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}

	identity.SessionID = sessionID
	identity.ExpiresAt = expiresAt

	return string(signed), expiresAt, nil
}

// Parse verifies a session token and rebuilds the identity it carries.
func (m *SessionManager) Parse(
	ctx context.Context,
	tokenString string,
) (*Identity, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.ES256(), m.publicKey),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithAudience(m.config.Audience),
		jwt.WithClock(jwt.ClockFunc(m.now)),
	)
	if err != nil {
		if isTokenExpiredError(err) {
			return nil, fmt.Errorf("parse session: %w", core.ErrTokenExpired)
		}
		return nil, fmt.Errorf("parse session: %w", core.ErrTokenInvalid)
	}

	var tokenType string
	if err := token.Get("type", &tokenType); err != nil ||
		tokenType != sessionTokenType {
		return nil, fmt.Errorf(
			"parse session: invalid token type: %w",
			core.ErrTokenInvalid,
		)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return nil, fmt.Errorf("parse session: missing subject: %w", core.ErrTokenInvalid)
	}
	subjectID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse session: bad subject: %w", core.ErrTokenInvalid)
	}

	sessionID, ok := token.JwtID()
	if !ok || sessionID == "" {
		return nil, fmt.Errorf("parse session: missing id: %w", core.ErrTokenInvalid)
	}

	identity := &Identity{
		SubjectID: subjectID,
		SessionID: sessionID,
	}

	if err := token.Get("role", &identity.Role); err != nil {
		return nil, fmt.Errorf("parse session: missing role: %w", core.ErrTokenInvalid)
	}
	if err := token.Get("name", &identity.DisplayName); err != nil {
		return nil, fmt.Errorf("parse session: missing name: %w", core.ErrTokenInvalid)
	}

	var email string
	if err := token.Get("email", &email); err == nil {
		identity.Email = email
	}

	var storeID float64
	if err := token.Get("store_id", &storeID); err == nil {
		id := int64(storeID)
		identity.StoreID = &id
	}

	if exp, ok := token.Expiration(); ok {
		identity.ExpiresAt = exp
	}

	revoked, err := m.isRevoked(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("parse session: %w", core.ErrTokenRevoked)
	}

	return identity, nil
}

// Revoke ends the session of identity until its natural expiry.
func (m *SessionManager) Revoke(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.SessionID == "" {
		return nil
	}

	ttl := identity.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	key := core.RedisKey("session", "revoked", identity.SessionID)
	if err := m.redis.Set(ctx, key, identity.SubjectID, ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (m *SessionManager) isRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := core.RedisKey("session", "revoked", sessionID)

	exists, err := m.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check session denylist: %w", err)
	}

	return exists > 0, nil
}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

func (m *SessionManager) CookieName() string {
	return m.config.CookieName
}

func (m *SessionManager) Cookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.config.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.config.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// FromRequest resolves the identity from the session cookie. A missing or
// unusable cookie yields a nil identity and no error; the guard turns that
// into an unauthenticated rejection.
func (m *SessionManager) FromRequest(r *http.Request) (*Identity, error) {
	c, err := r.Cookie(m.config.CookieName)
	if err != nil || c.Value == "" {
		return nil, nil
	}

	identity, err := m.Parse(r.Context(), c.Value)
	if err != nil {
		if core.IsTokenError(err) {
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}

func (m *SessionManager) JWKSHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=3600")

		if err := json.NewEncoder(w).Encode(m.publicJWKS); err != nil {
			http.Error(
				w,
				"Internal Server Error",
				http.StatusInternalServerError,
			)
			return
		}
	}
}

func (m *SessionManager) KeyID() string {
	var kid string
	//nolint:errcheck // key ID always set during construction
	_ = m.privateKey.Get(jwk.KeyIDKey, &kid)
	return kid
}
