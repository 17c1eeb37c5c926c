// AngelaMos | 2026
// guard.go

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/metrics"
)

// SessionSource resolves the identity carried by a request, nil when there
// is no usable session.
type SessionSource interface {
	FromRequest(r *http.Request) (*auth.Identity, error)
}

// RequireRole runs the guard for one portal. Browser callers that fail are
// sent to that portal's login with a flash message; JSON callers get the
// error body. On success the identity is bound to the request context.
func RequireRole(
	guard *auth.Guard,
	sessions SessionSource,
	role string,
	msgs *core.Messages,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.FromRequest(r)
			if err != nil {
				slog.ErrorContext(r.Context(), "resolve session", "error", err)
				identity = nil
			}

			ctx, err := guard.Authorize(r.Context(), identity, role)
			if err != nil {
				reject(w, r, role, msgs, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(
	w http.ResponseWriter,
	r *http.Request,
	role string,
	msgs *core.Messages,
	err error,
) {
	reason := auth.Reason(err)
	metrics.RecordGuardRejection(role, reason)

	if reason == "error" {
		slog.ErrorContext(r.Context(), "guard check failed",
			"role", role,
			"path", r.URL.Path,
			"error", err,
		)
	}

	if core.WantsJSON(r) {
		core.Fail(w, msgs, err)
		return
	}

	core.Redirect(w, r, auth.LoginPath(role), core.FlashError, rejectMessage(role, msgs, err))
}

func rejectMessage(role string, msgs *core.Messages, err error) string {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		if role == auth.RoleAdmin {
			return msgs.Get(core.MsgLoginRequiredAdmin)
		}
		return msgs.Get(core.MsgLoginRequiredMerch)
	case errors.Is(err, core.ErrForbidden):
		return msgs.Get(core.MsgForbidden)
	case errors.Is(err, core.ErrAccountDisabled):
		return msgs.Get(core.MsgAccountDisabled)
	default:
		return msgs.ForError(err)
	}
}
