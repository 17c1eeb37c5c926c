// AngelaMos | 2026
// handler.go

package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/core"
)

// Handler serves the login entry points of one portal.
type Handler struct {
	service  *Service
	sessions *SessionManager
	msgs     *core.Messages
}

func NewHandler(
	service *Service,
	sessions *SessionManager,
	msgs *core.Messages,
) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		msgs:     msgs,
	}
}

func LoginPath(role string) string {
	return "/" + role + "/login"
}

func DashboardPath(role string) string {
	return "/" + role + "/dashboard"
}

// RegisterRoutes mounts login, logout and whoami for role. protect is the
// guard middleware for that role.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	role string,
	loginLimiter, protect func(http.Handler) http.Handler,
) {
	r.Get("/login", h.LoginPage(role))
	r.With(loginLimiter).Post("/login", h.Login(role))

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/logout", h.Logout(role))
		r.Get("/me", h.Me)
	})
}

func (h *Handler) LoginPage(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := h.sessions.FromRequest(r)
		if err == nil && identity != nil && identity.Role == role {
			http.Redirect(w, r, DashboardPath(role), http.StatusSeeOther)
			return
		}

		core.View(w, r, LoginView{Role: role, Strategy: h.service.Strategy()})
	}
}

func (h *Handler) Login(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := core.DecodeValid(r, &req); err != nil {
			h.loginFailed(w, r, role, err)
			return
		}

		identifier := req.LoginID()
		if identifier == "" || req.Password == "" {
			h.loginFailed(w, r, role, core.NewAppError(
				core.ErrValidation,
				h.msgs.Get(core.MsgMissingCredentials),
				http.StatusBadRequest,
				"MISSING_CREDENTIALS",
			))
			return
		}

		session, err := h.service.Login(r.Context(), identifier, req.Password, role)
		if err != nil {
			h.loginFailed(w, r, role, err)
			return
		}

		http.SetCookie(w, h.sessions.Cookie(session.Token, session.ExpiresAt))

		if core.WantsJSON(r) {
			core.OK(w, SessionResponse{
				User:      session.Identity,
				ExpiresAt: session.ExpiresAt,
				Redirect:  DashboardPath(role),
			})
			return
		}

		core.Redirect(w, r, DashboardPath(role),
			core.FlashSuccess, h.msgs.Get(core.MsgLoginSuccess))
	}
}

// loginFailed answers JSON callers with the error and sends browsers back to
// the login view with a localized message.
func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, role string, err error) {
	if core.WantsJSON(r) {
		core.Fail(w, h.msgs, err)
		return
	}

	if !core.IsClientError(err) {
		slog.ErrorContext(r.Context(), "login failed",
			"role", role,
			"error", err,
		)
	}
	core.Redirect(w, r, LoginPath(role), core.FlashError, h.msgs.ForError(err))
}

func (h *Handler) Logout(role string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFrom(r.Context())

		if err := h.service.Logout(r.Context(), identity); err != nil &&
			!errors.Is(err, core.ErrNotFound) {
			core.Fail(w, h.msgs, err)
			return
		}

		http.SetCookie(w, h.sessions.ClearCookie())
		core.Redirect(w, r, LoginPath(role),
			core.FlashSuccess, h.msgs.Get(core.MsgLogoutSuccess))
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	if identity == nil {
		core.Fail(w, h.msgs, core.ErrUnauthenticated)
		return
	}
	core.OK(w, identity)
}
