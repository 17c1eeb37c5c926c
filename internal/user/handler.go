// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
)

const usersPath = "/admin/users"

type Handler struct {
	service *Service
	msgs    *core.Messages
}

func NewHandler(service *Service, msgs *core.Messages) *Handler {
	return &Handler{
		service: service,
		msgs:    msgs,
	}
}

// RegisterAdminRoutes mounts merchant account management. r must already be
// guarded for the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateMerchant)
		r.Get("/{userID}", h.GetUser)
		r.Post("/{userID}/toggle-status", h.ToggleStatus)
		r.Post("/{userID}/delete", h.DeleteUser)
	})
}

// RegisterMerchantRoutes mounts the self-service profile. r must already be
// guarded for the merchant role.
func (h *Handler) RegisterMerchantRoutes(r chi.Router) {
	r.Get("/profile", h.GetProfile)
	r.Post("/profile", h.UpdateProfile)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:   core.PageFromRequest(r),
		Role:   r.URL.Query().Get("role"),
		Search: r.URL.Query().Get("search"),
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	core.Paginated(w, r, core.MapPage(page, toResponse))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "userID")
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	core.View(w, r, ToUserResponse(user))
}

func (h *Handler) CreateMerchant(w http.ResponseWriter, r *http.Request) {
	var req CreateMerchantRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, usersPath, nil, err, core.MsgCreated)
		return
	}

	user, err := h.service.CreateMerchant(r.Context(), req)
	var data any
	if err == nil {
		data = ToUserResponse(user)
	}
	core.Finish(w, r, h.msgs, usersPath, data, err, core.MsgCreated)
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "userID")
	if err != nil {
		core.Finish(w, r, h.msgs, usersPath, nil, err, core.MsgUpdated)
		return
	}

	user, err := h.service.ToggleMerchant(r.Context(), id)
	if err != nil {
		core.Finish(w, r, h.msgs, usersPath, nil, err, core.MsgUpdated)
		return
	}

	msg := core.MsgDeactivated
	if user.IsActive {
		msg = core.MsgActivated
	}
	core.Finish(w, r, h.msgs, usersPath, ToUserResponse(user), nil, msg)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "userID")
	if err == nil {
		err = h.service.DeleteMerchant(r.Context(), id)
	}
	core.Finish(w, r, h.msgs, usersPath, map[string]int64{"id": id}, err, core.MsgDeleted)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFrom(r.Context())

	user, err := h.service.Get(r.Context(), identity.SubjectID)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	core.View(w, r, ToUserResponse(user))
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFrom(r.Context())
	const back = "/merchant/profile"

	var req UpdateProfileRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.SubjectID, req)
	var data any
	if err == nil {
		data = ToUserResponse(user)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgUpdated)
}
