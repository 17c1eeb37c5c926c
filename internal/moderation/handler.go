// AngelaMos | 2026
// handler.go

package moderation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/core"
)

const (
	adsPath  = "/admin/ads"
	jobsPath = "/admin/jobs"
)

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

// RegisterRoutes mounts ad and job moderation on an admin-guarded router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ads", h.ListAds)
	r.Post("/ads", h.CreateAd)
	r.Post("/ads/{adID}/toggle-status", h.ToggleAd)
	r.Post("/ads/{adID}/delete", h.DeleteAd)

	r.Get("/jobs", h.ListJobs)
	r.Post("/jobs", h.CreateJob)
	r.Post("/jobs/{jobID}/approve", h.reviewJob(h.service.ApproveJob))
	r.Post("/jobs/{jobID}/reject", h.reviewJob(h.service.RejectJob))
	r.Post("/jobs/{jobID}/delete", h.DeleteJob)
}

func (h *Handler) ListAds(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListAds(r.Context(), core.PageFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToAdResponse))
}

func (h *Handler) CreateAd(w http.ResponseWriter, r *http.Request) {
	var req AdRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, adsPath, nil, err, core.MsgCreated)
		return
	}

	ad, err := h.service.CreateAd(r.Context(), req)
	var data any
	if err == nil {
		data = ToAdResponse(*ad)
	}
	core.Finish(w, r, h.msgs, adsPath, data, err, core.MsgCreated)
}

func (h *Handler) ToggleAd(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "adID")
	if err != nil {
		core.Finish(w, r, h.msgs, adsPath, nil, err, core.MsgUpdated)
		return
	}

	ad, err := h.service.ToggleAd(r.Context(), id)
	if err != nil {
		core.Finish(w, r, h.msgs, adsPath, nil, err, core.MsgUpdated)
		return
	}

	msg := core.MsgDeactivated
	if ad.IsActive {
		msg = core.MsgActivated
	}
	core.Finish(w, r, h.msgs, adsPath, ToAdResponse(*ad), nil, msg)
}

func (h *Handler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "adID")
	if err == nil {
		err = h.service.DeleteAd(r.Context(), id)
	}
	core.Finish(w, r, h.msgs, adsPath, map[string]int64{"id": id}, err, core.MsgDeleted)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListJobs(r.Context(), core.PageFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToJobResponse))
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, jobsPath, nil, err, core.MsgCreated)
		return
	}

	job, err := h.service.CreateJob(r.Context(), req)
	var data any
	if err == nil {
		data = ToJobResponse(*job)
	}
	core.Finish(w, r, h.msgs, jobsPath, data, err, core.MsgCreated)
}

func (h *Handler) reviewJob(
	review func(ctx context.Context, id int64) (*Job, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.IDParam(r, "jobID")
		if err != nil {
			core.Finish(w, r, h.msgs, jobsPath, nil, err, core.MsgUpdated)
			return
		}

		job, err := review(r.Context(), id)
		if err != nil {
			core.Finish(w, r, h.msgs, jobsPath, nil, err, core.MsgUpdated)
			return
		}

		msg := core.MsgDeactivated
		if job.IsActive {
			msg = core.MsgActivated
		}
		core.Finish(w, r, h.msgs, jobsPath, ToJobResponse(*job), nil, msg)
	}
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "jobID")
	if err == nil {
		err = h.service.DeleteJob(r.Context(), id)
	}
	core.Finish(w, r, h.msgs, jobsPath, map[string]int64{"id": id}, err, core.MsgDeleted)
}
