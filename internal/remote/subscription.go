// AngelaMos | 2026
// subscription.go

package remote

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
)

type SubscriptionSource interface {
	Subscription(ctx context.Context, merchantID int64) (map[string]any, error)
	SubscriptionHistory(ctx context.Context, merchantID int64) ([]map[string]any, error)
}

var _ SubscriptionSource = (*apiclient.Client)(nil)

// SubscriptionHandler shows a merchant their plan. Subscriptions only exist
// on the marketplace API.
type SubscriptionHandler struct {
	source SubscriptionSource
	msgs   *core.Messages
}

func NewSubscriptionHandler(source SubscriptionSource, msgs *core.Messages) *SubscriptionHandler {
	return &SubscriptionHandler{source: source, msgs: msgs}
}

func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/subscription", h.Subscription)
}

type SubscriptionResponse struct {
	Subscription map[string]any   `json:"subscription"`
	History      []map[string]any `json:"history"`
}

func (h *SubscriptionHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	merchantID := auth.IdentityFrom(ctx).SubjectID

	current, err := h.source.Subscription(ctx, merchantID)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	history, err := h.source.SubscriptionHistory(ctx, merchantID)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	core.View(w, r, SubscriptionResponse{
		Subscription: current,
		History:      history,
	})
}
