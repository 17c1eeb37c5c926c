// AngelaMos | 2026
// handler.go

package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
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

// RegisterAdminRoutes mounts marketplace moderation. r must already be
// guarded for the admin role.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/stores", h.ListStores)
	r.Post("/stores/{storeID}/toggle-status", h.ToggleStore)
	r.Post("/stores/{storeID}/delete", h.DeleteStore)

	r.Get("/products", h.ListProducts)
	r.Post("/products/{productID}/delete", h.DeleteProduct("/admin/products"))

	r.Get("/services", h.ListOfferings)
	r.Post("/services/{serviceID}/delete", h.DeleteOffering("/admin/services"))

	r.Get("/orders", h.ListOrders)
}

// RegisterMerchantRoutes mounts the merchant's own catalog. r must already be
// guarded for the merchant role.
func (h *Handler) RegisterMerchantRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/store-profile", h.StoreProfile)
	r.Post("/store-profile", h.UpdateStoreProfile)

	r.Get("/products", h.MyProducts)
	r.Post("/products/add", h.CreateProduct)
	r.Post("/products/{productID}/edit", h.UpdateProduct)
	r.Post("/products/{productID}/toggle-status", h.ToggleProduct)
	r.Post("/products/{productID}/delete", h.DeleteProduct("/merchant/products"))

	r.Get("/services", h.MyOfferings)
	r.Post("/services/add", h.CreateOffering)
	r.Post("/services/{serviceID}/toggle-status", h.ToggleOffering)
	r.Post("/services/{serviceID}/delete", h.DeleteOffering("/merchant/services"))

	r.Get("/orders", h.MyOrders)
	r.Post("/orders/add", h.CreateOrder)
	r.Post("/orders/{orderID}/update-status", h.UpdateOrderStatus)
}

func filterFromRequest(r *http.Request) Filter {
	q := r.URL.Query()
	storeID, _ := strconv.ParseInt(q.Get("store_id"), 10, 64) //nolint:errcheck // absent means any
	return Filter{
		Page:    core.PageFromRequest(r),
		StoreID: storeID,
		Status:  q.Get("status"),
		Search:  q.Get("search"),
	}
}

func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListStores(r.Context(), filterFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToStoreResponse))
}

func (h *Handler) ToggleStore(w http.ResponseWriter, r *http.Request) {
	const back = "/admin/stores"

	id, err := core.IDParam(r, "storeID")
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	store, err := h.service.ToggleStore(r.Context(), auth.IdentityFrom(r.Context()), id)
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}
	core.Finish(w, r, h.msgs, back, ToStoreResponse(*store), nil, toggledMessage(store.IsActive))
}

func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "storeID")
	if err == nil {
		err = h.service.DeleteStore(r.Context(), id)
	}
	core.Finish(w, r, h.msgs, "/admin/stores", map[string]int64{"id": id}, err, core.MsgDeleted)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListProducts(r.Context(), filterFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToProductResponse))
}

func (h *Handler) DeleteProduct(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.IDParam(r, "productID")
		if err == nil {
			err = h.service.DeleteProduct(r.Context(), auth.IdentityFrom(r.Context()), id)
		}
		core.Finish(w, r, h.msgs, back, map[string]int64{"id": id}, err, core.MsgDeleted)
	}
}

func (h *Handler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListOfferings(r.Context(), filterFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToOfferingResponse))
}

func (h *Handler) DeleteOffering(back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := core.IDParam(r, "serviceID")
		if err == nil {
			err = h.service.DeleteOffering(r.Context(), auth.IdentityFrom(r.Context()), id)
		}
		core.Finish(w, r, h.msgs, back, map[string]int64{"id": id}, err, core.MsgDeleted)
	}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListOrders(r.Context(), filterFromRequest(r))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToOrderResponse))
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.MerchantDashboard(r.Context(), auth.IdentityFrom(r.Context()))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	core.View(w, r, DashboardResponse{
		Store:          ToStoreResponse(*dash.Store),
		Stats:          toStatsResponse(dash.Stats),
		RecentOrders:   mapSlice(dash.RecentOrders, ToOrderResponse),
		RecentProducts: mapSlice(dash.RecentProducts, ToProductResponse),
	})
}

func (h *Handler) StoreProfile(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.EnsurePrimaryStore(r.Context(), auth.IdentityFrom(r.Context()))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.View(w, r, ToStoreResponse(*store))
}

func (h *Handler) UpdateStoreProfile(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/store-profile"

	var req UpdateStoreRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	store, err := h.service.UpdateStore(r.Context(), auth.IdentityFrom(r.Context()), req)
	var data any
	if err == nil {
		data = ToStoreResponse(*store)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgUpdated)
}

func (h *Handler) MyProducts(w http.ResponseWriter, r *http.Request) {
	f := filterFromRequest(r)
	f.MerchantID = auth.IdentityFrom(r.Context()).SubjectID

	page, err := h.service.ListProducts(r.Context(), f)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToProductResponse))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/products"

	var req ProductRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgCreated)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), auth.IdentityFrom(r.Context()), req)
	var data any
	if err == nil {
		data = ToProductResponse(*product)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgCreated)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/products"

	id, err := core.IDParam(r, "productID")
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	var req ProductRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), auth.IdentityFrom(r.Context()), id, req)
	var data any
	if err == nil {
		data = ToProductResponse(*product)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgUpdated)
}

func (h *Handler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/products"

	id, err := core.IDParam(r, "productID")
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	product, err := h.service.ToggleProduct(r.Context(), auth.IdentityFrom(r.Context()), id)
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}
	core.Finish(w, r, h.msgs, back, ToProductResponse(*product), nil, toggledMessage(product.IsActive))
}

func (h *Handler) MyOfferings(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.EnsurePrimaryStore(r.Context(), auth.IdentityFrom(r.Context()))
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}

	f := filterFromRequest(r)
	f.StoreID = store.ID

	page, err := h.service.ListOfferings(r.Context(), f)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToOfferingResponse))
}

func (h *Handler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/services"

	var req OfferingRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgCreated)
		return
	}

	offering, err := h.service.CreateOffering(r.Context(), auth.IdentityFrom(r.Context()), req)
	var data any
	if err == nil {
		data = ToOfferingResponse(*offering)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgCreated)
}

func (h *Handler) ToggleOffering(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/services"

	id, err := core.IDParam(r, "serviceID")
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}

	offering, err := h.service.ToggleOffering(r.Context(), auth.IdentityFrom(r.Context()), id)
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgUpdated)
		return
	}
	core.Finish(w, r, h.msgs, back, ToOfferingResponse(*offering), nil, toggledMessage(offering.IsActive))
}

func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	f := filterFromRequest(r)
	f.MerchantID = auth.IdentityFrom(r.Context()).SubjectID

	page, err := h.service.ListOrders(r.Context(), f)
	if err != nil {
		core.Fail(w, h.msgs, err)
		return
	}
	core.Paginated(w, r, core.MapPage(page, ToOrderResponse))
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/orders"

	var req CreateOrderRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgCreated)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), auth.IdentityFrom(r.Context()), req)
	var data any
	if err == nil {
		data = ToOrderResponse(*order)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgCreated)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	const back = "/merchant/orders"

	id, err := core.IDParam(r, "orderID")
	if err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgOrderStatusUpdated)
		return
	}

	var req OrderStatusRequest
	if err := core.Decode(r, &req); err != nil {
		core.Finish(w, r, h.msgs, back, nil, err, core.MsgOrderStatusUpdated)
		return
	}

	order, err := h.service.SetOrderStatus(r.Context(), auth.IdentityFrom(r.Context()), id, req.Status)
	var data any
	if err == nil {
		data = ToOrderResponse(*order)
	}
	core.Finish(w, r, h.msgs, back, data, err, core.MsgOrderStatusUpdated)
}

func toggledMessage(active bool) core.MessageID {
	if active {
		return core.MsgActivated
	}
	return core.MsgDeactivated
}
