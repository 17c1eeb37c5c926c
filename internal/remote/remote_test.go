// AngelaMos | 2026
// remote_test.go

package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/config"
	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/user"
)

type recorded struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

type fakeAPI struct {
	mu       sync.Mutex
	calls    []recorded
	handlers map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *apiclient.Client) {
	t.Helper()

	api := &fakeAPI{handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(srv.Close)

	return api, apiclient.New(config.RemoteAPIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func (a *fakeAPI) on(method, path string, h http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[method+" "+path] = h
}

func (a *fakeAPI) reply(method, path string, status int, body string) {
	a.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	rec := recorded{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	a.mu.Lock()
	a.calls = append(a.calls, rec)
	h, ok := a.handlers[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"no route"}`)
		return
	}
	h(w, r)
}

func (a *fakeAPI) last() recorded {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[len(a.calls)-1]
}

func TestRemoteMerchantToggleFlow(t *testing.T) {
	api, client := newFakeAPI(t)
	users := NewUserRepository(client)
	svc := user.NewService(users)
	ctx := context.Background()

	api.reply(http.MethodGet, "/users/4", http.StatusOK,
		`{"user":{"id":4,"username":"ahmed","email":"ahmed@example.com","role":"merchant","is_active":true,"created_at":"2025-01-02T10:00:00"}}`)
	api.reply(http.MethodPost, "/users/4/toggle-status", http.StatusOK, `{"success":true}`)

	u, err := svc.ToggleMerchant(ctx, 4)
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, "/users/4/toggle-status", api.last().Path)
}

func TestRemoteUserListAndCount(t *testing.T) {
	api, client := newFakeAPI(t)
	users := NewUserRepository(client)

	api.reply(http.MethodGet, "/users", http.StatusOK,
		`{"users":[{"id":4,"username":"ahmed","role":"merchant","is_active":true}],"total":41,"pages":3}`)

	page, err := users.List(context.Background(), user.ListParams{
		Page: core.NewPageRequest(3, 20),
		Role: user.RoleMerchant,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 41, page.Total)
	assert.Nil(t, page.Items[0].Email)
	assert.Equal(t, "limit=20&page=3&role=merchant", api.last().Query)

	n, err := users.CountByRole(context.Background(), user.RoleMerchant)
	require.NoError(t, err)
	assert.Equal(t, 41, n)
}

func TestRemoteUserUnsupportedOperations(t *testing.T) {
	_, client := newFakeAPI(t)
	users := NewUserRepository(client)
	ctx := context.Background()

	_, err := users.FindForLogin(ctx, "ahmed", user.RoleMerchant)
	assert.ErrorIs(t, err, core.ErrUnsupported)

	err = users.UpdatePassword(ctx, 4, "hash")
	assert.ErrorIs(t, err, core.ErrUnsupported)
}

func TestRemoteProfileUpdateIsOneRequest(t *testing.T) {
	api, client := newFakeAPI(t)

	api.reply(http.MethodGet, "/users/4", http.StatusOK,
		`{"user":{"id":4,"username":"ahmed","email":"ahmed@example.com","role":"merchant","is_active":true}}`)
	api.reply(http.MethodPut, "/users/4", http.StatusOK,
		`{"user":{"id":4,"username":"ahmed","email":"ahmed@new.example.com","role":"merchant","is_active":true,"updated_at":"2025-03-01T08:30:00"}}`)

	email := "Ahmed@New.Example.com"
	repo := NewUserRepository(client)
	u, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	u.Email = &email
	require.NoError(t, repo.UpdateProfile(context.Background(), u, "new-secret"))

	last := api.last()
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, map[string]any{"email": email, "password": "new-secret"}, last.Body)
	assert.Equal(t, 2025, u.UpdatedAt.Year())
}

func TestRemoteDeleteMissingIsNotFound(t *testing.T) {
	api, client := newFakeAPI(t)
	repos := NewCatalogRepositories(client)

	api.reply(http.MethodDelete, "/products/9", http.StatusNotFound, `{"error":"Product not found"}`)

	err := repos.Products.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRemoteCreateOrderTotals(t *testing.T) {
	api, client := newFakeAPI(t)
	svc := catalog.NewService(NewCatalogRepositories(client), core.NewMessages("en"))
	ahmed := &auth.Identity{SubjectID: 4, Role: auth.RoleMerchant, DisplayName: "ahmed"}

	api.reply(http.MethodGet, "/products/11", http.StatusOK,
		`{"product":{"id":11,"store_id":7,"merchant_id":4,"name":"Tea","price":"25.50","is_active":true}}`)
	api.on(http.MethodPost, "/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"order":{"id":31,"product_id":11,"merchant_id":4,"quantity":2,"total_price":51.0,"status":"pending"}}`)
	})

	order, err := svc.CreateOrder(context.Background(), ahmed, catalog.CreateOrderRequest{
		ProductID:       11,
		Quantity:        2,
		CustomerName:    "Sara",
		CustomerPhone:   "0912345678",
		CustomerAddress: "Khartoum",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(31), order.ID)
	assert.Equal(t, "51.00", order.TotalPrice.StringFixed(2))
	assert.Equal(t, "51.00", api.last().Body["total_price"])
}

func TestRemoteEnsureStoreCreatesWhenMissing(t *testing.T) {
	api, client := newFakeAPI(t)
	repos := NewCatalogRepositories(client)

	api.reply(http.MethodPost, "/stores", http.StatusCreated,
		`{"store":{"id":7,"merchant_id":4,"name":"ahmed's store","is_active":true}}`)

	store, created, err := repos.Stores.EnsureForMerchant(context.Background(), &catalog.Store{
		MerchantID: 4,
		Name:       "ahmed's store",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(7), store.ID)

	api.reply(http.MethodGet, "/merchants/4/store", http.StatusOK,
		`{"store":{"id":7,"merchant_id":4,"name":"ahmed's store","is_active":true}}`)

	store, created, err = repos.Stores.EnsureForMerchant(context.Background(), &catalog.Store{MerchantID: 4})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(7), store.ID)
}

func TestRemoteOrderStatusUsesStatusEndpoint(t *testing.T) {
	api, client := newFakeAPI(t)
	repos := NewCatalogRepositories(client)

	api.reply(http.MethodPut, "/orders/31/status", http.StatusOK, `{"success":true}`)

	require.NoError(t, repos.Orders.SetStatus(context.Background(), 31, catalog.StatusShipping))
	assert.Equal(t, catalog.StatusShipping, api.last().Body["status"])
}

func TestRemoteMerchantStats(t *testing.T) {
	api, client := newFakeAPI(t)
	repos := NewCatalogRepositories(client)

	api.reply(http.MethodGet, "/products", http.StatusOK, `{"products":[],"total":3}`)
	api.reply(http.MethodGet, "/services", http.StatusOK, `{"services":[],"total":1}`)
	api.on(http.MethodGet, "/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("status") {
		case catalog.StatusPending:
			_, _ = io.WriteString(w, `{"orders":[],"total":2}`)
		case catalog.StatusDelivered:
			_, _ = io.WriteString(w, `{"orders":[{"id":1,"total_price":"51.00"},{"id":2,"total_price":10}],"total":2}`)
		default:
			_, _ = io.WriteString(w, `{"orders":[],"total":5}`)
		}
	})

	stats, err := repos.Stats.Merchant(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.ProductsCount)
	assert.Equal(t, 1, stats.ServicesCount)
	assert.Equal(t, 5, stats.OrdersCount)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, "61.00", stats.TotalRevenue.StringFixed(2))
}

func TestRemoteMarketplaceStats(t *testing.T) {
	api, client := newFakeAPI(t)

	api.reply(http.MethodGet, "/stats", http.StatusOK,
		`{"total_users":12,"total_stores":4,"pending_orders":3,"total_revenue":"99.5"}`)

	stats, err := NewStatsSource(client).Marketplace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, stats.Merchants)
	assert.Equal(t, 4, stats.Stores)
	assert.Equal(t, 3, stats.PendingOrders)
	assert.Equal(t, 0, stats.Jobs)
	assert.Equal(t, "99.50", stats.Revenue.StringFixed(2))
}

func TestRemoteServerErrorIsServerKind(t *testing.T) {
	api, client := newFakeAPI(t)

	api.reply(http.MethodGet, "/ads", http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := NewAdRepository(client).List(context.Background(), core.NewPageRequest(1, 20))
	assert.ErrorIs(t, err, core.ErrServer)
}
