// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/core"
)

type fakeStats struct {
	stats MarketplaceStats
	err   error
}

func (f fakeStats) Marketplace(context.Context) (MarketplaceStats, error) {
	return f.stats, f.err
}

type fakeRecent struct {
	orders   []catalog.Order
	products []catalog.Product
	limit    int
}

func (f *fakeRecent) ListOrders(_ context.Context, fl catalog.Filter) (core.Page[catalog.Order], error) {
	f.limit = fl.Page.PageSize
	return core.NewPage(f.orders, len(f.orders), fl.Page), nil
}

func (f *fakeRecent) ListProducts(_ context.Context, fl catalog.Filter) (core.Page[catalog.Product], error) {
	return core.NewPage(f.products, len(f.products), fl.Page), nil
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboard(t *testing.T) {
	recent := &fakeRecent{
		orders: []catalog.Order{{
			ID:         31,
			Quantity:   2,
			TotalPrice: decimal.RequireFromString("51"),
			Status:     catalog.StatusPending,
		}},
		products: []catalog.Product{{ID: 11, Name: "Tea", Price: decimal.RequireFromString("25.5")}},
	}
	h := NewHandler(HandlerConfig{
		Stats: fakeStats{stats: MarketplaceStats{
			Merchants:     3,
			Admins:        1,
			PendingOrders: 1,
			Revenue:       decimal.RequireFromString("120.5"),
		}},
		Recent:   recent,
		Messages: core.NewMessages("en"),
	})

	rec := serve(t, h, "/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, 3, body.Data.Stats.TotalUsers)
	assert.Equal(t, 1, body.Data.Stats.PendingOrders)
	assert.Equal(t, "120.50", body.Data.Stats.TotalRevenue)
	require.Len(t, body.Data.RecentOrders, 1)
	assert.Equal(t, "51.00", body.Data.RecentOrders[0].TotalPrice)
	require.Len(t, body.Data.RecentProducts, 1)
	assert.Equal(t, "25.50", body.Data.RecentProducts[0].Price)
	assert.Equal(t, recentLimit, recent.limit)
	assert.Empty(t, body.Data.Error)
}

func TestDashboardDegradesOnStatsFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Stats:    fakeStats{err: errors.New("connection reset")},
		Recent:   &fakeRecent{},
		Messages: core.NewMessages("en"),
	})

	rec := serve(t, h, "/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data DashboardResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, StatsResponse{}, body.Data.Stats)
	assert.NotEmpty(t, body.Data.Error)
	assert.Empty(t, body.Data.RecentOrders)
}

func TestSystemStatsWithoutDatabase(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Stats:     fakeStats{},
		Recent:    &fakeRecent{},
		Messages:  core.NewMessages("en"),
		RedisPing: func(context.Context) error { return errors.New("down") },
	})

	rec := serve(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Database.Healthy)
	assert.Nil(t, body.Data.Database.Stats)
	assert.False(t, body.Data.Redis.Healthy)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}

func TestPostgresStats(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM users WHERE role = 'merchant') AS total_users")).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_users", "total_admins", "total_stores", "active_stores",
			"total_products", "total_services", "total_orders", "pending_orders",
			"total_ads", "total_jobs", "total_revenue",
		}).AddRow(5, 1, 4, 3, 20, 6, 9, 2, 1, 2, "451.00"))

	stats, err := NewPostgresStats(sqlx.NewDb(raw, "sqlmock")).Marketplace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Merchants)
	assert.Equal(t, 3, stats.ActiveStores)
	assert.Equal(t, "451.00", stats.Revenue.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
