// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/core"
)

const recentLimit = 5

// RecentActivity is the part of the catalog the dashboard shows.
type RecentActivity interface {
	ListOrders(ctx context.Context, f catalog.Filter) (core.Page[catalog.Order], error)
	ListProducts(ctx context.Context, f catalog.Filter) (core.Page[catalog.Product], error)
}

type Handler struct {
	stats      StatsSource
	recent     RecentActivity
	msgs       *core.Messages
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	redisPing  func(ctx context.Context) error
	dbPing     func(ctx context.Context) error
}

// HandlerConfig wires the dashboard. The database hooks stay nil when the
// console runs against the remote API.
type HandlerConfig struct {
	Stats      StatsSource
	Recent     RecentActivity
	Messages   *core.Messages
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	RedisPing  func(ctx context.Context) error
	DBPing     func(ctx context.Context) error
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		stats:      cfg.Stats,
		recent:     cfg.Recent,
		msgs:       cfg.Messages,
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		redisPing:  cfg.RedisPing,
		dbPing:     cfg.DBPing,
	}
}

// RegisterRoutes mounts the dashboard on an admin-guarded router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/stats", h.GetSystemStats)
	r.Get("/stats/db", h.GetDatabaseStats)
	r.Get("/stats/redis", h.GetRedisStats)
	r.Get("/stats/runtime", h.GetRuntimeStats)
}

// Dashboard degrades to empty stats when the counters cannot be loaded, the
// way the page did before it was an API.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := DashboardResponse{
		RecentOrders:   []catalog.OrderResponse{},
		RecentProducts: []catalog.ProductResponse{},
	}

	stats, err := h.stats.Marketplace(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard stats failed", "error", err)
		resp.Error = h.msgs.ForError(err)
		core.View(w, r, resp)
		return
	}
	resp.Stats = toStatsResponse(stats)

	recent := catalog.Filter{Page: core.NewPageRequest(1, recentLimit)}

	orders, err := h.recent.ListOrders(ctx, recent)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard recent orders failed", "error", err)
		resp.Error = h.msgs.ForError(err)
	} else {
		resp.RecentOrders = core.MapPage(orders, catalog.ToOrderResponse).Items
	}

	products, err := h.recent.ListProducts(ctx, recent)
	if err != nil {
		slog.ErrorContext(ctx, "dashboard recent products failed", "error", err)
		resp.Error = h.msgs.ForError(err)
	} else {
		resp.RecentProducts = core.MapPage(products, catalog.ToProductResponse).Items
	}

	core.View(w, r, resp)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: pingOK(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: pingOK(ctx, h.redisPing),
			Stats:   h.getRedisStats(),
		},
		Runtime: readRuntimeStats(),
	}

	core.OK(w, response)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, readRuntimeStats())
}

// pingOK treats an absent collaborator as healthy.
func pingOK(ctx context.Context, ping func(ctx context.Context) error) bool {
	if ping == nil {
		return true
	}
	return ping(ctx) == nil
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxIdleTimeClosed:  stats.MaxIdleTimeClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}
