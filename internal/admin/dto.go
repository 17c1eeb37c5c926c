// AngelaMos | 2026
// dto.go

package admin

import (
	"github.com/baytalsudani/console/internal/catalog"
)

type StatsResponse struct {
	TotalUsers    int    `json:"total_users"`
	TotalAdmins   int    `json:"total_admins"`
	TotalStores   int    `json:"total_stores"`
	ActiveStores  int    `json:"active_stores"`
	TotalProducts int    `json:"total_products"`
	TotalServices int    `json:"total_services"`
	TotalOrders   int    `json:"total_orders"`
	PendingOrders int    `json:"pending_orders"`
	TotalAds      int    `json:"total_ads"`
	TotalJobs     int    `json:"total_jobs"`
	TotalRevenue  string `json:"total_revenue"`
}

type DashboardResponse struct {
	Stats          StatsResponse             `json:"stats"`
	RecentOrders   []catalog.OrderResponse   `json:"recent_orders"`
	RecentProducts []catalog.ProductResponse `json:"recent_products"`
	Error          string                    `json:"error,omitempty"`
}

func toStatsResponse(s MarketplaceStats) StatsResponse {
	return StatsResponse{
		TotalUsers:    s.Merchants,
		TotalAdmins:   s.Admins,
		TotalStores:   s.Stores,
		ActiveStores:  s.ActiveStores,
		TotalProducts: s.Products,
		TotalServices: s.Services,
		TotalOrders:   s.Orders,
		PendingOrders: s.PendingOrders,
		TotalAds:      s.Ads,
		TotalJobs:     s.Jobs,
		TotalRevenue:  s.Revenue.StringFixed(2),
	}
}

type SystemStatsResponse struct {
	Database DatabaseStatus `json:"database"`
	Redis    RedisStatus    `json:"redis"`
	Runtime  RuntimeStats   `json:"runtime"`
}

type DatabaseStatus struct {
	Healthy bool         `json:"healthy"`
	Stats   *DBPoolStats `json:"stats,omitempty"`
}

type RedisStatus struct {
	Healthy bool            `json:"healthy"`
	Stats   *RedisPoolStats `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxIdleTimeClosed  int64  `json:"max_idle_time_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
