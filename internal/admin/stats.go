// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/core"
)

// MarketplaceStats are the headline counters of the admin dashboard.
type MarketplaceStats struct {
	Merchants     int             `db:"total_users"`
	Admins        int             `db:"total_admins"`
	Stores        int             `db:"total_stores"`
	ActiveStores  int             `db:"active_stores"`
	Products      int             `db:"total_products"`
	Services      int             `db:"total_services"`
	Orders        int             `db:"total_orders"`
	PendingOrders int             `db:"pending_orders"`
	Ads           int             `db:"total_ads"`
	Jobs          int             `db:"total_jobs"`
	Revenue       decimal.Decimal `db:"total_revenue"`
}

type StatsSource interface {
	Marketplace(ctx context.Context) (MarketplaceStats, error)
}

type postgresStats struct {
	db core.DBTX
}

func NewPostgresStats(db core.DBTX) StatsSource {
	return &postgresStats{db: db}
}

func (s *postgresStats) Marketplace(ctx context.Context) (MarketplaceStats, error) {
	query := `
		SELECT
		    (SELECT COUNT(*) FROM users WHERE role = 'merchant') AS total_users,
		    (SELECT COUNT(*) FROM users WHERE role = 'admin') AS total_admins,
		    (SELECT COUNT(*) FROM stores) AS total_stores,
		    (SELECT COUNT(*) FROM stores WHERE is_active) AS active_stores,
		    (SELECT COUNT(*) FROM products) AS total_products,
		    (SELECT COUNT(*) FROM services) AS total_services,
		    (SELECT COUNT(*) FROM orders) AS total_orders,
		    (SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders,
		    (SELECT COUNT(*) FROM ads) AS total_ads,
		    (SELECT COUNT(*) FROM jobs) AS total_jobs,
		    (SELECT COALESCE(SUM(total_price), 0) FROM orders
		      WHERE status = 'delivered') AS total_revenue`

	var stats MarketplaceStats
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return MarketplaceStats{}, fmt.Errorf("marketplace stats: %w", err)
	}
	return stats, nil
}
