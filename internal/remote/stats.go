// AngelaMos | 2026
// stats.go

package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/admin"
	"github.com/baytalsudani/console/internal/apiclient"
)

type StatsSource struct {
	client *apiclient.Client
}

func NewStatsSource(client *apiclient.Client) *StatsSource {
	return &StatsSource{client: client}
}

var _ admin.StatsSource = (*StatsSource)(nil)

// Marketplace reads /stats. Counters the API leaves out stay zero.
func (s *StatsSource) Marketplace(ctx context.Context) (admin.MarketplaceStats, error) {
	raw, err := s.client.Stats(ctx)
	if err != nil {
		return admin.MarketplaceStats{}, fmt.Errorf("marketplace stats: %w", err)
	}

	revenue, err := decimalOf(raw, "total_revenue")
	if err != nil {
		return admin.MarketplaceStats{}, fmt.Errorf("marketplace stats: %w", err)
	}

	return admin.MarketplaceStats{
		Merchants:     intOf(raw, "total_users"),
		Admins:        intOf(raw, "total_admins"),
		Stores:        intOf(raw, "total_stores"),
		ActiveStores:  intOf(raw, "active_stores"),
		Products:      intOf(raw, "total_products"),
		Services:      intOf(raw, "total_services"),
		Orders:        intOf(raw, "total_orders"),
		PendingOrders: intOf(raw, "pending_orders"),
		Ads:           intOf(raw, "total_ads"),
		Jobs:          intOf(raw, "total_jobs"),
		Revenue:       revenue,
	}, nil
}

func intOf(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64() //nolint:errcheck // non-integers count as zero
		return int(n)
	default:
		return 0
	}
}

func decimalOf(m map[string]any, key string) (decimal.Decimal, error) {
	switch v := m[key].(type) {
	case nil:
		return decimal.Zero, nil
	case float64:
		return decimal.NewFromFloat(v).Round(2), nil
	case string:
		return toDecimal(key, apiclient.Number(v))
	default:
		return decimal.Zero, fmt.Errorf("%s has type %T", key, v)
	}
}
