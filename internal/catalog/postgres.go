// AngelaMos | 2026
// postgres.go

package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

// NewPostgresRepositories wires the local backend. Deletes go through
// remover so owned rows disappear in the same transaction.
func NewPostgresRepositories(db *sqlx.DB, remover *ownership.Remover) Repositories {
	return Repositories{
		Stores:    &storeRepository{db: db, tx: db, remover: remover},
		Products:  &productRepository{db: db, remover: remover},
		Offerings: &offeringRepository{db: db, remover: remover},
		Orders:    &orderRepository{db: db},
		Stats:     &statsRepository{db: db},
	}
}

// NewTxRepositories binds every repository to tx so several writes form one
// unit of work. Deletes are not available through them.
func NewTxRepositories(tx *sqlx.Tx) Repositories {
	return Repositories{
		Stores:    &storeRepository{db: tx},
		Products:  &productRepository{db: tx},
		Offerings: &offeringRepository{db: tx},
		Orders:    &orderRepository{db: tx},
		Stats:     &statsRepository{db: tx},
	}
}

func cascade(ctx context.Context, remover *ownership.Remover, table string, id int64) error {
	if remover == nil {
		return fmt.Errorf("delete %s %d: %w", table, id, core.ErrUnsupported)
	}
	if _, err := remover.Delete(ctx, table, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", table, id, err)
	}
	return nil
}

type statsRepository struct {
	db core.DBTX
}

func (r *statsRepository) Merchant(
	ctx context.Context,
	merchantID, storeID int64,
) (MerchantStats, error) {
	query := `
		SELECT
		    (SELECT COUNT(*) FROM products WHERE merchant_id = $1) AS products_count,
		    (SELECT COUNT(*) FROM services WHERE store_id = $2) AS services_count,
		    (SELECT COUNT(*) FROM orders WHERE merchant_id = $1) AS orders_count,
		    (SELECT COUNT(*) FROM orders WHERE merchant_id = $1 AND status = 'pending') AS pending_orders,
		    (SELECT COALESCE(SUM(total_price), 0) FROM orders
		      WHERE merchant_id = $1 AND status = 'delivered') AS total_revenue`

	var stats MerchantStats
	if err := r.db.GetContext(ctx, &stats, query, merchantID, storeID); err != nil {
		return MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}
	return stats, nil
}
