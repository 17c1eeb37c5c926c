// AngelaMos | 2026
// order_repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baytalsudani/console/internal/core"
)

const orderSelect = `
		SELECT o.id, o.product_id, o.merchant_id, o.quantity, o.total_price,
		       o.status, o.customer_name, o.customer_phone, o.customer_address,
		       o.created_at, o.updated_at,
		       COALESCE(p.name, '') AS product_name
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id`

type orderRepository struct {
	db core.DBTX
}

func (r *orderRepository) List(ctx context.Context, f Filter) (core.Page[Order], error) {
	f.Page.Normalize()

	var c conditions
	if f.MerchantID != 0 {
		c.add("o.merchant_id = $%[1]d", f.MerchantID)
	}
	if f.StoreID != 0 {
		c.add("p.store_id = $%[1]d", f.StoreID)
	}
	if f.Status != "" {
		c.add("o.status = $%[1]d", f.Status)
	}
	if f.Search != "" {
		c.add("(o.customer_name ILIKE $%[1]d OR o.customer_phone ILIKE $%[1]d)", likePattern(f.Search))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		WHERE ` + c.where()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return core.Page[Order]{}, fmt.Errorf("count orders: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $%d OFFSET $%d`,
		orderSelect, c.where(), c.next(), c.next()+1)

	args := append(c.args, f.Page.PageSize, f.Page.Offset())

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return core.Page[Order]{}, fmt.Errorf("list orders: %w", err)
	}

	return core.NewPage(orders, total, f.Page), nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var order Order
	err := r.db.GetContext(ctx, &order, orderSelect+`
		WHERE o.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) Create(ctx context.Context, order *Order) error {
	err := r.db.GetContext(ctx, order, `
		INSERT INTO orders (product_id, quantity, total_price, status, merchant_id,
		                    customer_name, customer_phone, customer_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		order.ProductID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
		order.MerchantID,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerAddress,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *orderRepository) SetStatus(ctx context.Context, id int64, status string) error {
	return core.ExecOne(ctx, r.db, "set order status", `
		UPDATE orders
		SET status = $2, updated_at = NOW()
		WHERE id = $1`, id, status)
}
