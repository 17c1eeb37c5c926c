// AngelaMos | 2026
// product_repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

const productSelect = `
		SELECT p.id, p.store_id, p.merchant_id, p.name, p.description, p.price,
		       p.is_active, p.created_at, p.updated_at,
		       COALESCE(s.name, '') AS store_name
		FROM products p
		LEFT JOIN stores s ON s.id = p.store_id`

type productRepository struct {
	db      core.DBTX
	remover *ownership.Remover
}

func (r *productRepository) List(ctx context.Context, f Filter) (core.Page[Product], error) {
	f.Page.Normalize()

	var c conditions
	if f.MerchantID != 0 {
		c.add("p.merchant_id = $%[1]d", f.MerchantID)
	}
	if f.StoreID != 0 {
		c.add("p.store_id = $%[1]d", f.StoreID)
	}
	if f.Search != "" {
		c.add("(p.name ILIKE $%[1]d OR p.description ILIKE $%[1]d)", likePattern(f.Search))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + c.where()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return core.Page[Product]{}, fmt.Errorf("count products: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d`,
		productSelect, c.where(), c.next(), c.next()+1)

	args := append(c.args, f.Page.PageSize, f.Page.Offset())

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return core.Page[Product]{}, fmt.Errorf("list products: %w", err)
	}

	return core.NewPage(products, total, f.Page), nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := r.db.GetContext(ctx, &product, productSelect+`
		WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) Create(ctx context.Context, product *Product) error {
	err := r.db.GetContext(ctx, product, `
		INSERT INTO products (name, description, price, merchant_id, store_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		product.Name,
		product.Description,
		product.Price,
		product.MerchantID,
		product.StoreID,
		product.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *Product) error {
	err := r.db.GetContext(ctx, &product.UpdatedAt, `
		UPDATE products
		SET name = $2, description = $3, price = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		product.ID, product.Name, product.Description, product.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *productRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return core.ExecOne(ctx, r.db, "set product active", `
		UPDATE products
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return cascade(ctx, r.remover, "products", id)
}
