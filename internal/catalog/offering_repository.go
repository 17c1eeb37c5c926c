// AngelaMos | 2026
// offering_repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

const offeringSelect = `
		SELECT v.id, v.store_id, v.name, v.description, v.price,
		       v.is_active, v.created_at, v.updated_at,
		       COALESCE(s.name, '') AS store_name
		FROM services v
		LEFT JOIN stores s ON s.id = v.store_id`

type offeringRepository struct {
	db      core.DBTX
	remover *ownership.Remover
}

func (r *offeringRepository) List(ctx context.Context, f Filter) (core.Page[Offering], error) {
	f.Page.Normalize()

	var c conditions
	if f.StoreID != 0 {
		c.add("v.store_id = $%[1]d", f.StoreID)
	}
	if f.MerchantID != 0 {
		c.add("s.merchant_id = $%[1]d", f.MerchantID)
	}
	if f.Search != "" {
		c.add("(v.name ILIKE $%[1]d OR v.description ILIKE $%[1]d)", likePattern(f.Search))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM services v
		LEFT JOIN stores s ON s.id = v.store_id
		WHERE ` + c.where()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return core.Page[Offering]{}, fmt.Errorf("count services: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $%d OFFSET $%d`,
		offeringSelect, c.where(), c.next(), c.next()+1)

	args := append(c.args, f.Page.PageSize, f.Page.Offset())

	var offerings []Offering
	if err := r.db.SelectContext(ctx, &offerings, query, args...); err != nil {
		return core.Page[Offering]{}, fmt.Errorf("list services: %w", err)
	}

	return core.NewPage(offerings, total, f.Page), nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id int64) (*Offering, error) {
	var offering Offering
	err := r.db.GetContext(ctx, &offering, offeringSelect+`
		WHERE v.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get service: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &offering, nil
}

func (r *offeringRepository) Create(ctx context.Context, offering *Offering) error {
	err := r.db.GetContext(ctx, offering, `
		INSERT INTO services (name, description, price, store_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		offering.Name,
		offering.Description,
		offering.Price,
		offering.StoreID,
		offering.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (r *offeringRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return core.ExecOne(ctx, r.db, "set service active", `
		UPDATE services
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *offeringRepository) Delete(ctx context.Context, id int64) error {
	return cascade(ctx, r.remover, "services", id)
}
