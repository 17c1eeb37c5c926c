// AngelaMos | 2026
// store_repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/baytalsudani/console/internal/core"
	"github.com/baytalsudani/console/internal/ownership"
)

const storeSelect = `
		SELECT s.id, s.merchant_id, s.name, s.description, s.is_active,
		       s.created_at, s.updated_at,
		       COALESCE(u.username, '') AS merchant_name,
		       (SELECT COUNT(*) FROM products p WHERE p.store_id = s.id) AS products_count,
		       (SELECT COUNT(*) FROM services v WHERE v.store_id = s.id) AS services_count
		FROM stores s
		LEFT JOIN users u ON u.id = s.merchant_id`

type storeRepository struct {
	db      core.DBTX
	tx      core.TxBeginner
	remover *ownership.Remover
}

func (r *storeRepository) List(ctx context.Context, f Filter) (core.Page[Store], error) {
	f.Page.Normalize()

	var c conditions
	if f.MerchantID != 0 {
		c.add("s.merchant_id = $%[1]d", f.MerchantID)
	}
	if f.Search != "" {
		c.add("(s.name ILIKE $%[1]d OR s.description ILIKE $%[1]d)", likePattern(f.Search))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM stores s WHERE " + c.where()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return core.Page[Store]{}, fmt.Errorf("count stores: %w", err)
	}

	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $%d OFFSET $%d`,
		storeSelect, c.where(), c.next(), c.next()+1)

	args := append(c.args, f.Page.PageSize, f.Page.Offset())

	var stores []Store
	if err := r.db.SelectContext(ctx, &stores, query, args...); err != nil {
		return core.Page[Store]{}, fmt.Errorf("list stores: %w", err)
	}

	return core.NewPage(stores, total, f.Page), nil
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*Store, error) {
	var store Store
	err := r.db.GetContext(ctx, &store, storeSelect+`
		WHERE s.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &store, nil
}

func (r *storeRepository) FindByMerchant(ctx context.Context, merchantID int64) (*Store, error) {
	return findMerchantStore(ctx, r.db, merchantID)
}

func findMerchantStore(ctx context.Context, db core.DBTX, merchantID int64) (*Store, error) {
	var store Store
	err := db.GetContext(ctx, &store, storeSelect+`
		WHERE s.merchant_id = $1
		ORDER BY s.id
		LIMIT 1`, merchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("merchant %d store: %w", merchantID, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("merchant %d store: %w", merchantID, err)
	}
	return &store, nil
}

// EnsureForMerchant locks the merchant row so two first visits cannot both
// create a store. A repository bound to a transaction runs inside it.
func (r *storeRepository) EnsureForMerchant(
	ctx context.Context,
	candidate *Store,
) (*Store, bool, error) {
	if r.tx == nil {
		return ensureStore(ctx, r.db, candidate)
	}

	var (
		store   *Store
		created bool
	)

	err := core.InTx(ctx, r.tx, func(tx *sqlx.Tx) error {
		var err error
		store, created, err = ensureStore(ctx, tx, candidate)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	return store, created, nil
}

func ensureStore(ctx context.Context, db core.DBTX, candidate *Store) (*Store, bool, error) {
	var merchantID int64
	err := db.GetContext(ctx, &merchantID,
		`SELECT id FROM users WHERE id = $1 AND role = 'merchant' FOR UPDATE`,
		candidate.MerchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("merchant %d: %w", candidate.MerchantID, core.ErrNotFound)
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock merchant: %w: %w", core.ErrTransaction, err)
	}

	existing, err := findMerchantStore(ctx, db, merchantID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	err = db.GetContext(ctx, candidate, `
		INSERT INTO stores (name, description, merchant_id, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING id, is_active, created_at, updated_at`,
		candidate.Name,
		candidate.Description,
		merchantID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("create store: %w: %w", core.ErrTransaction, err)
	}

	candidate.MerchantID = merchantID
	return candidate, true, nil
}

func (r *storeRepository) Update(ctx context.Context, store *Store) error {
	err := r.db.GetContext(ctx, &store.UpdatedAt, `
		UPDATE stores
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		store.ID, store.Name, store.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	return nil
}

func (r *storeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return core.ExecOne(ctx, r.db, "set store active", `
		UPDATE stores
		SET is_active = $2, updated_at = NOW()
		WHERE id = $1`, id, active)
}

func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	return cascade(ctx, r.remover, "stores", id)
}
