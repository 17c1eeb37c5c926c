// AngelaMos | 2026
// catalog.go

package remote

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/apiclient"
	"github.com/baytalsudani/console/internal/catalog"
	"github.com/baytalsudani/console/internal/core"
)

type apiStore struct {
	ID            int64          `json:"id"`
	MerchantID    int64          `json:"merchant_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	IsActive      bool           `json:"is_active"`
	CreatedAt     apiclient.Time `json:"created_at"`
	UpdatedAt     apiclient.Time `json:"updated_at"`
	MerchantName  string         `json:"merchant_name"`
	ProductsCount int            `json:"products_count"`
	ServicesCount int            `json:"services_count"`
}

func (s apiStore) toStore() (catalog.Store, error) {
	return catalog.Store{
		ID:            s.ID,
		MerchantID:    s.MerchantID,
		Name:          s.Name,
		Description:   s.Description,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt.Time,
		UpdatedAt:     s.UpdatedAt.Time,
		MerchantName:  s.MerchantName,
		ProductsCount: s.ProductsCount,
		ServicesCount: s.ServicesCount,
	}, nil
}

type apiProduct struct {
	ID          int64            `json:"id"`
	StoreID     int64            `json:"store_id"`
	MerchantID  int64            `json:"merchant_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       apiclient.Number `json:"price"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   apiclient.Time   `json:"created_at"`
	UpdatedAt   apiclient.Time   `json:"updated_at"`
	StoreName   string           `json:"store_name"`
}

func (p apiProduct) toProduct() (catalog.Product, error) {
	price, err := toDecimal("product price", p.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:          p.ID,
		StoreID:     p.StoreID,
		MerchantID:  p.MerchantID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
		StoreName:   p.StoreName,
	}, nil
}

type apiOffering struct {
	ID          int64            `json:"id"`
	StoreID     int64            `json:"store_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       apiclient.Number `json:"price"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   apiclient.Time   `json:"created_at"`
	UpdatedAt   apiclient.Time   `json:"updated_at"`
	StoreName   string           `json:"store_name"`
}

func (o apiOffering) toOffering() (catalog.Offering, error) {
	price, err := toDecimal("service price", o.Price)
	if err != nil {
		return catalog.Offering{}, err
	}
	return catalog.Offering{
		ID:          o.ID,
		StoreID:     o.StoreID,
		Name:        o.Name,
		Description: o.Description,
		Price:       price,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt.Time,
		UpdatedAt:   o.UpdatedAt.Time,
		StoreName:   o.StoreName,
	}, nil
}

type apiOrder struct {
	ID              int64            `json:"id"`
	ProductID       int64            `json:"product_id"`
	MerchantID      int64            `json:"merchant_id"`
	Quantity        int              `json:"quantity"`
	TotalPrice      apiclient.Number `json:"total_price"`
	Status          string           `json:"status"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	CreatedAt       apiclient.Time   `json:"created_at"`
	UpdatedAt       apiclient.Time   `json:"updated_at"`
	ProductName     string           `json:"product_name"`
}

func (o apiOrder) toOrder() (catalog.Order, error) {
	total, err := toDecimal("order total", o.TotalPrice)
	if err != nil {
		return catalog.Order{}, err
	}
	return catalog.Order{
		ID:              o.ID,
		ProductID:       o.ProductID,
		MerchantID:      o.MerchantID,
		Quantity:        o.Quantity,
		TotalPrice:      total,
		Status:          o.Status,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
		ProductName:     o.ProductName,
	}, nil
}

func filterQuery(f catalog.Filter) query {
	return query{}.
		id("merchant_id", f.MerchantID).
		id("store_id", f.StoreID).
		str("status", f.Status).
		str("search", f.Search)
}

// one converts a single decoded item, treating an empty answer as missing.
func one[T, U any](item *T, err error, op string, convert func(T) (U, error)) (*U, error) {
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	out, err := convert(*item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &out, nil
}

// NewCatalogRepositories wires the catalog to the marketplace API.
func NewCatalogRepositories(client *apiclient.Client) catalog.Repositories {
	stores := &storeRepository{
		client: client,
		stores: apiclient.NewResource[apiStore](client, "/stores", "stores", "store"),
	}
	products := &productRepository{
		products: apiclient.NewResource[apiProduct](client, "/products", "products", "product"),
	}
	offerings := &offeringRepository{
		offerings: apiclient.NewResource[apiOffering](client, "/services", "services", "service"),
	}
	orders := &orderRepository{
		client: client,
		orders: apiclient.NewResource[apiOrder](client, "/orders", "orders", "order"),
	}

	return catalog.Repositories{
		Stores:    stores,
		Products:  products,
		Offerings: offerings,
		Orders:    orders,
		Stats: &merchantStats{
			products:  products.products,
			offerings: offerings.offerings,
			orders:    orders.orders,
		},
	}
}

type storeRepository struct {
	client *apiclient.Client
	stores *apiclient.Resource[apiStore]
}

func (r *storeRepository) List(ctx context.Context, f catalog.Filter) (core.Page[catalog.Store], error) {
	f.Page.Normalize()
	page, err := r.stores.List(ctx, f.Page, filterQuery(f).values())
	if err != nil {
		return core.Page[catalog.Store]{}, fmt.Errorf("list stores: %w", err)
	}
	return mapPage(page, apiStore.toStore)
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*catalog.Store, error) {
	item, err := r.stores.Get(ctx, id)
	return one(item, err, "get store", apiStore.toStore)
}

func (r *storeRepository) FindByMerchant(ctx context.Context, merchantID int64) (*catalog.Store, error) {
	var item apiStore
	if err := r.client.MerchantStore(ctx, merchantID, &item); err != nil {
		return nil, fmt.Errorf("merchant %d store: %w", merchantID, err)
	}
	if item.ID == 0 {
		return nil, fmt.Errorf("merchant %d store: %w", merchantID, core.ErrNotFound)
	}
	store, err := item.toStore()
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// EnsureForMerchant is check-then-create; the API is expected to reject a
// second store for the same merchant.
func (r *storeRepository) EnsureForMerchant(
	ctx context.Context,
	candidate *catalog.Store,
) (*catalog.Store, bool, error) {
	existing, err := r.FindByMerchant(ctx, candidate.MerchantID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, false, err
	}

	item, err := r.stores.Create(ctx, map[string]any{
		"merchant_id": candidate.MerchantID,
		"name":        candidate.Name,
		"description": candidate.Description,
		"is_active":   true,
	})
	created, err := one(item, err, "create store", apiStore.toStore)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (r *storeRepository) Update(ctx context.Context, store *catalog.Store) error {
	item, err := r.stores.Update(ctx, store.ID, map[string]string{
		"name":        store.Name,
		"description": store.Description,
	})
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if item != nil {
		store.UpdatedAt = item.UpdatedAt.Time
	}
	return nil
}

func (r *storeRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.stores.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set store active: %w", err)
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.stores.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete store %d: %w", id, err)
	}
	return nil
}

type productRepository struct {
	products *apiclient.Resource[apiProduct]
}

func productBody(p *catalog.Product) map[string]any {
	return map[string]any{
		"store_id":    p.StoreID,
		"merchant_id": p.MerchantID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"is_active":   p.IsActive,
	}
}

func (r *productRepository) List(ctx context.Context, f catalog.Filter) (core.Page[catalog.Product], error) {
	f.Page.Normalize()
	page, err := r.products.List(ctx, f.Page, filterQuery(f).values())
	if err != nil {
		return core.Page[catalog.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return mapPage(page, apiProduct.toProduct)
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*catalog.Product, error) {
	item, err := r.products.Get(ctx, id)
	return one(item, err, "get product", apiProduct.toProduct)
}

func (r *productRepository) Create(ctx context.Context, product *catalog.Product) error {
	item, err := r.products.Create(ctx, productBody(product))
	created, err := one(item, err, "create product", apiProduct.toProduct)
	if err != nil {
		return err
	}
	product.ID = created.ID
	product.CreatedAt = created.CreatedAt
	product.UpdatedAt = created.UpdatedAt
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *catalog.Product) error {
	item, err := r.products.Update(ctx, product.ID, map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if item != nil {
		product.UpdatedAt = item.UpdatedAt.Time
	}
	return nil
}

func (r *productRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.products.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	if err := r.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

type offeringRepository struct {
	offerings *apiclient.Resource[apiOffering]
}

func (r *offeringRepository) List(ctx context.Context, f catalog.Filter) (core.Page[catalog.Offering], error) {
	f.Page.Normalize()
	page, err := r.offerings.List(ctx, f.Page, filterQuery(f).values())
	if err != nil {
		return core.Page[catalog.Offering]{}, fmt.Errorf("list services: %w", err)
	}
	return mapPage(page, apiOffering.toOffering)
}

func (r *offeringRepository) GetByID(ctx context.Context, id int64) (*catalog.Offering, error) {
	item, err := r.offerings.Get(ctx, id)
	return one(item, err, "get service", apiOffering.toOffering)
}

func (r *offeringRepository) Create(ctx context.Context, offering *catalog.Offering) error {
	item, err := r.offerings.Create(ctx, map[string]any{
		"store_id":    offering.StoreID,
		"name":        offering.Name,
		"description": offering.Description,
		"price":       offering.Price.StringFixed(2),
		"is_active":   offering.IsActive,
	})
	created, err := one(item, err, "create service", apiOffering.toOffering)
	if err != nil {
		return err
	}
	offering.ID = created.ID
	offering.CreatedAt = created.CreatedAt
	offering.UpdatedAt = created.UpdatedAt
	return nil
}

func (r *offeringRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := r.offerings.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set service active: %w", err)
	}
	return nil
}

func (r *offeringRepository) Delete(ctx context.Context, id int64) error {
	if err := r.offerings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service %d: %w", id, err)
	}
	return nil
}

type orderRepository struct {
	client *apiclient.Client
	orders *apiclient.Resource[apiOrder]
}

func (r *orderRepository) List(ctx context.Context, f catalog.Filter) (core.Page[catalog.Order], error) {
	f.Page.Normalize()
	page, err := r.orders.List(ctx, f.Page, filterQuery(f).values())
	if err != nil {
		return core.Page[catalog.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	return mapPage(page, apiOrder.toOrder)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*catalog.Order, error) {
	item, err := r.orders.Get(ctx, id)
	return one(item, err, "get order", apiOrder.toOrder)
}

func (r *orderRepository) Create(ctx context.Context, order *catalog.Order) error {
	item, err := r.orders.Create(ctx, map[string]any{
		"product_id":       order.ProductID,
		"merchant_id":      order.MerchantID,
		"quantity":         order.Quantity,
		"total_price":      order.TotalPrice.StringFixed(2),
		"status":           order.Status,
		"customer_name":    order.CustomerName,
		"customer_phone":   order.CustomerPhone,
		"customer_address": order.CustomerAddress,
	})
	created, err := one(item, err, "create order", apiOrder.toOrder)
	if err != nil {
		return err
	}
	order.ID = created.ID
	order.CreatedAt = created.CreatedAt
	order.UpdatedAt = created.UpdatedAt
	return nil
}

func (r *orderRepository) SetStatus(ctx context.Context, id int64, status string) error {
	if err := r.client.UpdateOrderStatus(ctx, id, status); err != nil {
		return fmt.Errorf("set order %d status: %w", id, err)
	}
	return nil
}

// merchantStats assembles the merchant dashboard from collection totals.
// Revenue walks the merchant's delivered orders page by page.
type merchantStats struct {
	products  *apiclient.Resource[apiProduct]
	offerings *apiclient.Resource[apiOffering]
	orders    *apiclient.Resource[apiOrder]
}

func (s *merchantStats) Merchant(
	ctx context.Context,
	merchantID, storeID int64,
) (catalog.MerchantStats, error) {
	var (
		stats catalog.MerchantStats
		err   error
	)

	byMerchant := query{}.id("merchant_id", merchantID)

	if stats.ProductsCount, err = count(ctx, s.products, byMerchant); err != nil {
		return catalog.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}
	if stats.ServicesCount, err = count(ctx, s.offerings, query{}.id("store_id", storeID)); err != nil {
		return catalog.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}
	if stats.OrdersCount, err = count(ctx, s.orders, byMerchant); err != nil {
		return catalog.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}

	pending := query{}.id("merchant_id", merchantID).str("status", catalog.StatusPending)
	if stats.PendingOrders, err = count(ctx, s.orders, pending); err != nil {
		return catalog.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}

	if stats.TotalRevenue, err = s.revenue(ctx, merchantID); err != nil {
		return catalog.MerchantStats{}, fmt.Errorf("merchant stats: %w", err)
	}
	return stats, nil
}

func (s *merchantStats) revenue(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	delivered := query{}.id("merchant_id", merchantID).str("status", catalog.StatusDelivered)
	total := decimal.Zero

	for page := 1; ; page++ {
		req := core.NewPageRequest(page, core.MaxPageSize)
		batch, err := s.orders.List(ctx, req, delivered.values())
		if err != nil {
			return decimal.Zero, err
		}

		for _, o := range batch.Items {
			amount, err := toDecimal("order total", o.TotalPrice)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(amount)
		}

		if len(batch.Items) == 0 || page*req.PageSize >= batch.Total {
			return total, nil
		}
	}
}
