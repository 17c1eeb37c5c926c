// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
)

const recentLimit = 5

type Service struct {
	stores    StoreRepository
	products  ProductRepository
	offerings OfferingRepository
	orders    OrderRepository
	stats     StatsRepository
	msgs      *core.Messages
}

func NewService(repos Repositories, msgs *core.Messages) *Service {
	return &Service{
		stores:    repos.Stores,
		products:  repos.Products,
		offerings: repos.Offerings,
		orders:    repos.Orders,
		stats:     repos.Stats,
		msgs:      msgs,
	}
}

// PrimaryStoreID resolves a merchant's store for the login descriptor.
func (s *Service) PrimaryStoreID(ctx context.Context, merchantID int64) (int64, error) {
	store, err := s.stores.FindByMerchant(ctx, merchantID)
	if err != nil {
		return 0, err
	}
	return store.ID, nil
}

// EnsurePrimaryStore returns the merchant's store, creating a default one on
// first use.
func (s *Service) EnsurePrimaryStore(
	ctx context.Context,
	identity *auth.Identity,
) (*Store, error) {
	if !identity.IsMerchant() {
		return nil, fmt.Errorf("store for %s: %w", identity.Role, core.ErrForbidden)
	}

	candidate := &Store{
		MerchantID:  identity.SubjectID,
		Name:        fmt.Sprintf(s.msgs.Get(core.MsgDefaultStoreName), identity.DisplayName),
		Description: s.msgs.Get(core.MsgDefaultStoreDetails),
	}

	store, created, err := s.stores.EnsureForMerchant(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if created {
		slog.InfoContext(ctx, "default store created",
			"merchant_id", identity.SubjectID,
			"store_id", store.ID,
		)
	}
	return store, nil
}

func (s *Service) ListStores(ctx context.Context, f Filter) (core.Page[Store], error) {
	return s.stores.List(ctx, f)
}

// ToggleStore flips a store's active flag. Only administrators moderate
// stores.
func (s *Service) ToggleStore(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) (*Store, error) {
	if !identity.IsAdmin() {
		return nil, fmt.Errorf("toggle store %d: %w", id, core.ErrNotModifiable)
	}

	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	store.IsActive = !store.IsActive
	if err := s.stores.SetActive(ctx, id, store.IsActive); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) DeleteStore(ctx context.Context, id int64) error {
	return s.stores.Delete(ctx, id)
}

func (s *Service) UpdateStore(
	ctx context.Context,
	identity *auth.Identity,
	req UpdateStoreRequest,
) (*Store, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}

	store, err := s.EnsurePrimaryStore(ctx, identity)
	if err != nil {
		return nil, err
	}

	store.Name = strings.TrimSpace(req.Name)
	store.Description = strings.TrimSpace(req.Description)
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Service) ListProducts(ctx context.Context, f Filter) (core.Page[Product], error) {
	return s.products.List(ctx, f)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) CreateProduct(
	ctx context.Context,
	identity *auth.Identity,
	req ProductRequest,
) (*Product, error) {
	price, err := validateItem(req.Name, req.Price, req)
	if err != nil {
		return nil, err
	}

	store, err := s.EnsurePrimaryStore(ctx, identity)
	if err != nil {
		return nil, err
	}

	product := &Product{
		StoreID:     store.ID,
		MerchantID:  identity.SubjectID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		IsActive:    true,
		StoreName:   store.Name,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
	req ProductRequest,
) (*Product, error) {
	price, err := validateItem(req.Name, req.Price, req)
	if err != nil {
		return nil, err
	}

	product, err := s.ownedProduct(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = strings.TrimSpace(req.Description)
	product.Price = price
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) ToggleProduct(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) (*Product, error) {
	product, err := s.ownedProduct(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = !product.IsActive
	if err := s.products.SetActive(ctx, id, product.IsActive); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product and its orders.
func (s *Service) DeleteProduct(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) error {
	if _, err := s.ownedProduct(ctx, identity, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

// ownedProduct loads a product the caller may change: any product for an
// administrator, only their own for a merchant.
func (s *Service) ownedProduct(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) (*Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mayModify(identity, product.MerchantID); err != nil {
		return nil, fmt.Errorf("product %d: %w", id, err)
	}
	return product, nil
}

func (s *Service) ListOfferings(ctx context.Context, f Filter) (core.Page[Offering], error) {
	return s.offerings.List(ctx, f)
}

func (s *Service) CreateOffering(
	ctx context.Context,
	identity *auth.Identity,
	req OfferingRequest,
) (*Offering, error) {
	price, err := validateItem(req.Name, req.Price, req)
	if err != nil {
		return nil, err
	}

	store, err := s.EnsurePrimaryStore(ctx, identity)
	if err != nil {
		return nil, err
	}

	offering := &Offering{
		StoreID:     store.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       price,
		IsActive:    true,
		StoreName:   store.Name,
	}
	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, err
	}
	return offering, nil
}

func (s *Service) ToggleOffering(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) (*Offering, error) {
	offering, err := s.ownedOffering(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	offering.IsActive = !offering.IsActive
	if err := s.offerings.SetActive(ctx, id, offering.IsActive); err != nil {
		return nil, err
	}
	return offering, nil
}

func (s *Service) DeleteOffering(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) error {
	if _, err := s.ownedOffering(ctx, identity, id); err != nil {
		return err
	}
	return s.offerings.Delete(ctx, id)
}

func (s *Service) ownedOffering(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
) (*Offering, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.IsAdmin() {
		return offering, nil
	}

	store, err := s.stores.GetByID(ctx, offering.StoreID)
	if err != nil {
		return nil, err
	}
	if err := mayModify(identity, store.MerchantID); err != nil {
		return nil, fmt.Errorf("service %d: %w", id, err)
	}
	return offering, nil
}

func (s *Service) ListOrders(ctx context.Context, f Filter) (core.Page[Order], error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return core.Page[Order]{}, core.FieldError("status", "is not a known order status")
	}
	return s.orders.List(ctx, f)
}

// CreateOrder records an order for one of the merchant's products. The total
// is computed here, never taken from the caller.
func (s *Service) CreateOrder(
	ctx context.Context,
	identity *auth.Identity,
	req CreateOrderRequest,
) (*Order, error) {
	if err := core.Validate(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if err := mayModify(identity, product.MerchantID); err != nil {
		return nil, fmt.Errorf("order for product %d: %w", product.ID, err)
	}

	total := OrderTotal(product.Price, req.Quantity)
	if total.GreaterThan(maxPrice) {
		return nil, core.FieldError("quantity", "is too large")
	}

	order := &Order{
		ProductID:       product.ID,
		MerchantID:      product.MerchantID,
		Quantity:        req.Quantity,
		TotalPrice:      total,
		Status:          StatusPending,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		ProductName:     product.Name,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// SetOrderStatus accepts any known status from any current one.
func (s *Service) SetOrderStatus(
	ctx context.Context,
	identity *auth.Identity,
	id int64,
	status string,
) (*Order, error) {
	if err := core.Validate(OrderStatusRequest{Status: status}); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mayModify(identity, order.MerchantID); err != nil {
		return nil, fmt.Errorf("order %d: %w", id, err)
	}

	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order status changed",
		"order_id", id,
		"from", order.Status,
		"to", status,
	)
	order.Status = status
	return order, nil
}

type Dashboard struct {
	Store          *Store
	Stats          MerchantStats
	RecentOrders   []Order
	RecentProducts []Product
}

func (s *Service) MerchantDashboard(
	ctx context.Context,
	identity *auth.Identity,
) (*Dashboard, error) {
	store, err := s.EnsurePrimaryStore(ctx, identity)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.Merchant(ctx, identity.SubjectID, store.ID)
	if err != nil {
		return nil, err
	}

	recent := Filter{
		Page:       core.NewPageRequest(1, recentLimit),
		MerchantID: identity.SubjectID,
	}

	orders, err := s.orders.List(ctx, recent)
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx, recent)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Store:          store,
		Stats:          stats,
		RecentOrders:   orders.Items,
		RecentProducts: products.Items,
	}, nil
}

func validateItem(name string, price Amount, req any) (decimal.Decimal, error) {
	if err := core.Validate(req); err != nil {
		return decimal.Zero, err
	}
	if strings.TrimSpace(name) == "" {
		return decimal.Zero, core.FieldError("name", "is required")
	}
	return ParsePrice("price", price)
}

func mayModify(identity *auth.Identity, ownerID int64) error {
	if identity.IsAdmin() {
		return nil
	}
	if identity.IsMerchant() && identity.SubjectID == ownerID {
		return nil
	}
	return core.ErrNotModifiable
}
