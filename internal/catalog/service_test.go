// AngelaMos | 2026
// service_test.go

package catalog

import (
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytalsudani/console/internal/auth"
	"github.com/baytalsudani/console/internal/core"
)

type memStore struct {
	nextID    int64
	stores    map[int64]*Store
	products  map[int64]*Product
	offerings map[int64]*Offering
	orders    map[int64]*Order
}

func newMemStore() *memStore {
	return &memStore{
		stores:    map[int64]*Store{},
		products:  map[int64]*Product{},
		offerings: map[int64]*Offering{},
		orders:    map[int64]*Order{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) repositories() Repositories {
	return Repositories{
		Stores:    memStores{m},
		Products:  memProducts{m},
		Offerings: memOfferings{m},
		Orders:    memOrders{m},
		Stats:     memStats{m},
	}
}

func paginate[T any](all []T, req core.PageRequest) core.Page[T] {
	req.Normalize()
	start := min(req.Offset(), len(all))
	end := min(start+req.PageSize, len(all))
	return core.NewPage(slices.Clone(all[start:end]), len(all), req)
}

type memStores struct{ m *memStore }

func (r memStores) List(_ context.Context, f Filter) (core.Page[Store], error) {
	var out []Store
	for _, s := range r.m.stores {
		if f.MerchantID == 0 || s.MerchantID == f.MerchantID {
			out = append(out, *s)
		}
	}
	slices.SortFunc(out, func(a, b Store) int { return int(a.ID - b.ID) })
	return paginate(out, f.Page), nil
}

func (r memStores) GetByID(_ context.Context, id int64) (*Store, error) {
	s, ok := r.m.stores[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r memStores) FindByMerchant(_ context.Context, merchantID int64) (*Store, error) {
	var found *Store
	for _, s := range r.m.stores {
		if s.MerchantID == merchantID && (found == nil || s.ID < found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, core.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (r memStores) EnsureForMerchant(ctx context.Context, candidate *Store) (*Store, bool, error) {
	if s, err := r.FindByMerchant(ctx, candidate.MerchantID); err == nil {
		return s, false, nil
	}
	candidate.ID = r.m.id()
	candidate.IsActive = true
	cp := *candidate
	r.m.stores[cp.ID] = &cp
	return candidate, true, nil
}

func (r memStores) Update(_ context.Context, store *Store) error {
	if _, ok := r.m.stores[store.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *store
	r.m.stores[store.ID] = &cp
	return nil
}

func (r memStores) SetActive(_ context.Context, id int64, active bool) error {
	s, ok := r.m.stores[id]
	if !ok {
		return core.ErrNotFound
	}
	s.IsActive = active
	return nil
}

func (r memStores) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.stores[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.m.stores, id)
	return nil
}

type memProducts struct{ m *memStore }

func (r memProducts) List(_ context.Context, f Filter) (core.Page[Product], error) {
	var out []Product
	for _, p := range r.m.products {
		if f.MerchantID != 0 && p.MerchantID != f.MerchantID {
			continue
		}
		if f.StoreID != 0 && p.StoreID != f.StoreID {
			continue
		}
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Product) int { return int(b.ID - a.ID) })
	return paginate(out, f.Page), nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*Product, error) {
	p, ok := r.m.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memProducts) Create(_ context.Context, product *Product) error {
	product.ID = r.m.id()
	cp := *product
	r.m.products[cp.ID] = &cp
	return nil
}

func (r memProducts) Update(_ context.Context, product *Product) error {
	if _, ok := r.m.products[product.ID]; !ok {
		return core.ErrNotFound
	}
	cp := *product
	r.m.products[product.ID] = &cp
	return nil
}

func (r memProducts) SetActive(_ context.Context, id int64, active bool) error {
	p, ok := r.m.products[id]
	if !ok {
		return core.ErrNotFound
	}
	p.IsActive = active
	return nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.products[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.m.products, id)
	for oid, o := range r.m.orders {
		if o.ProductID == id {
			delete(r.m.orders, oid)
		}
	}
	return nil
}

type memOfferings struct{ m *memStore }

func (r memOfferings) List(_ context.Context, f Filter) (core.Page[Offering], error) {
	var out []Offering
	for _, o := range r.m.offerings {
		if f.StoreID == 0 || o.StoreID == f.StoreID {
			out = append(out, *o)
		}
	}
	slices.SortFunc(out, func(a, b Offering) int { return int(b.ID - a.ID) })
	return paginate(out, f.Page), nil
}

func (r memOfferings) GetByID(_ context.Context, id int64) (*Offering, error) {
	o, ok := r.m.offerings[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOfferings) Create(_ context.Context, offering *Offering) error {
	offering.ID = r.m.id()
	cp := *offering
	r.m.offerings[cp.ID] = &cp
	return nil
}

func (r memOfferings) SetActive(_ context.Context, id int64, active bool) error {
	o, ok := r.m.offerings[id]
	if !ok {
		return core.ErrNotFound
	}
	o.IsActive = active
	return nil
}

func (r memOfferings) Delete(_ context.Context, id int64) error {
	if _, ok := r.m.offerings[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.m.offerings, id)
	return nil
}

type memOrders struct{ m *memStore }

func (r memOrders) List(_ context.Context, f Filter) (core.Page[Order], error) {
	var out []Order
	for _, o := range r.m.orders {
		if f.MerchantID != 0 && o.MerchantID != f.MerchantID {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	slices.SortFunc(out, func(a, b Order) int { return int(b.ID - a.ID) })
	return paginate(out, f.Page), nil
}

func (r memOrders) GetByID(_ context.Context, id int64) (*Order, error) {
	o, ok := r.m.orders[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r memOrders) Create(_ context.Context, order *Order) error {
	order.ID = r.m.id()
	cp := *order
	r.m.orders[cp.ID] = &cp
	return nil
}

func (r memOrders) SetStatus(_ context.Context, id int64, status string) error {
	o, ok := r.m.orders[id]
	if !ok {
		return core.ErrNotFound
	}
	o.Status = status
	return nil
}

type memStats struct{ m *memStore }

func (r memStats) Merchant(_ context.Context, merchantID, storeID int64) (MerchantStats, error) {
	stats := MerchantStats{TotalRevenue: decimal.Zero}
	for _, p := range r.m.products {
		if p.MerchantID == merchantID {
			stats.ProductsCount++
		}
	}
	for _, o := range r.m.offerings {
		if o.StoreID == storeID {
			stats.ServicesCount++
		}
	}
	for _, o := range r.m.orders {
		if o.MerchantID != merchantID {
			continue
		}
		stats.OrdersCount++
		if o.Status == StatusPending {
			stats.PendingOrders++
		}
		if o.Status == StatusDelivered {
			stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalPrice)
		}
	}
	return stats, nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	m := newMemStore()
	return NewService(m.repositories(), core.NewMessages("en")), m
}

func merchant(id int64, name string) *auth.Identity {
	return &auth.Identity{SubjectID: id, Role: auth.RoleMerchant, DisplayName: name}
}

func admin() *auth.Identity {
	return &auth.Identity{SubjectID: 1, Role: auth.RoleAdmin, DisplayName: "admin"}
}

func TestOrderTotalAndCascadeDelete(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	product, err := svc.CreateProduct(ctx, ahmed, ProductRequest{Name: "Tea", Price: "25.50"})
	require.NoError(t, err)
	assert.Equal(t, "25.50", product.Price.StringFixed(2))
	assert.True(t, product.IsActive)

	order, err := svc.CreateOrder(ctx, ahmed, CreateOrderRequest{
		ProductID:       product.ID,
		Quantity:        2,
		CustomerName:    "Sara",
		CustomerPhone:   "0912345678",
		CustomerAddress: "Khartoum",
	})
	require.NoError(t, err)
	assert.Equal(t, "51.00", order.TotalPrice.StringFixed(2))
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, int64(4), order.MerchantID)

	require.NoError(t, svc.DeleteProduct(ctx, ahmed, product.ID))

	_, err = svc.GetProduct(ctx, product.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, m.orders)
}

func TestCreateOrderRejectsOversizedQuantity(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	product, err := svc.CreateProduct(ctx, ahmed, ProductRequest{Name: "Gold", Price: "99999999.99"})
	require.NoError(t, err)

	for _, qty := range []int{2, 100001} {
		_, err = svc.CreateOrder(ctx, ahmed, CreateOrderRequest{
			ProductID:       product.ID,
			Quantity:        qty,
			CustomerName:    "Sara",
			CustomerPhone:   "0912345678",
			CustomerAddress: "Khartoum",
		})
		require.ErrorIs(t, err, core.ErrValidation, "quantity %d", qty)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Contains(t, appErr.Fields, "quantity")
	}
	assert.Empty(t, m.orders)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	for _, price := range []Amount{"-5", "free", ""} {
		_, err := svc.CreateProduct(ctx, merchant(4, "ahmed"), ProductRequest{Name: "Tea", Price: price})
		assert.ErrorIs(t, err, core.ErrValidation, "price %q", price)
	}
	assert.Empty(t, m.products)
}

func TestFirstProductCreatesDefaultStore(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, merchant(4, "ahmed"), ProductRequest{Name: "Tea", Price: "3"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, merchant(4, "ahmed"), ProductRequest{Name: "Coffee", Price: "4"})
	require.NoError(t, err)

	require.Len(t, m.stores, 1)
	for _, s := range m.stores {
		assert.Equal(t, "ahmed's store", s.Name)
		assert.Equal(t, int64(4), s.MerchantID)
	}
}

func TestMerchantCannotTouchAnotherMerchantsProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, merchant(4, "ahmed"), ProductRequest{Name: "Tea", Price: "3"})
	require.NoError(t, err)

	other := merchant(5, "omar")
	_, err = svc.ToggleProduct(ctx, other, product.ID)
	assert.ErrorIs(t, err, core.ErrNotModifiable)

	err = svc.DeleteProduct(ctx, other, product.ID)
	assert.ErrorIs(t, err, core.ErrNotModifiable)

	_, err = svc.CreateOrder(ctx, other, CreateOrderRequest{
		ProductID:       product.ID,
		Quantity:        1,
		CustomerName:    "Sara",
		CustomerPhone:   "0912345678",
		CustomerAddress: "Khartoum",
	})
	assert.ErrorIs(t, err, core.ErrNotModifiable)

	toggled, err := svc.ToggleProduct(ctx, admin(), product.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
}

func TestToggleStoreIsAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	store, err := svc.EnsurePrimaryStore(ctx, ahmed)
	require.NoError(t, err)

	_, err = svc.ToggleStore(ctx, ahmed, store.ID)
	assert.ErrorIs(t, err, core.ErrNotModifiable)

	toggled, err := svc.ToggleStore(ctx, admin(), store.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	again, err := svc.ToggleStore(ctx, admin(), store.ID)
	require.NoError(t, err)
	assert.True(t, again.IsActive)

	_, err = svc.ToggleStore(ctx, admin(), 999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestOrderStatusIsPermissive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	product, err := svc.CreateProduct(ctx, ahmed, ProductRequest{Name: "Tea", Price: "10"})
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, ahmed, CreateOrderRequest{
		ProductID:       product.ID,
		Quantity:        1,
		CustomerName:    "Sara",
		CustomerPhone:   "0912345678",
		CustomerAddress: "Khartoum",
	})
	require.NoError(t, err)

	for _, status := range []string{StatusDelivered, StatusPending, StatusCancelled, StatusConfirmed} {
		updated, err := svc.SetOrderStatus(ctx, ahmed, order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = svc.SetOrderStatus(ctx, ahmed, order.ID, "lost")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = svc.SetOrderStatus(ctx, ahmed, 999, StatusShipping)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListOrders(context.Background(), Filter{Status: "lost"})
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestListProductsPastLastPage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	for _, name := range []string{"Tea", "Coffee", "Juice"} {
		_, err := svc.CreateProduct(ctx, ahmed, ProductRequest{Name: name, Price: "1"})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(ctx, Filter{Page: core.NewPageRequest(5, 2)})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages())
}

func TestOfferingOwnership(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	offering, err := svc.CreateOffering(ctx, ahmed, OfferingRequest{Name: "Delivery", Price: "15"})
	require.NoError(t, err)

	_, err = svc.ToggleOffering(ctx, merchant(5, "omar"), offering.ID)
	assert.ErrorIs(t, err, core.ErrNotModifiable)

	toggled, err := svc.ToggleOffering(ctx, ahmed, offering.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	require.NoError(t, svc.DeleteOffering(ctx, admin(), offering.ID))
	assert.Empty(t, m.offerings)
}

func TestMerchantDashboard(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ahmed := merchant(4, "ahmed")

	product, err := svc.CreateProduct(ctx, ahmed, ProductRequest{Name: "Tea", Price: "25.50"})
	require.NoError(t, err)
	order, err := svc.CreateOrder(ctx, ahmed, CreateOrderRequest{
		ProductID:       product.ID,
		Quantity:        2,
		CustomerName:    "Sara",
		CustomerPhone:   "0912345678",
		CustomerAddress: "Khartoum",
	})
	require.NoError(t, err)
	_, err = svc.SetOrderStatus(ctx, ahmed, order.ID, StatusDelivered)
	require.NoError(t, err)

	dash, err := svc.MerchantDashboard(ctx, ahmed)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.Stats.ProductsCount)
	assert.Equal(t, 1, dash.Stats.OrdersCount)
	assert.Equal(t, 0, dash.Stats.PendingOrders)
	assert.Equal(t, "51.00", dash.Stats.TotalRevenue.StringFixed(2))
	assert.Len(t, dash.RecentOrders, 1)
	assert.Len(t, dash.RecentProducts, 1)

	_, err = svc.MerchantDashboard(ctx, admin())
	assert.ErrorIs(t, err, core.ErrForbidden)
}
