// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/baytalsudani/console/internal/core"
)

// Filter narrows a listing. Zero values mean "any".
type Filter struct {
	Page       core.PageRequest
	MerchantID int64
	StoreID    int64
	Status     string
	Search     string
}

type StoreRepository interface {
	List(ctx context.Context, f Filter) (core.Page[Store], error)
	GetByID(ctx context.Context, id int64) (*Store, error)
	// FindByMerchant returns the merchant's primary store, the oldest one.
	FindByMerchant(ctx context.Context, merchantID int64) (*Store, error)
	// EnsureForMerchant returns the merchant's primary store, inserting
	// candidate when the merchant has none. created reports the insert.
	EnsureForMerchant(ctx context.Context, candidate *Store) (store *Store, created bool, err error)
	Update(ctx context.Context, store *Store) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type ProductRepository interface {
	List(ctx context.Context, f Filter) (core.Page[Product], error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type OfferingRepository interface {
	List(ctx context.Context, f Filter) (core.Page[Offering], error)
	GetByID(ctx context.Context, id int64) (*Offering, error)
	Create(ctx context.Context, offering *Offering) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	List(ctx context.Context, f Filter) (core.Page[Order], error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, order *Order) error
	SetStatus(ctx context.Context, id int64, status string) error
}

type StatsRepository interface {
	Merchant(ctx context.Context, merchantID, storeID int64) (MerchantStats, error)
}

// Repositories bundles one backend's implementations.
type Repositories struct {
	Stores    StoreRepository
	Products  ProductRepository
	Offerings OfferingRepository
	Orders    OrderRepository
	Stats     StatsRepository
}

// conditions builds a WHERE clause with numbered placeholders.
type conditions struct {
	parts []string
	args  []any
}

// add appends expr, in which every %[1]d is replaced by the placeholder
// number of arg.
func (c *conditions) add(expr string, arg any) {
	c.args = append(c.args, arg)
	c.parts = append(c.parts, fmt.Sprintf(expr, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.parts) == 0 {
		return "TRUE"
	}
	return strings.Join(c.parts, " AND ")
}

func (c *conditions) next() int {
	return len(c.args) + 1
}

func likePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return "%" + s + "%"
}
