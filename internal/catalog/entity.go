// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipping  = "shipping"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists the workflow in its usual order. Any status may be set
// from any other.
var OrderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusShipping,
	StatusDelivered,
	StatusCancelled,
}

func ValidStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Store belongs to exactly one merchant. MerchantName and the counts are
// filled by listings only.
type Store struct {
	ID            int64     `db:"id"`
	MerchantID    int64     `db:"merchant_id"`
	Name          string    `db:"name"`
	Description   string    `db:"description"`
	IsActive      bool      `db:"is_active"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	MerchantName  string    `db:"merchant_name"`
	ProductsCount int       `db:"products_count"`
	ServicesCount int       `db:"services_count"`
}

type Product struct {
	ID          int64           `db:"id"`
	StoreID     int64           `db:"store_id"`
	MerchantID  int64           `db:"merchant_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	StoreName   string          `db:"store_name"`
}

// Offering is a row of the services table: a service sold by a store.
type Offering struct {
	ID          int64           `db:"id"`
	StoreID     int64           `db:"store_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	StoreName   string          `db:"store_name"`
}

type Order struct {
	ID              int64           `db:"id"`
	ProductID       int64           `db:"product_id"`
	MerchantID      int64           `db:"merchant_id"`
	Quantity        int             `db:"quantity"`
	TotalPrice      decimal.Decimal `db:"total_price"`
	Status          string          `db:"status"`
	CustomerName    string          `db:"customer_name"`
	CustomerPhone   string          `db:"customer_phone"`
	CustomerAddress string          `db:"customer_address"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
	ProductName     string          `db:"product_name"`
}

// OrderTotal is unit price times quantity, kept at cent precision.
func OrderTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// MerchantStats backs the merchant dashboard.
type MerchantStats struct {
	ProductsCount int             `db:"products_count"`
	ServicesCount int             `db:"services_count"`
	OrdersCount   int             `db:"orders_count"`
	PendingOrders int             `db:"pending_orders"`
	TotalRevenue  decimal.Decimal `db:"total_revenue"`
}
