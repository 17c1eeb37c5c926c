// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type UpdateStoreRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type ProductRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Price       Amount `json:"price"`
}

type OfferingRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Price       Amount `json:"price"`
}

type CreateOrderRequest struct {
	ProductID       int64  `json:"product_id"       validate:"required,gt=0"`
	Quantity        int    `json:"quantity"         validate:"required,gt=0,max=100000"`
	CustomerName    string `json:"customer_name"    validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone"   validate:"required,max=20"`
	CustomerAddress string `json:"customer_address" validate:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipping delivered cancelled"`
}

type StoreResponse struct {
	ID            int64     `json:"id"`
	MerchantID    int64     `json:"merchant_id"`
	MerchantName  string    `json:"merchant_name,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	ProductsCount int       `json:"products_count"`
	ServicesCount int       `json:"services_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProductResponse struct {
	ID          int64     `json:"id"`
	StoreID     int64     `json:"store_id"`
	StoreName   string    `json:"store_name,omitempty"`
	MerchantID  int64     `json:"merchant_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type OfferingResponse struct {
	ID          int64     `json:"id"`
	StoreID     int64     `json:"store_id"`
	StoreName   string    `json:"store_name,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID              int64     `json:"id"`
	ProductID       int64     `json:"product_id"`
	ProductName     string    `json:"product_name,omitempty"`
	MerchantID      int64     `json:"merchant_id"`
	Quantity        int       `json:"quantity"`
	TotalPrice      string    `json:"total_price"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	CreatedAt       time.Time `json:"created_at"`
}

type MerchantStatsResponse struct {
	ProductsCount int    `json:"products_count"`
	ServicesCount int    `json:"services_count"`
	OrdersCount   int    `json:"orders_count"`
	PendingOrders int    `json:"pending_orders"`
	TotalRevenue  string `json:"total_revenue"`
}

type DashboardResponse struct {
	Store          StoreResponse         `json:"store"`
	Stats          MerchantStatsResponse `json:"stats"`
	RecentOrders   []OrderResponse       `json:"recent_orders"`
	RecentProducts []ProductResponse     `json:"recent_products"`
}

func ToStoreResponse(s Store) StoreResponse {
	return StoreResponse{
		ID:            s.ID,
		MerchantID:    s.MerchantID,
		MerchantName:  s.MerchantName,
		Name:          s.Name,
		Description:   s.Description,
		IsActive:      s.IsActive,
		ProductsCount: s.ProductsCount,
		ServicesCount: s.ServicesCount,
		CreatedAt:     s.CreatedAt,
	}
}

func ToProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		StoreName:   p.StoreName,
		MerchantID:  p.MerchantID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func ToOfferingResponse(o Offering) OfferingResponse {
	return OfferingResponse{
		ID:          o.ID,
		StoreID:     o.StoreID,
		StoreName:   o.StoreName,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price.StringFixed(2),
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
	}
}

func ToOrderResponse(o Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID,
		ProductID:       o.ProductID,
		ProductName:     o.ProductName,
		MerchantID:      o.MerchantID,
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice.StringFixed(2),
		Status:          o.Status,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		CreatedAt:       o.CreatedAt,
	}
}

func toStatsResponse(s MerchantStats) MerchantStatsResponse {
	return MerchantStatsResponse{
		ProductsCount: s.ProductsCount,
		ServicesCount: s.ServicesCount,
		OrdersCount:   s.OrdersCount,
		PendingOrders: s.PendingOrders,
		TotalRevenue:  s.TotalRevenue.StringFixed(2),
	}
}

func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
