package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line in an order create.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size" validate:"required,min=1,max=10"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the checkout input. Prices are never taken from
// the client; the server prices every line from the catalog.
type CreateOrderRequest struct {
	Email      string             `json:"email" validate:"required,email"`
	FullName   string             `json:"full_name" validate:"required,min=1,max=200"`
	Address    string             `json:"address" validate:"required,max=500"`
	City       string             `json:"city" validate:"required,max=100"`
	State      string             `json:"state" validate:"omitempty,max=100"`
	PostalCode string             `json:"postal_code" validate:"required,max=20"`
	Phone      string             `json:"phone" validate:"omitempty,max=30"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to a new status (admin).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// OrderItemResponse is one order line as returned by the API.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse is an order with optional items.
type OrderResponse struct {
	ID         string              `json:"id"`
	UserID     string              `json:"user_id,omitempty"`
	Email      string              `json:"email"`
	FullName   string              `json:"full_name"`
	Address    string              `json:"address"`
	City       string              `json:"city"`
	State      string              `json:"state,omitempty"`
	PostalCode string              `json:"postal_code"`
	Phone      string              `json:"phone,omitempty"`
	Status     string              `json:"status"`
	Total      decimal.Decimal     `json:"total"`
	Items      []OrderItemResponse `json:"items,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// OrderListResponse pages orders.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderStatsResponse is the admin order analytics view.
type OrderStatsResponse struct {
	Days              int             `json:"days"`
	Count             int             `json:"count"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	ByStatus          map[string]int  `json:"by_status"`
}
