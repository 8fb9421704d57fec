package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Transitions are validated by the order use case.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to
// another. Delivered and cancelled are terminal. Cancelling is not a
// plain transition: it goes through the cancel flow, which also
// restores stock.
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusShipped
	case OrderStatusProcessing:
		return to == OrderStatusShipped || to == OrderStatusDelivered
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}

// Order is a customer order with shipping details. UserID is empty for
// guest checkout. IdempotencyKey, when present, is unique across orders
// so a retried create cannot apply twice.
type Order struct {
	ID             string
	UserID         string
	Email          string
	FullName       string
	Address        string
	City           string
	State          string
	PostalCode     string
	Phone          string
	Status         string
	Total          decimal.Decimal
	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderItem is one line of an order: a product in a given size.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Size      string
	Quantity  int
	Price     decimal.Decimal
}
