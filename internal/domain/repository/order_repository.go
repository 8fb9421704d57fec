package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
)

// OrderStats aggregates recent orders for the admin stats endpoint.
type OrderStats struct {
	Count             int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	ByStatus          map[string]int
}

// OrderRepository is the port for orders and their line items.
type OrderRepository interface {
	Create(order *entity.Order) error
	AddItem(item *entity.OrderItem) error
	// GetByID returns nil, nil when the order does not exist.
	GetByID(id string) (*entity.Order, error)
	// GetByIdempotencyKey returns nil, nil when no order carries the key.
	GetByIdempotencyKey(key string) (*entity.Order, error)
	ItemsByOrder(orderID string) ([]*entity.OrderItem, error)
	// GetItem returns nil, nil when the item does not exist.
	GetItem(itemID string) (*entity.OrderItem, error)
	RemoveItem(orderID, itemID string) error
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
	CountByUser(userID string) (int, error)
	CountAll() (int, error)
	// UpdateStatusFrom moves the order to status only when its current
	// status is one of from, in a single conditional write; any other
	// current state (or a missing order) is ErrConflict. Run it inside
	// the transaction that depends on the transition, so two concurrent
	// callers cannot both observe the old status and both apply.
	UpdateStatusFrom(id, status string, from ...string) error
	UpdateTotal(id string, total decimal.Decimal) error
	Stats(since time.Time) (*OrderStats, error)
}
