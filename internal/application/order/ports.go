package order

import (
	"context"

	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction with transaction-
// bound order and stock repositories, so an order and its stock
// decrements commit or roll back together.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error) error
}
