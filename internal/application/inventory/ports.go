package inventory

import (
	"context"

	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// TxRunner runs fn inside one database transaction with a transaction-
// bound stock repository. Row locks taken through that repository are
// held until fn returns and the transaction commits or rolls back.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
