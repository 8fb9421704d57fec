package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/metrics"
)

// StockUseCase is the single authority over stock quantities. Decrement
// and Increment run a locked read-modify-write inside a transaction so
// concurrent callers on the same (product, size) key serialize on the
// row lock and a record can never be overdrawn below zero.
type StockUseCase struct {
	txRunner    TxRunner
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewStockUseCase builds the use case. stockRepo is the non-transactional
// repository used for plain reads and administrative writes.
func NewStockUseCase(txRunner TxRunner, stockRepo repository.StockRepository, productRepo repository.ProductRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo, productRepo: productRepo}
}

// Create registers a new stock record for a (product, size) pair.
// The product must exist; a negative quantity is rejected before any
// write; a duplicate key surfaces as domain.ErrConflict.
func (uc *StockUseCase) Create(ctx context.Context, productID, size string, quantity int) (*entity.StockRecord, error) {
	if productID == "" || size == "" || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	rec := &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.stockRepo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Decrement subtracts qty from the record for (productID, size).
// Returns domain.ErrNotFound when no record exists for the key,
// domain.ErrInsufficientStock when the stored quantity is lower than
// qty, and nil on success. Any other error is a store failure and is
// safe to retry.
func (uc *StockUseCase) Decrement(ctx context.Context, productID, size string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		return uc.DecrementInTx(stockRepo, productID, size, qty)
	})
	switch {
	case err == nil:
		metrics.StockDecrements.WithLabelValues("applied").Inc()
	case errors.Is(err, domain.ErrInsufficientStock):
		metrics.StockDecrements.WithLabelValues("insufficient").Inc()
	case errors.Is(err, domain.ErrNotFound):
		metrics.StockDecrements.WithLabelValues("not_found").Inc()
	default:
		metrics.StockDecrements.WithLabelValues("error").Inc()
	}
	return err
}

// DecrementInTx performs the locked read-check-write against a
// transaction-bound repository, for callers that compose the decrement
// with other writes in the same transaction (order creation).
func (uc *StockUseCase) DecrementInTx(stockRepo repository.StockRepository, productID, size string, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, size)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	_, err = stockRepo.UpdateQuantity(rec.ID, rec.Quantity-qty)
	return err
}

// Increment adds qty to the record for (productID, size) and returns the
// updated record. Restocks target known SKUs: a missing record is
// domain.ErrNotFound, never an implicit create. The locked path is
// shared with Decrement so interleaved writes cannot lose updates.
func (uc *StockUseCase) Increment(ctx context.Context, productID, size string, qty int) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		rec, err := uc.IncrementInTx(stockRepo, productID, size, qty)
		if err != nil {
			return err
		}
		updated = rec
		return nil
	})
	switch {
	case err == nil:
		metrics.StockIncrements.WithLabelValues("applied").Inc()
	case errors.Is(err, domain.ErrNotFound):
		metrics.StockIncrements.WithLabelValues("not_found").Inc()
	default:
		metrics.StockIncrements.WithLabelValues("error").Inc()
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// IncrementInTx adds qty under the caller's transaction (order
// cancellation, return approval).
func (uc *StockUseCase) IncrementInTx(stockRepo repository.StockRepository, productID, size string, qty int) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	rec, err := stockRepo.GetForUpdate(productID, size)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	updatedAt, err := stockRepo.UpdateQuantity(rec.ID, rec.Quantity+qty)
	if err != nil {
		return nil, err
	}
	rec.Quantity += qty
	rec.UpdatedAt = updatedAt
	return rec, nil
}

// GetByID is a plain read; it may observe state that a concurrent
// locked write is about to change.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	rec, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// GetByProduct lists all stock records (one per size) for a product.
func (uc *StockUseCase) GetByProduct(ctx context.Context, productID string) ([]*entity.StockRecord, error) {
	return uc.stockRepo.GetByProduct(productID)
}

// Update overwrites a record directly for administrative correction.
// It does not take the row lock, so racing it against a concurrent
// decrement on the same key can clobber the quantity; admin tooling
// accepts that trade.
func (uc *StockUseCase) Update(ctx context.Context, id string, quantity *int, size string) (*entity.StockRecord, error) {
	rec, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if quantity != nil {
		if *quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		rec.Quantity = *quantity
	}
	if size != "" {
		rec.Size = size
	}
	rec.UpdatedAt = time.Now()
	if err := uc.stockRepo.Update(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record by ID. A missing record is domain.ErrNotFound.
func (uc *StockUseCase) Delete(ctx context.Context, id string) error {
	rec, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.stockRepo.Delete(id)
}

// LowStock lists records at or below threshold, lowest first.
func (uc *StockUseCase) LowStock(ctx context.Context, threshold int) ([]*entity.StockRecord, error) {
	if threshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListLowStock(threshold)
}

// Summary aggregates the whole inventory for the admin analytics view.
func (uc *StockUseCase) Summary(ctx context.Context) (*repository.StockSummary, error) {
	return uc.stockRepo.Summary()
}
