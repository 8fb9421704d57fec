package repository

import (
	"time"

	"github.com/threadline-shop/threadline-api/internal/domain/entity"
)

// StockSummary aggregates the whole inventory for the admin analytics view.
type StockSummary struct {
	TotalRecords int
	TotalUnits   int
	AverageUnits int
	Highest      *entity.StockRecord
	Lowest       *entity.StockRecord
}

// StockRepository is the port for reading and mutating stock records.
// GetForUpdate must be called inside a transaction: it locks the row
// (SELECT ... FOR UPDATE) until commit or rollback, serializing
// concurrent writers on the same (product, size) key.
type StockRepository interface {
	Create(rec *entity.StockRecord) error
	GetByID(id string) (*entity.StockRecord, error)
	GetByProduct(productID string) ([]*entity.StockRecord, error)
	// GetForUpdate returns nil, nil when no row exists for the key.
	GetForUpdate(productID, size string) (*entity.StockRecord, error)
	// UpdateQuantity writes the new quantity and returns the stored
	// update timestamp, so callers hand back exactly what was persisted.
	UpdateQuantity(id string, quantity int) (time.Time, error)
	Update(rec *entity.StockRecord) error
	Delete(id string) error
	ListLowStock(threshold int) ([]*entity.StockRecord, error)
	Summary() (*StockSummary, error)
}
