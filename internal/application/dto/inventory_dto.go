package dto

import "time"

// CreateStockRequest is the admin input to open a stock record for a
// (product, size) pair.
type CreateStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size" validate:"required,min=1,max=10"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// AdjustStockRequest asks for a quantity change on a (product, size)
// pair. Quantity must be positive; the direction comes from the route.
type AdjustStockRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Size      string `json:"size" validate:"required,min=1,max=10"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateStockRequest is the admin override of an absolute quantity.
type UpdateStockRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// StockResponse is one stock record.
type StockResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockSummaryResponse is the admin inventory overview.
type StockSummaryResponse struct {
	TotalRecords int            `json:"total_records"`
	TotalUnits   int            `json:"total_units"`
	AverageUnits int            `json:"average_units"`
	Highest      *StockResponse `json:"highest,omitempty"`
	Lowest       *StockResponse `json:"lowest,omitempty"`
}
