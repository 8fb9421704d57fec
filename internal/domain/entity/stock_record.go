package entity

import "time"

// StockRecord tracks the on-hand quantity for one (product, size) pair.
// (ProductID, Size) is unique; Quantity never goes below zero.
type StockRecord struct {
	ID        string
	ProductID string
	Size      string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
