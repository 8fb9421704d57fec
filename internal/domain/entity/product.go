package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Sizes and image URLs are stored as JSON text
// columns; per-size stock lives in StockRecord rows.
type Product struct {
	ID              string
	BrandID         string
	CategoryID      string
	Name            string
	Description     string
	Price           decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Gender          string
	SizesJSON       string
	ImageURLsJSON   string
	AverageRating   float64
	RatingCount     int
	Featured        bool
	IsNew           bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Brand groups products from one manufacturer.
type Brand struct {
	ID          string
	Label       string
	Description string
	ImageURL    string
	Active      bool
	CreatedAt   time.Time
}

// Category groups products by kind.
type Category struct {
	ID          string
	Label       string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Collection is a curated set of products (seasonal drops, promotions).
type Collection struct {
	ID          string
	Label       string
	Description string
	Active      bool
	CreatedAt   time.Time
}
