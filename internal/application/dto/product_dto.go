package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the admin input to create a product.
type CreateProductRequest struct {
	BrandID         string           `json:"brand_id" validate:"required,uuid"`
	CategoryID      string           `json:"category_id" validate:"required,uuid"`
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description" validate:"omitempty,max=4000"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Gender          string           `json:"gender" validate:"omitempty,oneof=men women unisex"`
	Sizes           []string         `json:"sizes" validate:"required,min=1"`
	ImageURLs       []string         `json:"image_urls" validate:"omitempty"`
	Featured        bool             `json:"featured"`
	IsNew           bool             `json:"is_new"`
}

// UpdateProductRequest is the admin input to update a product. Zero
// values overwrite; it is a full update, not a patch.
type UpdateProductRequest struct {
	BrandID         string           `json:"brand_id" validate:"required,uuid"`
	CategoryID      string           `json:"category_id" validate:"required,uuid"`
	Name            string           `json:"name" validate:"required,min=1,max=200"`
	Description     string           `json:"description" validate:"omitempty,max=4000"`
	Price           decimal.Decimal  `json:"price" validate:"required"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Gender          string           `json:"gender" validate:"omitempty,oneof=men women unisex"`
	Sizes           []string         `json:"sizes" validate:"required,min=1"`
	ImageURLs       []string         `json:"image_urls" validate:"omitempty"`
	Featured        bool             `json:"featured"`
	IsNew           bool             `json:"is_new"`
}

// ProductResponse is a catalog product as returned by the API.
type ProductResponse struct {
	ID              string           `json:"id"`
	BrandID         string           `json:"brand_id"`
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	Gender          string           `json:"gender,omitempty"`
	Sizes           []string         `json:"sizes"`
	ImageURLs       []string         `json:"image_urls"`
	AverageRating   float64          `json:"average_rating"`
	RatingCount     int              `json:"rating_count"`
	Featured        bool             `json:"featured"`
	IsNew           bool             `json:"is_new"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResponse pages products.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
