package dto

import "time"

// CreateBrandRequest is the admin input to create a brand.
type CreateBrandRequest struct {
	Label       string `json:"label" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// BrandResponse is a brand as returned by the API.
type BrandResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest is the admin input to create a category.
type CreateCategoryRequest struct {
	Label       string `json:"label" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// CategoryResponse is a category as returned by the API.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCollectionRequest is the admin input to create a collection.
type CreateCollectionRequest struct {
	Label       string `json:"label" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// CollectionResponse is a collection as returned by the API.
type CollectionResponse struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
