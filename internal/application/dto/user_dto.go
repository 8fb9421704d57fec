package dto

import "time"

// WishlistItemResponse is one saved product.
type WishlistItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`
}

// PreferencesRequest upserts the caller's browsing preferences.
type PreferencesRequest struct {
	PriceRangeMin *int `json:"price_range_min" validate:"omitempty,min=0"`
	PriceRangeMax *int `json:"price_range_max" validate:"omitempty,min=0"`
}

// PreferencesResponse is the stored preferences; zero-valued when the
// user never saved any.
type PreferencesResponse struct {
	PriceRangeMin *int      `json:"price_range_min,omitempty"`
	PriceRangeMax *int      `json:"price_range_max,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RecentlyViewedResponse is one product view, newest first in lists.
type RecentlyViewedResponse struct {
	ProductID string    `json:"product_id"`
	ViewedAt  time.Time `json:"viewed_at"`
}
