package dto

import "time"

// CreateReviewRequest is the input to post a review on a product.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// UpdateReviewRequest edits an existing review.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewResponse is one review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReturnRequest opens a return for one order item.
type CreateReturnRequest struct {
	OrderID     string `json:"order_id" validate:"required,uuid"`
	OrderItemID string `json:"order_item_id" validate:"required,uuid"`
	Reason      string `json:"reason" validate:"required,min=1,max=2000"`
}

// ResolveReturnRequest approves or rejects a pending return (admin).
type ResolveReturnRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// ReturnResponse is one return request.
type ReturnResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	OrderItemID string    `json:"order_item_id"`
	UserID      string    `json:"user_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
