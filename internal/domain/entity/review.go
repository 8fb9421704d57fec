package entity

import "time"

// Review is a user's rating (1..5) and optional comment on a product.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// WishlistItem marks a product saved by a user.
type WishlistItem struct {
	ID        string
	UserID    string
	ProductID string
	AddedAt   time.Time
}

// Return statuses. Approving a return restocks the returned quantity.
const (
	ReturnStatusPending  = "pending"
	ReturnStatusApproved = "approved"
	ReturnStatusRejected = "rejected"
)

// Return is a request to send back one order item.
type Return struct {
	ID          string
	OrderID     string
	OrderItemID string
	UserID      string
	Reason      string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
