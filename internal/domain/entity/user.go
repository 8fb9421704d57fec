package entity

import "time"

// User roles for RBAC gates.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account that can authenticate against the API.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is a server-side record of an issued refresh token.
// Tokens rotate on use; revoked tokens stay on file so reuse is detectable.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	JWTID     string
	ExpiresAt time.Time
	Revoked   bool
	RevokedAt *time.Time
	CreatedAt time.Time
	CreatedByIP string
}

// UserPreferences holds per-user browsing preferences.
type UserPreferences struct {
	ID            string
	UserID        string
	PriceRangeMin *int
	PriceRangeMax *int
	UpdatedAt     time.Time
}

// RecentlyViewed records a product view for a user, newest first.
type RecentlyViewed struct {
	ID        string
	UserID    string
	ProductID string
	ViewedAt  time.Time
}
