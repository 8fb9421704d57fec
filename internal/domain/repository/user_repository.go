package repository

import "github.com/threadline-shop/threadline-api/internal/domain/entity"

// UserRepository is the port for user accounts.
type UserRepository interface {
	Create(user *entity.User) error
	// GetByID and FindByEmail return nil, nil when no user matches.
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	UpdatePassword(userID, passwordHash string) error
}

// RefreshTokenRepository is the port for server-side refresh token state.
type RefreshTokenRepository interface {
	Create(token *entity.RefreshToken) error
	// GetByToken returns nil, nil when the token is unknown.
	GetByToken(token string) (*entity.RefreshToken, error)
	Revoke(id string) error
	RevokeAllForUser(userID string) error
}

// PreferencesRepository is the port for per-user preferences.
type PreferencesRepository interface {
	// GetByUser returns nil, nil when the user has no stored preferences.
	GetByUser(userID string) (*entity.UserPreferences, error)
	Upsert(prefs *entity.UserPreferences) error
}

// RecentlyViewedRepository records and lists product views per user.
type RecentlyViewedRepository interface {
	Add(view *entity.RecentlyViewed) error
	ListByUser(userID string, limit int) ([]*entity.RecentlyViewed, error)
}
