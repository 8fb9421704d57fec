package repository

import "github.com/threadline-shop/threadline-api/internal/domain/entity"

// ReviewRepository is the port for product reviews.
type ReviewRepository interface {
	Create(review *entity.Review) error
	// GetByID returns nil, nil when the review does not exist.
	GetByID(id string) (*entity.Review, error)
	List(limit, offset int) ([]*entity.Review, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Review, error)
	Update(review *entity.Review) error
	Delete(id string) error
	// RatingByProduct returns the current average and count over all
	// reviews of the product (0, 0 when there are none).
	RatingByProduct(productID string) (avg float64, count int, err error)
}

// WishlistRepository is the port for saved products per user.
type WishlistRepository interface {
	Add(item *entity.WishlistItem) error
	Remove(userID, productID string) error
	Contains(userID, productID string) (bool, error)
	ListByUser(userID string, limit, offset int) ([]*entity.WishlistItem, error)
	CountByUser(userID string) (int, error)
	Clear(userID string) error
}

// ReturnRepository is the port for return requests.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	// GetByID returns nil, nil when the return does not exist.
	GetByID(id string) (*entity.Return, error)
	ListAll() ([]*entity.Return, error)
	ListByUser(userID string) ([]*entity.Return, error)
	Update(ret *entity.Return) error
}
