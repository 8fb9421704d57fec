package repository

import "github.com/threadline-shop/threadline-api/internal/domain/entity"

// ProductRepository is the port for catalog products.
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID returns nil, nil when the product does not exist.
	GetByID(id string) (*entity.Product, error)
	// List filters by normalized substring match on name when q is not
	// empty. Count reports the total matching rows for pagination.
	List(q string, limit, offset int) ([]*entity.Product, error)
	Count(q string) (int, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// UpdateRating overwrites the denormalized rating aggregate.
	UpdateRating(productID string, average float64, count int) error
}
