package repository

import "github.com/threadline-shop/threadline-api/internal/domain/entity"

// BrandRepository is the port for product brands.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	List() ([]*entity.Brand, error)
}

// CategoryRepository is the port for product categories.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}

// CollectionRepository is the port for curated product collections.
type CollectionRepository interface {
	Create(collection *entity.Collection) error
	GetByID(id string) (*entity.Collection, error)
	List() ([]*entity.Collection, error)
}
