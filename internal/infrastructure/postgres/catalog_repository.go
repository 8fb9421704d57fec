package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)
var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// BrandRepo implements BrandRepository on PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository builds the brand adapter. Pass pool or tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(b *entity.Brand) error {
	query := `
		INSERT INTO brands (id, label, description, image_url, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query, b.ID, b.Label, b.Description, b.ImageURL, b.Active, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `SELECT id, label, description, image_url, active, created_at FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Label, &b.Description, &b.ImageURL, &b.Active, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) List() ([]*entity.Brand, error) {
	query := `SELECT id, label, description, image_url, active, created_at FROM brands ORDER BY label`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Label, &b.Description, &b.ImageURL, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// CategoryRepo implements CategoryRepository on PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the category adapter. Pass pool or tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categories (id, label, description, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Label, c.Description, c.Active, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, label, description, active, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Label, &c.Description, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	query := `SELECT id, label, description, active, created_at FROM categories ORDER BY label`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Label, &c.Description, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CollectionRepo implements CollectionRepository on PostgreSQL.
type CollectionRepo struct {
	q Querier
}

// NewCollectionRepository builds the collection adapter. Pass pool or tx (Querier).
func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

func (r *CollectionRepo) Create(c *entity.Collection) error {
	query := `
		INSERT INTO collections (id, label, description, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Label, c.Description, c.Active, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *CollectionRepo) GetByID(id string) (*entity.Collection, error) {
	query := `SELECT id, label, description, active, created_at FROM collections WHERE id = $1`
	var c entity.Collection
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Label, &c.Description, &c.Active, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return &c, nil
}

func (r *CollectionRepo) List() ([]*entity.Collection, error) {
	query := `SELECT id, label, description, active, created_at FROM collections ORDER BY label`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	var out []*entity.Collection
	for rows.Next() {
		var c entity.Collection
		if err := rows.Scan(&c.ID, &c.Label, &c.Description, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
