package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implements ProductRepository on PostgreSQL (usable with
// pool or tx). Search matches unaccented, case-folded names; callers
// pass the query already normalized.
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the product adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, brand_id, category_id, name, description, price, discounted_price,
		gender, sizes, image_urls, average_rating, rating_count, featured, is_new, created_at, updated_at`

// Create persists a new product.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, brand_id, category_id, name, description, price, discounted_price,
			gender, sizes, image_urls, average_rating, rating_count, featured, is_new, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BrandID, p.CategoryID, p.Name, p.Description, p.Price, p.DiscountedPrice,
		p.Gender, p.SizesJSON, p.ImageURLsJSON, p.AverageRating, p.RatingCount,
		p.Featured, p.IsNew, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product, nil when absent.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BrandID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
		&p.Gender, &p.SizesJSON, &p.ImageURLsJSON, &p.AverageRating, &p.RatingCount,
		&p.Featured, &p.IsNew, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List pages products, optionally filtered by a normalized name
// substring. unaccent keeps the match consistent with the normalized
// input.
func (r *ProductRepo) List(q string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE $1 = '' OR unaccent(lower(name)) LIKE '%' || lower($1) || '%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.BrandID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.DiscountedPrice,
			&p.Gender, &p.SizesJSON, &p.ImageURLsJSON, &p.AverageRating, &p.RatingCount,
			&p.Featured, &p.IsNew, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Count reports the total rows the same filter would match.
func (r *ProductRepo) Count(q string) (int, error) {
	query := `
		SELECT COUNT(*) FROM products
		WHERE $1 = '' OR unaccent(lower(name)) LIKE '%' || lower($1) || '%'`
	var n int
	if err := r.q.QueryRow(context.Background(), query, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Update overwrites the editable fields. Rating columns are written
// only through UpdateRating.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET brand_id = $2, category_id = $3, name = $4, description = $5,
			price = $6, discounted_price = $7, gender = $8, sizes = $9, image_urls = $10,
			featured = $11, is_new = $12, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BrandID, p.CategoryID, p.Name, p.Description, p.Price, p.DiscountedPrice,
		p.Gender, p.SizesJSON, p.ImageURLsJSON, p.Featured, p.IsNew,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// UpdateRating overwrites the denormalized review aggregate.
func (r *ProductRepo) UpdateRating(productID string, average float64, count int) error {
	query := `UPDATE products SET average_rating = $2, rating_count = $3, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, average, count)
	if err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}
