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

var _ repository.ReviewRepository = (*ReviewRepo)(nil)
var _ repository.WishlistRepository = (*WishlistRepo)(nil)
var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReviewRepo implements ReviewRepository on PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository builds the review adapter. Pass pool or tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

func (r *ReviewRepo) Create(rv *entity.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepo) GetByID(id string) (*entity.Review, error) {
	query := `SELECT id, product_id, user_id, rating, comment, created_at FROM reviews WHERE id = $1`
	var rv entity.Review
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rv, nil
}

func (r *ReviewRepo) List(limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	return scanReviewRows(rows)
}

func (r *ReviewRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews by product: %w", err)
	}
	defer rows.Close()
	return scanReviewRows(rows)
}

func (r *ReviewRepo) Update(rv *entity.Review) error {
	query := `UPDATE reviews SET rating = $2, comment = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, rv.ID, rv.Rating, rv.Comment)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReviewRepo) RatingByProduct(productID string) (float64, int, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE product_id = $1`
	var avg float64
	var count int
	if err := r.q.QueryRow(context.Background(), query, productID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("rating by product: %w", err)
	}
	return avg, count, nil
}

func scanReviewRows(rows pgx.Rows) ([]*entity.Review, error) {
	var out []*entity.Review
	for rows.Next() {
		var rv entity.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		out = append(out, &rv)
	}
	return out, rows.Err()
}

// WishlistRepo implements WishlistRepository on PostgreSQL. The table
// has a unique index on (user_id, product_id).
type WishlistRepo struct {
	q Querier
}

// NewWishlistRepository builds the wishlist adapter.
func NewWishlistRepository(q Querier) *WishlistRepo {
	return &WishlistRepo{q: q}
}

func (r *WishlistRepo) Add(item *entity.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, user_id, product_id, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.UserID, item.ProductID, item.AddedAt)
	if err != nil {
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (r *WishlistRepo) Remove(userID, productID string) error {
	query := `DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`
	tag, err := r.q.Exec(context.Background(), query, userID, productID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WishlistRepo) Contains(userID, productID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`
	var present bool
	if err := r.q.QueryRow(context.Background(), query, userID, productID).Scan(&present); err != nil {
		return false, fmt.Errorf("check wishlist item: %w", err)
	}
	return present, nil
}

func (r *WishlistRepo) ListByUser(userID string, limit, offset int) ([]*entity.WishlistItem, error) {
	query := `
		SELECT id, user_id, product_id, added_at
		FROM wishlist_items WHERE user_id = $1
		ORDER BY added_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var out []*entity.WishlistItem
	for rows.Next() {
		var item entity.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

func (r *WishlistRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM wishlist_items WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count wishlist: %w", err)
	}
	return n, nil
}

func (r *WishlistRepo) Clear(userID string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM wishlist_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	return nil
}

// ReturnRepo implements ReturnRepository on PostgreSQL (usable with
// pool or tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository builds the return adapter. Pass pool or tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, order_id, order_item_id, user_id, reason, status, created_at, updated_at`

func (r *ReturnRepo) Create(ret *entity.Return) error {
	query := `
		INSERT INTO returns (id, order_id, order_item_id, user_id, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.OrderID, ret.OrderItemID, ret.UserID, ret.Reason, ret.Status, ret.CreatedAt, ret.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	var ret entity.Return
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.OrderID, &ret.OrderItemID, &ret.UserID, &ret.Reason, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &ret, nil
}

func (r *ReturnRepo) ListAll() ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	return scanReturnRows(rows)
}

func (r *ReturnRepo) ListByUser(userID string) ([]*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list returns by user: %w", err)
	}
	defer rows.Close()
	return scanReturnRows(rows)
}

func (r *ReturnRepo) Update(ret *entity.Return) error {
	query := `UPDATE returns SET reason = $2, status = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, ret.ID, ret.Reason, ret.Status, ret.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update return: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanReturnRows(rows pgx.Rows) ([]*entity.Return, error) {
	var out []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.OrderID, &ret.OrderItemID, &ret.UserID, &ret.Reason, &ret.Status, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out = append(out, &ret)
	}
	return out, rows.Err()
}
