package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implements OrderRepository on PostgreSQL (usable with pool
// or tx). orders.idempotency_key has a partial unique index (NULLs
// exempt), so two concurrent creates with the same key cannot both land.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_id, email, full_name, address, city, state, postal_code,
		phone, status, total, idempotency_key, created_at, updated_at`

// Create inserts an order row. An idempotency key collision maps to
// ErrConflict.
func (r *OrderRepo) Create(o *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, email, full_name, address, city, state, postal_code,
			phone, status, total, idempotency_key, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.UserID, o.Email, o.FullName, o.Address, o.City, o.State, o.PostalCode,
		o.Phone, o.Status, o.Total, o.IdempotencyKey, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// AddItem inserts one order line.
func (r *OrderRepo) AddItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, size, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Size, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID fetches one order, nil when absent.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get order")
}

// GetByIdempotencyKey fetches the order created under the key, nil when
// none was.
func (r *OrderRepo) GetByIdempotencyKey(key string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE idempotency_key = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, key), "get order by idempotency key")
}

// ItemsByOrder lists the lines of an order.
func (r *OrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, size, quantity, price
		FROM order_items WHERE order_id = $1 ORDER BY product_id, size`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, &item)
	}
	return out, rows.Err()
}

// GetItem fetches one order line, nil when absent.
func (r *OrderRepo) GetItem(itemID string) (*entity.OrderItem, error) {
	query := `SELECT id, order_id, product_id, size, quantity, price FROM order_items WHERE id = $1`
	var item entity.OrderItem
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.Size, &item.Quantity, &item.Price,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes one line of an order.
func (r *OrderRepo) RemoveItem(orderID, itemID string) error {
	query := `DELETE FROM order_items WHERE id = $1 AND order_id = $2`
	tag, err := r.q.Exec(context.Background(), query, itemID, orderID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser pages a user's orders, newest first.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders by user: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListAll pages every order, newest first.
func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// CountByUser reports how many orders the user has.
func (r *OrderRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders by user: %w", err)
	}
	return n, nil
}

// CountAll reports the total order count.
func (r *OrderRepo) CountAll() (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

// UpdateStatusFrom moves an order to status only when its current
// status is one of from. The condition lives in the UPDATE itself, so a
// concurrent transition on the same order makes exactly one caller win;
// the loser sees ErrConflict.
func (r *OrderRepo) UpdateStatusFrom(id, status string, from ...string) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1 AND status = ANY($3)`
	tag, err := r.q.Exec(context.Background(), query, id, status, from)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdateTotal rewrites the stored order total after its lines changed.
func (r *OrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	query := `UPDATE orders SET total = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats aggregates orders created since the cutoff: count, revenue,
// average and a per-status breakdown.
func (r *OrderRepo) Stats(since time.Time) (*repository.OrderStats, error) {
	stats := &repository.OrderStats{
		TotalRevenue:      decimal.Zero,
		AverageOrderValue: decimal.Zero,
		ByStatus:          map[string]int{},
	}
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(AVG(total), 0)
		FROM orders WHERE created_at >= $1`
	err := r.q.QueryRow(context.Background(), query, since).Scan(
		&stats.Count, &stats.TotalRevenue, &stats.AverageOrderValue,
	)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT status, COUNT(*) FROM orders WHERE created_at >= $1 GROUP BY status`, since)
	if err != nil {
		return nil, fmt.Errorf("order stats by status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order stats row: %w", err)
		}
		stats.ByStatus[status] = n
	}
	return stats, rows.Err()
}

func (r *OrderRepo) scanOne(row pgx.Row, op string) (*entity.Order, error) {
	var o entity.Order
	var userID, idempotencyKey *string
	err := row.Scan(
		&o.ID, &userID, &o.Email, &o.FullName, &o.Address, &o.City, &o.State, &o.PostalCode,
		&o.Phone, &o.Status, &o.Total, &idempotencyKey, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if userID != nil {
		o.UserID = *userID
	}
	if idempotencyKey != nil {
		o.IdempotencyKey = *idempotencyKey
	}
	return &o, nil
}

func (r *OrderRepo) scanRows(rows pgx.Rows) ([]*entity.Order, error) {
	var out []*entity.Order
	for rows.Next() {
		var o entity.Order
		var userID, idempotencyKey *string
		if err := rows.Scan(
			&o.ID, &userID, &o.Email, &o.FullName, &o.Address, &o.City, &o.State, &o.PostalCode,
			&o.Phone, &o.Status, &o.Total, &idempotencyKey, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if userID != nil {
			o.UserID = *userID
		}
		if idempotencyKey != nil {
			o.IdempotencyKey = *idempotencyKey
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}
