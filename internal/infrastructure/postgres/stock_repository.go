package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implements StockRepository on PostgreSQL (usable with pool
// or tx). The stock_records table has a unique index on
// (product_id, size).
type StockRepo struct {
	q Querier
}

// NewStockRepository builds the stock adapter. Pass pool or tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, size, quantity, created_at, updated_at`

// Create inserts a new stock record. A second record for the same
// (product, size) pair maps to ErrConflict.
func (r *StockRepo) Create(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (id, product_id, size, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ProductID, rec.Size, rec.Quantity, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	return nil
}

// GetByID fetches one stock record, nil when absent.
func (r *StockRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock record")
}

// GetByProduct lists the per-size records of a product.
func (r *StockRepo) GetByProduct(productID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 ORDER BY size`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

// GetForUpdate fetches the record and locks its row (SELECT ... FOR
// UPDATE) until the surrounding transaction ends. Returns nil, nil when
// no row exists for the key.
func (r *StockRepo) GetForUpdate(productID, size string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE product_id = $1 AND size = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID, size), "get stock record for update")
}

// UpdateQuantity overwrites the quantity of a record and hands back the
// update timestamp the database stamped, so callers never report a
// timestamp that differs from the stored row.
func (r *StockRepo) UpdateQuantity(id string, quantity int) (time.Time, error) {
	query := `UPDATE stock_records SET quantity = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`
	var updatedAt time.Time
	err := r.q.QueryRow(context.Background(), query, id, quantity).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, domain.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("update stock quantity: %w", err)
	}
	return updatedAt, nil
}

// Update overwrites the mutable fields of a record.
func (r *StockRepo) Update(rec *entity.StockRecord) error {
	query := `
		UPDATE stock_records SET product_id = $2, size = $3, quantity = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, rec.ID, rec.ProductID, rec.Size, rec.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a record; ErrNotFound when no row matched.
func (r *StockRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListLowStock returns the records at or below the threshold, emptiest
// first.
func (r *StockRepo) ListLowStock(threshold int) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE quantity <= $1
		ORDER BY quantity ASC, product_id, size`
	rows, err := r.q.Query(context.Background(), query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanStockRows(rows)
}

// Summary aggregates the whole inventory in one query plus two lookups
// for the extreme rows.
func (r *StockRepo) Summary() (*repository.StockSummary, error) {
	var s repository.StockSummary
	query := `
		SELECT COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(AVG(quantity), 0)::int
		FROM stock_records`
	if err := r.q.QueryRow(context.Background(), query).Scan(&s.TotalRecords, &s.TotalUnits, &s.AverageUnits); err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	if s.TotalRecords == 0 {
		return &s, nil
	}
	highest, err := r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+stockColumns+` FROM stock_records ORDER BY quantity DESC, product_id LIMIT 1`), "stock summary highest")
	if err != nil {
		return nil, err
	}
	lowest, err := r.scanOne(r.q.QueryRow(context.Background(),
		`SELECT `+stockColumns+` FROM stock_records ORDER BY quantity ASC, product_id LIMIT 1`), "stock summary lowest")
	if err != nil {
		return nil, err
	}
	s.Highest = highest
	s.Lowest = lowest
	return &s, nil
}

func (r *StockRepo) scanOne(row pgx.Row, op string) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	err := row.Scan(&rec.ID, &rec.ProductID, &rec.Size, &rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &rec, nil
}

func scanStockRows(rows pgx.Rows) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for rows.Next() {
		var rec entity.StockRecord
		if err := rows.Scan(&rec.ID, &rec.ProductID, &rec.Size, &rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
