package inventory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// memStockStore backs the fakes. Transactions stage writes on a copy of
// the committed records and swap on commit, under one mutex, which gives
// the same observable ordering a row lock does: each transaction sees
// the previous committed state, never a stale read.
type memStockStore struct {
	mu       sync.Mutex
	records  map[string]*entity.StockRecord // by ID
	products map[string]bool
}

func newMemStockStore() *memStockStore {
	return &memStockStore{
		records:  make(map[string]*entity.StockRecord),
		products: make(map[string]bool),
	}
}

func (s *memStockStore) clone() map[string]*entity.StockRecord {
	out := make(map[string]*entity.StockRecord, len(s.records))
	for id, r := range s.records {
		cp := *r
		out[id] = &cp
	}
	return out
}

// memStockRepo implements repository.StockRepository. With tx set it
// operates on the staged transaction copy (store lock already held by
// the runner); otherwise it reads the committed state under the lock.
type memStockRepo struct {
	store *memStockStore
	tx    map[string]*entity.StockRecord
}

func (r *memStockRepo) view() (map[string]*entity.StockRecord, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.store.mu.Lock()
	return r.store.records, r.store.mu.Unlock
}

func (r *memStockRepo) Create(rec *entity.StockRecord) error {
	records, unlock := r.view()
	defer unlock()
	for _, existing := range records {
		if existing.ProductID == rec.ProductID && existing.Size == rec.Size {
			return domain.ErrConflict
		}
	}
	cp := *rec
	records[rec.ID] = &cp
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.StockRecord, error) {
	records, unlock := r.view()
	defer unlock()
	rec, ok := records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memStockRepo) GetByProduct(productID string) ([]*entity.StockRecord, error) {
	records, unlock := r.view()
	defer unlock()
	var out []*entity.StockRecord
	for _, rec := range records {
		if rec.ProductID == productID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStockRepo) GetForUpdate(productID, size string) (*entity.StockRecord, error) {
	records, unlock := r.view()
	defer unlock()
	for _, rec := range records {
		if rec.ProductID == productID && rec.Size == size {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) UpdateQuantity(id string, quantity int) (time.Time, error) {
	records, unlock := r.view()
	defer unlock()
	rec, ok := records[id]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	rec.Quantity = quantity
	rec.UpdatedAt = time.Now()
	return rec.UpdatedAt, nil
}

func (r *memStockRepo) Update(rec *entity.StockRecord) error {
	records, unlock := r.view()
	defer unlock()
	if _, ok := records[rec.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *rec
	records[rec.ID] = &cp
	return nil
}

func (r *memStockRepo) Delete(id string) error {
	records, unlock := r.view()
	defer unlock()
	delete(records, id)
	return nil
}

func (r *memStockRepo) ListLowStock(threshold int) ([]*entity.StockRecord, error) {
	records, unlock := r.view()
	defer unlock()
	var out []*entity.StockRecord
	for _, rec := range records {
		if rec.Quantity <= threshold {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStockRepo) Summary() (*repository.StockSummary, error) {
	records, unlock := r.view()
	defer unlock()
	sum := &repository.StockSummary{}
	for _, rec := range records {
		sum.TotalRecords++
		sum.TotalUnits += rec.Quantity
		if sum.Highest == nil || rec.Quantity > sum.Highest.Quantity {
			cp := *rec
			sum.Highest = &cp
		}
		if sum.Lowest == nil || rec.Quantity < sum.Lowest.Quantity {
			cp := *rec
			sum.Lowest = &cp
		}
	}
	if sum.TotalRecords > 0 {
		sum.AverageUnits = sum.TotalUnits / sum.TotalRecords
	}
	return sum, nil
}

// memTxRunner serializes transactions on the store mutex and commits the
// staged copy only when fn succeeds.
type memTxRunner struct{ store *memStockStore }

func (t *memTxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	staged := t.store.clone()
	if err := fn(&memStockRepo{store: t.store, tx: staged}); err != nil {
		return err
	}
	t.store.records = staged
	return nil
}

// memProductRepo is the minimal product port the stock use case needs.
type memProductRepo struct{ store *memStockStore }

func (r *memProductRepo) Create(p *entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.products[id] {
		return &entity.Product{ID: id}, nil
	}
	return nil, nil
}
func (r *memProductRepo) List(q string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Count(q string) (int, error)        { return 0, nil }
func (r *memProductRepo) Update(p *entity.Product) error     { return nil }
func (r *memProductRepo) Delete(id string) error             { return nil }
func (r *memProductRepo) UpdateRating(string, float64, int) error { return nil }

func newTestUseCase() (*inventory.StockUseCase, *memStockStore) {
	store := newMemStockStore()
	uc := inventory.NewStockUseCase(
		&memTxRunner{store: store},
		&memStockRepo{store: store},
		&memProductRepo{store: store},
	)
	return uc, store
}

func seed(store *memStockStore, productID, size string, qty int) *entity.StockRecord {
	rec := &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		Size:      size,
		Quantity:  qty,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.products[productID] = true
	store.records[rec.ID] = rec
	return rec
}

func TestDecrement_SucceedsThenRejectsWhenShort(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 5)
	ctx := context.Background()

	require.NoError(t, uc.Decrement(ctx, "p1", "M", 3))
	got, err := uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	err = uc.Decrement(ctx, "p1", "M", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err = uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity, "a failed decrement must not mutate state")
}

func TestDecrement_UnknownKeyIsNotFound(t *testing.T) {
	uc, store := newTestUseCase()
	seed(store, "p1", "M", 5)

	err := uc.Decrement(context.Background(), "p999", "M", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecrement_NonPositiveQuantityRejected(t *testing.T) {
	uc, store := newTestUseCase()
	seed(store, "p1", "M", 5)

	assert.ErrorIs(t, uc.Decrement(context.Background(), "p1", "M", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Decrement(context.Background(), "p1", "M", -2), domain.ErrInvalidInput)
}

func TestIncrement_AddsAndTouchesUpdatedAt(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 2)
	before := rec.UpdatedAt

	updated, err := uc.Increment(context.Background(), "p1", "M", 10)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)

	got, err := uc.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
	assert.True(t, !got.UpdatedAt.Before(before), "UpdatedAt must advance")
}

func TestIncrement_ReturnsStoredUpdatedAt(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 2)

	updated, err := uc.Increment(context.Background(), "p1", "M", 4)
	require.NoError(t, err)

	// The returned record must carry the timestamp the store wrote, not
	// one generated on the way out.
	store.mu.Lock()
	stored := store.records[rec.ID].UpdatedAt
	store.mu.Unlock()
	assert.True(t, updated.UpdatedAt.Equal(stored),
		"returned UpdatedAt %s differs from stored %s", updated.UpdatedAt, stored)
}

func TestIncrement_UnknownKeyIsNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Increment(context.Background(), "p1", "XL", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_DuplicateKeyConflicts(t *testing.T) {
	uc, store := newTestUseCase()
	store.products["p1"] = true
	ctx := context.Background()

	first, err := uc.Create(ctx, "p1", "M", 5)
	require.NoError(t, err)

	_, err = uc.Create(ctx, "p1", "M", 1)
	assert.ErrorIs(t, err, domain.ErrConflict)

	recs, err := uc.GetByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, recs, 1, "exactly one record must exist for the key")
	assert.Equal(t, first.ID, recs[0].ID)
	assert.Equal(t, 5, recs[0].Quantity)
}

func TestCreate_NegativeQuantityRejectedBeforePersist(t *testing.T) {
	uc, store := newTestUseCase()
	store.products["p1"] = true

	_, err := uc.Create(context.Background(), "p1", "M", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.records, "nothing may be persisted")
}

func TestCreate_UnknownProductIsNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.Create(context.Background(), "ghost", "M", 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateThenGetByID_RoundTrip(t *testing.T) {
	uc, store := newTestUseCase()
	store.products["p1"] = true

	created, err := uc.Create(context.Background(), "p1", "L", 7)
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, "L", got.Size)
	assert.Equal(t, 7, got.Quantity)
}

func TestDelete_MissingRecordIsNotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	assert.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
}

func TestUpdate_RejectsNegativeQuantity(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 5)

	neg := -3
	_, err := uc.Update(context.Background(), rec.ID, &neg, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Two concurrent decrements of 3 against quantity 5: exactly one may
// win, and the final quantity must be 2.
func TestDecrement_ConcurrentPairExactlyOneWins(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 5)
	ctx := context.Background()

	var success, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			switch err := uc.Decrement(ctx, "p1", "M", 3); {
			case err == nil:
				success.Add(1)
			case err == domain.ErrInsufficientStock:
				insufficient.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), success.Load(), "exactly one decrement may succeed")
	assert.Equal(t, int32(1), insufficient.Load(), "the other must report insufficient stock")

	got, err := uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

// Fan out many concurrent single-unit decrements against limited stock:
// successes must equal the initial stock and the quantity must land on
// zero, never below.
func TestDecrement_ConcurrentFanOutNeverOversells(t *testing.T) {
	uc, store := newTestUseCase()
	const initialStock = 10
	const requests = 40
	rec := seed(store, "p1", "M", initialStock)
	ctx := context.Background()

	var success atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := uc.Decrement(ctx, "p1", "M", 1); err == nil {
				success.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(initialStock), success.Load())

	got, err := uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
	assert.GreaterOrEqual(t, got.Quantity, 0, "quantity can never go negative")
}

// Interleaved increments and decrements on the same key must not lose
// updates: the final quantity is the initial stock plus the net of all
// applied operations.
func TestStock_ConcurrentMixedOperationsConsistent(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 100)
	ctx := context.Background()

	const pairs = 25
	var wg sync.WaitGroup
	for i := 0; i < pairs; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, uc.Decrement(ctx, "p1", "M", 2))
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Increment(ctx, "p1", "M", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 100-pairs*2+pairs, got.Quantity)
}

func TestGetByProduct_DoesNotMutate(t *testing.T) {
	uc, store := newTestUseCase()
	rec := seed(store, "p1", "M", 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		recs, err := uc.GetByProduct(ctx, "p1")
		require.NoError(t, err)
		require.Len(t, recs, 1)
	}
	got, err := uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}
