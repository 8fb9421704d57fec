package order_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/application/order"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/logger"
)

// memState is everything the fakes persist. Transactions stage a deep
// copy and swap it in on commit under one mutex, which mirrors the
// serialization the database row lock gives the real implementation.
type memState struct {
	orders   map[string]*entity.Order
	items    map[string]*entity.OrderItem
	stock    map[string]*entity.StockRecord
	products map[string]*entity.Product
}

func newMemState() *memState {
	return &memState{
		orders:   make(map[string]*entity.Order),
		items:    make(map[string]*entity.OrderItem),
		stock:    make(map[string]*entity.StockRecord),
		products: make(map[string]*entity.Product),
	}
}

func (s *memState) clone() *memState {
	out := newMemState()
	for k, v := range s.orders {
		cp := *v
		out.orders[k] = &cp
	}
	for k, v := range s.items {
		cp := *v
		out.items[k] = &cp
	}
	for k, v := range s.stock {
		cp := *v
		out.stock[k] = &cp
	}
	out.products = s.products
	return out
}

type memStore struct {
	mu    sync.Mutex
	state *memState
}

// --- order repository fake ---

type memOrderRepo struct {
	store *memStore
	tx    *memState
	// readDelay widens the window between a non-transactional read and
	// the transaction that acts on it, for races the tests provoke.
	readDelay time.Duration
}

func (r *memOrderRepo) view() (*memState, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.store.mu.Lock()
	return r.store.state, r.store.mu.Unlock
}

func (r *memOrderRepo) Create(o *entity.Order) error {
	st, unlock := r.view()
	defer unlock()
	if o.IdempotencyKey != "" {
		for _, existing := range st.orders {
			if existing.IdempotencyKey == o.IdempotencyKey {
				return domain.ErrConflict
			}
		}
	}
	cp := *o
	st.orders[o.ID] = &cp
	return nil
}

func (r *memOrderRepo) AddItem(item *entity.OrderItem) error {
	st, unlock := r.view()
	defer unlock()
	cp := *item
	st.items[item.ID] = &cp
	return nil
}

func (r *memOrderRepo) GetByID(id string) (*entity.Order, error) {
	if r.tx == nil && r.readDelay > 0 {
		time.Sleep(r.readDelay)
	}
	st, unlock := r.view()
	defer unlock()
	o, ok := st.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetByIdempotencyKey(key string) (*entity.Order, error) {
	st, unlock := r.view()
	defer unlock()
	for _, o := range st.orders {
		if o.IdempotencyKey == key {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	st, unlock := r.view()
	defer unlock()
	var out []*entity.OrderItem
	for _, item := range st.items {
		if item.OrderID == orderID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) GetItem(itemID string) (*entity.OrderItem, error) {
	st, unlock := r.view()
	defer unlock()
	item, ok := st.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memOrderRepo) RemoveItem(orderID, itemID string) error {
	st, unlock := r.view()
	defer unlock()
	delete(st.items, itemID)
	return nil
}

func (r *memOrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	st, unlock := r.view()
	defer unlock()
	var out []*entity.Order
	for _, o := range st.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	st, unlock := r.view()
	defer unlock()
	var out []*entity.Order
	for _, o := range st.orders {
		cp := *o
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memOrderRepo) CountByUser(userID string) (int, error) {
	orders, _ := r.ListByUser(userID, 0, 0)
	return len(orders), nil
}

func (r *memOrderRepo) CountAll() (int, error) {
	orders, _ := r.ListAll(0, 0)
	return len(orders), nil
}

func (r *memOrderRepo) UpdateStatusFrom(id, status string, from ...string) error {
	st, unlock := r.view()
	defer unlock()
	o, ok := st.orders[id]
	if !ok {
		return domain.ErrConflict
	}
	current := false
	for _, f := range from {
		if o.Status == f {
			current = true
			break
		}
	}
	if !current {
		return domain.ErrConflict
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) UpdateTotal(id string, total decimal.Decimal) error {
	st, unlock := r.view()
	defer unlock()
	o, ok := st.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Total = total
	o.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) Stats(since time.Time) (*repository.OrderStats, error) {
	st, unlock := r.view()
	defer unlock()
	stats := &repository.OrderStats{TotalRevenue: decimal.Zero, ByStatus: map[string]int{}}
	for _, o := range st.orders {
		if o.CreatedAt.Before(since) {
			continue
		}
		stats.Count++
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		stats.ByStatus[o.Status]++
	}
	if stats.Count > 0 {
		stats.AverageOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.Count)))
	}
	return stats, nil
}

// --- stock repository fake (subset the order flow exercises) ---

type memStockRepo struct {
	store *memStore
	tx    *memState
}

func (r *memStockRepo) view() (*memState, func()) {
	if r.tx != nil {
		return r.tx, func() {}
	}
	r.store.mu.Lock()
	return r.store.state, r.store.mu.Unlock
}

func (r *memStockRepo) Create(rec *entity.StockRecord) error {
	st, unlock := r.view()
	defer unlock()
	cp := *rec
	st.stock[rec.ID] = &cp
	return nil
}

func (r *memStockRepo) GetByID(id string) (*entity.StockRecord, error) {
	st, unlock := r.view()
	defer unlock()
	rec, ok := st.stock[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memStockRepo) GetByProduct(productID string) ([]*entity.StockRecord, error) {
	st, unlock := r.view()
	defer unlock()
	var out []*entity.StockRecord
	for _, rec := range st.stock {
		if rec.ProductID == productID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memStockRepo) GetForUpdate(productID, size string) (*entity.StockRecord, error) {
	st, unlock := r.view()
	defer unlock()
	for _, rec := range st.stock {
		if rec.ProductID == productID && rec.Size == size {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStockRepo) UpdateQuantity(id string, quantity int) (time.Time, error) {
	st, unlock := r.view()
	defer unlock()
	rec, ok := st.stock[id]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	rec.Quantity = quantity
	rec.UpdatedAt = time.Now()
	return rec.UpdatedAt, nil
}

func (r *memStockRepo) Update(rec *entity.StockRecord) error {
	st, unlock := r.view()
	defer unlock()
	cp := *rec
	st.stock[rec.ID] = &cp
	return nil
}

func (r *memStockRepo) Delete(id string) error {
	st, unlock := r.view()
	defer unlock()
	delete(st.stock, id)
	return nil
}

func (r *memStockRepo) ListLowStock(threshold int) ([]*entity.StockRecord, error) {
	return nil, nil
}

func (r *memStockRepo) Summary() (*repository.StockSummary, error) {
	return &repository.StockSummary{}, nil
}

// --- product repository fake ---

type memProductRepo struct{ store *memStore }

func (r *memProductRepo) Create(p *entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.state.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *memProductRepo) List(q string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Count(q string) (int, error)             { return 0, nil }
func (r *memProductRepo) Update(p *entity.Product) error          { return nil }
func (r *memProductRepo) Delete(id string) error                  { return nil }
func (r *memProductRepo) UpdateRating(string, float64, int) error { return nil }

// --- transaction runners ---

type memOrderTxRunner struct{ store *memStore }

func (t *memOrderTxRunner) RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	staged := t.store.state.clone()
	if err := fn(&memOrderRepo{store: t.store, tx: staged}, &memStockRepo{store: t.store, tx: staged}); err != nil {
		return err
	}
	t.store.state = staged
	return nil
}

type memStockTxRunner struct{ store *memStore }

func (t *memStockTxRunner) Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	staged := t.store.state.clone()
	if err := fn(&memStockRepo{store: t.store, tx: staged}); err != nil {
		return err
	}
	t.store.state = staged
	return nil
}

// --- helpers ---

func newTestUseCase() (*order.UseCase, *memStore) {
	store := &memStore{state: newMemState()}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	productRepo := &memProductRepo{store: store}
	stockUC := inventory.NewStockUseCase(
		&memStockTxRunner{store: store},
		&memStockRepo{store: store},
		productRepo,
	)
	uc := order.NewUseCase(
		&memOrderTxRunner{store: store},
		&memOrderRepo{store: store},
		productRepo,
		stockUC,
		log,
	)
	return uc, store
}

func seedProduct(store *memStore, id string, price int64) {
	store.state.products[id] = &entity.Product{ID: id, Price: decimal.NewFromInt(price)}
}

func seedStock(store *memStore, productID, size string, qty int) *entity.StockRecord {
	rec := &entity.StockRecord{
		ID:        uuid.New().String(),
		ProductID: productID,
		Size:      size,
		Quantity:  qty,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.state.stock[rec.ID] = rec
	return rec
}

func stockQty(t *testing.T, store *memStore, id string) int {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	rec, ok := store.state.stock[id]
	require.True(t, ok, "stock record must exist")
	return rec.Quantity
}

func baseInput(items ...order.LineItem) order.CreateInput {
	return order.CreateInput{
		UserID:   "u1",
		Email:    "ada@example.com",
		FullName: "Ada Lovelace",
		Address:  "12 Analytical Way",
		City:     "London",
		State:    "LDN",
		PostalCode: "E1 6AN",
		Phone:    "+44 20 0000 0000",
		Items:    items,
	}
}

// --- tests ---

func TestCreate_DecrementsStockAndComputesTotal(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 40)
	rec := seedStock(store, "p1", "M", 5)

	ord, replayed, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 3}))
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, entity.OrderStatusPending, ord.Status)
	assert.True(t, ord.Total.Equal(decimal.NewFromInt(120)), "total = price * qty, got %s", ord.Total)
	assert.Equal(t, 2, stockQty(t, store, rec.ID))
}

func TestCreate_InsufficientStockRejectsWholeOrder(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 10)
	rec1 := seedStock(store, "p1", "M", 5)
	rec2 := seedStock(store, "p2", "L", 1)

	_, _, err := uc.Create(context.Background(), baseInput(
		order.LineItem{ProductID: "p1", Size: "M", Quantity: 2},
		order.LineItem{ProductID: "p2", Size: "L", Quantity: 3},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nothing from the rejected order may stick: no order, no partial
	// decrement of the first line.
	assert.Equal(t, 5, stockQty(t, store, rec1.ID))
	assert.Equal(t, 1, stockQty(t, store, rec2.ID))
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.state.orders)
	assert.Empty(t, store.state.items)
}

func TestCreate_UnknownProductRejected(t *testing.T) {
	uc, _ := newTestUseCase()
	_, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "ghost", Size: "M", Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_EmptyItemsRejected(t *testing.T) {
	uc, _ := newTestUseCase()
	_, _, err := uc.Create(context.Background(), baseInput())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_IdempotencyKeyReplaysExistingOrder(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 15)
	rec := seedStock(store, "p1", "S", 10)

	input := baseInput(order.LineItem{ProductID: "p1", Size: "S", Quantity: 2})
	input.IdempotencyKey = "retry-abc"

	first, replayed, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, replayed)

	second, replayed, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, replayed, "the retry must replay, not re-apply")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 8, stockQty(t, store, rec.ID), "stock decremented exactly once")
}

func TestCreate_ConcurrentPairOnScarceStock(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 99)
	rec := seedStock(store, "p1", "M", 5)

	var success, insufficient atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 3}))
			switch {
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

	assert.Equal(t, int32(1), success.Load(), "exactly one order may be placed")
	assert.Equal(t, int32(1), insufficient.Load())
	assert.Equal(t, 2, stockQty(t, store, rec.ID))
}

func TestCancel_RestoresStock(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	rec := seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 3}))
	require.NoError(t, err)
	require.Equal(t, 2, stockQty(t, store, rec.ID))

	cancelled, err := uc.Cancel(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, stockQty(t, store, rec.ID))
}

func TestCancel_MissingStockRecordStillCancels(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	rec := seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)

	// The stock record vanishes (product cleanup) before the cancel.
	store.mu.Lock()
	delete(store.state.stock, rec.ID)
	store.mu.Unlock()

	cancelled, err := uc.Cancel(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err, "a missing stock row is a reconciliation concern, not a cancel failure")
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
}

func TestCancel_WrongOwnerForbidden(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), ord.ID, "someone-else", false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Admins may cancel anyone's order.
	_, err = uc.Cancel(context.Background(), ord.ID, "someone-else", true)
	assert.NoError(t, err)
}

func TestCancel_ShippedOrderConflicts(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusShipped)
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), ord.ID, "u1", false)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_InvalidStatusRejected(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.UpdateStatus(context.Background(), "any", "teleported")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancel_ConcurrentCancelRestocksOnce(t *testing.T) {
	store := &memStore{state: newMemState()}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	productRepo := &memProductRepo{store: store}
	stockUC := inventory.NewStockUseCase(
		&memStockTxRunner{store: store},
		&memStockRepo{store: store},
		productRepo,
	)
	uc := order.NewUseCase(
		&memOrderTxRunner{store: store},
		&memOrderRepo{store: store, readDelay: 2 * time.Millisecond},
		productRepo,
		stockUC,
		log,
	)

	seedProduct(store, "p1", 20)
	rec := seedStock(store, "p1", "M", 3)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 3}))
	require.NoError(t, err)
	require.Equal(t, 0, stockQty(t, store, rec.ID))

	var success, conflict atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Cancel(context.Background(), ord.ID, "u1", false)
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, domain.ErrConflict):
				conflict.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), success.Load(), "exactly one cancel may win")
	assert.Equal(t, int32(1), conflict.Load())
	assert.Equal(t, 3, stockQty(t, store, rec.ID), "stock restored exactly once")
}

func TestUpdateStatus_InvalidTransitionConflicts(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)

	// Delivered is terminal; nothing may move it back.
	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateStatus_CancelledOrderStaysCancelled(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	rec := seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 2}))
	require.NoError(t, err)
	_, err = uc.Cancel(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	require.Equal(t, 5, stockQty(t, store, rec.ID))

	// Reviving a cancelled order would leave its restocked units counted
	// twice the next time it is cancelled.
	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, stockQty(t, store, rec.ID))
}

func TestUpdateStatus_CancelledTargetRejected(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)

	// Cancelling goes through Cancel, which restores stock; a plain status
	// write to cancelled must be refused.
	_, err = uc.UpdateStatus(context.Background(), ord.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddItem_UpdatesOrderTotal(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedProduct(store, "p2", 15)
	seedStock(store, "p1", "M", 5)
	seedStock(store, "p2", "L", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 1}))
	require.NoError(t, err)
	require.True(t, ord.Total.Equal(decimal.NewFromInt(20)))

	_, err = uc.AddItem(context.Background(), ord.ID, order.LineItem{ProductID: "p2", Size: "L", Quantity: 2})
	require.NoError(t, err)

	got, _, err := uc.Get(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(50)), "total = 20 + 2*15, got %s", got.Total)
}

func TestRemoveItem_UpdatesOrderTotal(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	seedProduct(store, "p2", 15)
	seedStock(store, "p1", "M", 5)
	seedStock(store, "p2", "L", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(
		order.LineItem{ProductID: "p1", Size: "M", Quantity: 1},
		order.LineItem{ProductID: "p2", Size: "L", Quantity: 2},
	))
	require.NoError(t, err)
	require.True(t, ord.Total.Equal(decimal.NewFromInt(50)))

	items, err := uc.Items(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	var removeID string
	for _, item := range items {
		if item.ProductID == "p2" {
			removeID = item.ID
		}
	}
	require.NotEmpty(t, removeID)

	require.NoError(t, uc.RemoveItem(context.Background(), ord.ID, removeID))

	got, _, err := uc.Get(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(20)), "total = remaining line, got %s", got.Total)
}

func TestRemoveItem_RestoresStock(t *testing.T) {
	uc, store := newTestUseCase()
	seedProduct(store, "p1", 20)
	rec := seedStock(store, "p1", "M", 5)

	ord, _, err := uc.Create(context.Background(), baseInput(order.LineItem{ProductID: "p1", Size: "M", Quantity: 2}))
	require.NoError(t, err)
	items, err := uc.Items(context.Background(), ord.ID, "u1", false)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, uc.RemoveItem(context.Background(), ord.ID, items[0].ID))
	assert.Equal(t, 5, stockQty(t, store, rec.ID))
}
