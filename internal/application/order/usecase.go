package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/logger"
	"github.com/threadline-shop/threadline-api/pkg/metrics"
)

// LineItem is one requested order line.
type LineItem struct {
	ProductID string
	Size      string
	Quantity  int
}

// CreateInput is the order creation request after DTO decoding.
type CreateInput struct {
	UserID         string // empty for guest checkout
	Email          string
	FullName       string
	Address        string
	City           string
	State          string
	PostalCode     string
	Phone          string
	IdempotencyKey string
	Items          []LineItem
}

// UseCase drives order placement, cancellation and administration.
// Placement decrements stock through the guarded locked path for every
// line inside one transaction: the first line that cannot be covered
// aborts the whole order, so a recorded order always has its stock.
type UseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	stockUC     *inventory.StockUseCase
	log         *logger.Logger
}

// NewUseCase builds the order use case.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, stockUC *inventory.StockUseCase, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo, stockUC: stockUC, log: log}
}

// Create places an order. When input carries an idempotency key that an
// earlier order already used, the stored order is returned with
// replayed=true and nothing is applied again.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (created *entity.Order, replayed bool, err error) {
	if len(input.Items) == 0 || input.Email == "" || input.FullName == "" {
		return nil, false, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Size == "" || item.Quantity <= 0 {
			return nil, false, domain.ErrInvalidInput
		}
	}

	if input.IdempotencyKey != "" {
		existing, err := uc.orderRepo.GetByIdempotencyKey(input.IdempotencyKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	// Price the lines up front; missing products reject the order before
	// the transaction starts.
	total := decimal.Zero
	prices := make(map[string]decimal.Decimal, len(input.Items))
	for _, item := range input.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, false, err
		}
		if product == nil {
			return nil, false, domain.ErrNotFound
		}
		price := product.Price
		if product.DiscountedPrice != nil {
			price = *product.DiscountedPrice
		}
		prices[item.ProductID] = price
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now()
	ord := &entity.Order{
		ID:             uuid.New().String(),
		UserID:         input.UserID,
		Email:          input.Email,
		FullName:       input.FullName,
		Address:        input.Address,
		City:           input.City,
		State:          input.State,
		PostalCode:     input.PostalCode,
		Phone:          input.Phone,
		Status:         entity.OrderStatusPending,
		Total:          total,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error {
		if err := orderRepo.Create(ord); err != nil {
			return err
		}
		for _, item := range input.Items {
			if err := uc.stockUC.DecrementInTx(stockRepo, item.ProductID, item.Size, item.Quantity); err != nil {
				return err
			}
			if err := orderRepo.AddItem(&entity.OrderItem{
				ID:        uuid.New().String(),
				OrderID:   ord.ID,
				ProductID: item.ProductID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				Price:     prices[item.ProductID],
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A concurrent request with the same idempotency key may have won
		// the unique index race; hand back its order.
		if errors.Is(err, domain.ErrConflict) && input.IdempotencyKey != "" {
			existing, getErr := uc.orderRepo.GetByIdempotencyKey(input.IdempotencyKey)
			if getErr == nil && existing != nil {
				return existing, true, nil
			}
		}
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrNotFound) {
			metrics.OrdersCreated.WithLabelValues("rejected").Inc()
		} else {
			metrics.OrdersCreated.WithLabelValues("error").Inc()
		}
		return nil, false, err
	}

	metrics.OrdersCreated.WithLabelValues("created").Inc()
	uc.log.Info().Str("order_id", ord.ID).Str("user_id", ord.UserID).Msg("order created")
	return ord, false, nil
}

// Get returns an order with its items. Customers only see their own.
func (uc *UseCase) Get(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, []*entity.OrderItem, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, nil, err
	}
	if ord == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !isAdmin && ord.UserID != userID {
		return nil, nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.ItemsByOrder(orderID)
	if err != nil {
		return nil, nil, err
	}
	return ord, items, nil
}

// List pages a user's orders; admins see everyone's.
func (uc *UseCase) List(ctx context.Context, userID string, isAdmin bool, limit, offset int) ([]*entity.Order, int, error) {
	if isAdmin {
		orders, err := uc.orderRepo.ListAll(limit, offset)
		if err != nil {
			return nil, 0, err
		}
		total, err := uc.orderRepo.CountAll()
		return orders, total, err
	}
	orders, err := uc.orderRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.orderRepo.CountByUser(userID)
	return orders, total, err
}

// UpdateStatus moves an order forward through the fulfilment statuses
// (admin operation). Cancelled is not reachable here: cancellation has
// its own flow that also restores stock, and a cancelled or delivered
// order never leaves that state. The write is conditional on the status
// the caller observed, so a concurrent transition cannot be overwritten.
func (uc *UseCase) UpdateStatus(ctx context.Context, orderID, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) || status == entity.OrderStatusCancelled {
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(ord.Status, status) {
		return nil, domain.ErrConflict
	}
	if err := uc.orderRepo.UpdateStatusFrom(orderID, status, ord.Status); err != nil {
		return nil, err
	}
	ord.Status = status
	ord.UpdatedAt = time.Now()
	return ord, nil
}

// Cancel cancels a pending or processing order and restores stock for
// every line through the locked increment path, in one transaction with
// the status change. A line whose stock record has since been deleted is
// logged for reconciliation and skipped rather than failing the cancel.
func (uc *UseCase) Cancel(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && ord.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ord.Status != entity.OrderStatusPending && ord.Status != entity.OrderStatusProcessing {
		return nil, domain.ErrConflict
	}

	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error {
		// Conditional transition first: of two concurrent cancels only
		// one finds the order still cancellable, so stock is restored
		// exactly once.
		if err := orderRepo.UpdateStatusFrom(orderID, entity.OrderStatusCancelled,
			entity.OrderStatusPending, entity.OrderStatusProcessing); err != nil {
			return err
		}
		items, err := orderRepo.ItemsByOrder(orderID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := uc.stockUC.IncrementInTx(stockRepo, item.ProductID, item.Size, item.Quantity); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					uc.log.Warn().
						Str("order_id", orderID).
						Str("product_id", item.ProductID).
						Str("size", item.Size).
						Msg("stock record missing on cancel, restock skipped")
					continue
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ord.Status = entity.OrderStatusCancelled
	ord.UpdatedAt = time.Now()
	uc.log.Info().Str("order_id", orderID).Msg("order cancelled")
	return ord, nil
}

// Items lists the line items of an order, with the same visibility rule
// as Get.
func (uc *UseCase) Items(ctx context.Context, orderID, userID string, isAdmin bool) ([]*entity.OrderItem, error) {
	_, items, err := uc.Get(ctx, orderID, userID, isAdmin)
	return items, err
}

// AddItem appends a line to an existing pending order, decrementing
// stock through the guarded path in the same transaction.
func (uc *UseCase) AddItem(ctx context.Context, orderID string, line LineItem) (*entity.OrderItem, error) {
	if line.ProductID == "" || line.Size == "" || line.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.Status != entity.OrderStatusPending {
		return nil, domain.ErrConflict
	}
	product, err := uc.productRepo.GetByID(line.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	price := product.Price
	if product.DiscountedPrice != nil {
		price = *product.DiscountedPrice
	}
	item := &entity.OrderItem{
		ID:        uuid.New().String(),
		OrderID:   orderID,
		ProductID: line.ProductID,
		Size:      line.Size,
		Quantity:  line.Quantity,
		Price:     price,
	}
	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error {
		if err := uc.stockUC.DecrementInTx(stockRepo, line.ProductID, line.Size, line.Quantity); err != nil {
			return err
		}
		if err := orderRepo.AddItem(item); err != nil {
			return err
		}
		return refreshTotal(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a line from a pending order and restores its stock.
func (uc *UseCase) RemoveItem(ctx context.Context, orderID, itemID string) error {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if ord == nil {
		return domain.ErrNotFound
	}
	if ord.Status != entity.OrderStatusPending {
		return domain.ErrConflict
	}
	item, err := uc.orderRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.OrderID != orderID {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, stockRepo repository.StockRepository) error {
		if err := orderRepo.RemoveItem(orderID, itemID); err != nil {
			return err
		}
		if _, err := uc.stockUC.IncrementInTx(stockRepo, item.ProductID, item.Size, item.Quantity); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			uc.log.Warn().
				Str("order_id", orderID).
				Str("product_id", item.ProductID).
				Msg("stock record missing on item removal, restock skipped")
		}
		return refreshTotal(orderRepo, orderID)
	})
}

// refreshTotal recomputes orders.total from the remaining lines. Call it
// inside the transaction that changed the lines so the stored total and
// the line set can never be observed out of step.
func refreshTotal(orderRepo repository.OrderRepository, orderID string) error {
	items, err := orderRepo.ItemsByOrder(orderID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return orderRepo.UpdateTotal(orderID, total)
}

// Stats aggregates orders created in the last days for the admin
// dashboard.
func (uc *UseCase) Stats(ctx context.Context, days int) (*repository.OrderStats, error) {
	if days <= 0 {
		days = 30
	}
	return uc.orderRepo.Stats(time.Now().AddDate(0, 0, -days))
}
