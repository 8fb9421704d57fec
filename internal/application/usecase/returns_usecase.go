package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/logger"
)

// ReturnsTxRunner runs fn inside one transaction; the repositories it
// passes are bound to that transaction.
type ReturnsTxRunner interface {
	RunReturns(ctx context.Context, fn func(returnRepo repository.ReturnRepository, stockRepo repository.StockRepository) error) error
}

// ReturnsUseCase covers the return workflow: a customer opens a return
// for a delivered order item, an admin approves or rejects it, approval
// restocks the returned quantity through the locked increment path in
// the same transaction as the status change.
type ReturnsUseCase struct {
	txRunner  ReturnsTxRunner
	repo      repository.ReturnRepository
	orderRepo repository.OrderRepository
	stockUC   *inventory.StockUseCase
	log       *logger.Logger
}

// NewReturnsUseCase builds the returns use case.
func NewReturnsUseCase(txRunner ReturnsTxRunner, repo repository.ReturnRepository, orderRepo repository.OrderRepository, stockUC *inventory.StockUseCase, log *logger.Logger) *ReturnsUseCase {
	return &ReturnsUseCase{txRunner: txRunner, repo: repo, orderRepo: orderRepo, stockUC: stockUC, log: log}
}

// Create opens a return for one item of the caller's delivered order.
func (uc *ReturnsUseCase) Create(ctx context.Context, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	ord, err := uc.orderRepo.GetByID(in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrNotFound
	}
	if ord.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if ord.Status != entity.OrderStatusDelivered {
		return nil, domain.ErrConflict
	}
	item, err := uc.orderRepo.GetItem(in.OrderItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OrderID != in.OrderID {
		return nil, domain.ErrNotFound
	}

	// One open return per item.
	existing, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, ret := range existing {
		if ret.OrderItemID == in.OrderItemID && ret.Status != entity.ReturnStatusRejected {
			return nil, domain.ErrConflict
		}
	}

	now := time.Now()
	ret := &entity.Return{
		ID:          uuid.New().String(),
		OrderID:     in.OrderID,
		OrderItemID: in.OrderItemID,
		UserID:      userID,
		Reason:      in.Reason,
		Status:      entity.ReturnStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ret); err != nil {
		return nil, err
	}
	return toReturnResponse(ret), nil
}

// ListByUser returns the caller's return requests.
func (uc *ReturnsUseCase) ListByUser(userID string) ([]dto.ReturnResponse, error) {
	returns, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return toReturnResponses(returns), nil
}

// ListAll returns every return request (admin).
func (uc *ReturnsUseCase) ListAll() ([]dto.ReturnResponse, error) {
	returns, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return toReturnResponses(returns), nil
}

// Resolve approves or rejects a pending return. Approval restocks the
// returned quantity; a stock record deleted since the sale is logged
// and skipped so the approval still lands.
func (uc *ReturnsUseCase) Resolve(ctx context.Context, id, status string) (*dto.ReturnResponse, error) {
	if status != entity.ReturnStatusApproved && status != entity.ReturnStatusRejected {
		return nil, domain.ErrInvalidInput
	}
	ret, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, domain.ErrNotFound
	}
	if ret.Status != entity.ReturnStatusPending {
		return nil, domain.ErrConflict
	}

	ret.Status = status
	ret.UpdatedAt = time.Now()

	if status == entity.ReturnStatusRejected {
		if err := uc.repo.Update(ret); err != nil {
			return nil, err
		}
		return toReturnResponse(ret), nil
	}

	item, err := uc.orderRepo.GetItem(ret.OrderItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	err = uc.txRunner.RunReturns(ctx, func(returnRepo repository.ReturnRepository, stockRepo repository.StockRepository) error {
		if err := returnRepo.Update(ret); err != nil {
			return err
		}
		if _, err := uc.stockUC.IncrementInTx(stockRepo, item.ProductID, item.Size, item.Quantity); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				uc.log.Warn().
					Str("return_id", ret.ID).
					Str("product_id", item.ProductID).
					Str("size", item.Size).
					Msg("stock record missing on return approval, restock skipped")
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("return_id", ret.ID).Str("status", status).Msg("return resolved")
	return toReturnResponse(ret), nil
}

func toReturnResponse(r *entity.Return) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:          r.ID,
		OrderID:     r.OrderID,
		OrderItemID: r.OrderItemID,
		UserID:      r.UserID,
		Reason:      r.Reason,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toReturnResponses(returns []*entity.Return) []dto.ReturnResponse {
	out := make([]dto.ReturnResponse, 0, len(returns))
	for _, r := range returns {
		out = append(out, *toReturnResponse(r))
	}
	return out
}
