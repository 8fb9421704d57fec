package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// WishlistUseCase covers the per-user saved products list.
type WishlistUseCase struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

// NewWishlistUseCase builds the wishlist use case.
func NewWishlistUseCase(repo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistUseCase {
	return &WishlistUseCase{repo: repo, productRepo: productRepo}
}

// Add saves a product for the user. Re-adding is a no-op, not an error.
func (uc *WishlistUseCase) Add(userID, productID string) (*dto.WishlistItemResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	present, err := uc.repo.Contains(userID, productID)
	if err != nil {
		return nil, err
	}
	item := &entity.WishlistItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	}
	if !present {
		if err := uc.repo.Add(item); err != nil {
			return nil, err
		}
	}
	return toWishlistItemResponse(item), nil
}

// Remove unsaves a product; removing an absent entry is ErrNotFound.
func (uc *WishlistUseCase) Remove(userID, productID string) error {
	present, err := uc.repo.Contains(userID, productID)
	if err != nil {
		return err
	}
	if !present {
		return domain.ErrNotFound
	}
	return uc.repo.Remove(userID, productID)
}

// List pages the user's saved products.
func (uc *WishlistUseCase) List(userID string, page dto.PageRequest) ([]dto.WishlistItemResponse, *dto.PageResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, nil, err
	}
	total, err := uc.repo.CountByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	out := make([]dto.WishlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toWishlistItemResponse(item))
	}
	return out, &dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total}, nil
}

// Contains reports whether the user has saved the product.
func (uc *WishlistUseCase) Contains(userID, productID string) (bool, error) {
	return uc.repo.Contains(userID, productID)
}

// Clear empties the user's wishlist.
func (uc *WishlistUseCase) Clear(userID string) error {
	return uc.repo.Clear(userID)
}

func toWishlistItemResponse(item *entity.WishlistItem) *dto.WishlistItemResponse {
	return &dto.WishlistItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		AddedAt:   item.AddedAt,
	}
}
