package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/logger"
)

// ReviewUseCase covers product reviews. Every write recomputes the
// product's denormalized rating aggregate from the review rows, so the
// aggregate converges even after concurrent writes.
type ReviewUseCase struct {
	repo        repository.ReviewRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewReviewUseCase builds the review use case.
func NewReviewUseCase(repo repository.ReviewRepository, productRepo repository.ProductRepository, log *logger.Logger) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, productRepo: productRepo, log: log}
}

// Create posts a review on a product and refreshes the rating aggregate.
func (uc *ReviewUseCase) Create(productID, userID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	review := &entity.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(review); err != nil {
		return nil, err
	}
	uc.refreshRating(productID)
	return toReviewResponse(review), nil
}

// ListByProduct pages the reviews of a product, newest first.
func (uc *ReviewUseCase) ListByProduct(productID string, page dto.PageRequest) ([]dto.ReviewResponse, error) {
	page.DefaultPage()
	reviews, err := uc.repo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, *toReviewResponse(r))
	}
	return out, nil
}

// List pages all reviews (admin moderation view).
func (uc *ReviewUseCase) List(page dto.PageRequest) ([]dto.ReviewResponse, error) {
	page.DefaultPage()
	reviews, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, *toReviewResponse(r))
	}
	return out, nil
}

// Update edits the caller's review and refreshes the rating aggregate.
// Admins may edit anyone's.
func (uc *ReviewUseCase) Update(id, userID string, isAdmin bool, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	review, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, domain.ErrNotFound
	}
	if !isAdmin && review.UserID != userID {
		return nil, domain.ErrForbidden
	}
	review.Rating = in.Rating
	review.Comment = in.Comment
	if err := uc.repo.Update(review); err != nil {
		return nil, err
	}
	uc.refreshRating(review.ProductID)
	return toReviewResponse(review), nil
}

// Delete removes a review (owner or admin) and refreshes the aggregate.
func (uc *ReviewUseCase) Delete(id, userID string, isAdmin bool) error {
	review, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if review == nil {
		return domain.ErrNotFound
	}
	if !isAdmin && review.UserID != userID {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.refreshRating(review.ProductID)
	return nil
}

// refreshRating recomputes the denormalized aggregate from the review
// rows. A failure here leaves the product listing stale, not wrong in
// any durable way, so it is logged and swallowed.
func (uc *ReviewUseCase) refreshRating(productID string) {
	avg, count, err := uc.repo.RatingByProduct(productID)
	if err == nil {
		err = uc.productRepo.UpdateRating(productID, avg, count)
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("product_id", productID).Msg("rating aggregate refresh failed")
	}
}

func toReviewResponse(r *entity.Review) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
