package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// PreferencesUseCase covers per-user browsing preferences and the
// recently-viewed trail.
type PreferencesUseCase struct {
	prefsRepo  repository.PreferencesRepository
	viewedRepo repository.RecentlyViewedRepository
	productRepo repository.ProductRepository
}

// NewPreferencesUseCase builds the preferences use case.
func NewPreferencesUseCase(prefsRepo repository.PreferencesRepository, viewedRepo repository.RecentlyViewedRepository, productRepo repository.ProductRepository) *PreferencesUseCase {
	return &PreferencesUseCase{prefsRepo: prefsRepo, viewedRepo: viewedRepo, productRepo: productRepo}
}

// Get returns the user's stored preferences; an empty response when the
// user never saved any.
func (uc *PreferencesUseCase) Get(userID string) (*dto.PreferencesResponse, error) {
	prefs, err := uc.prefsRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		return &dto.PreferencesResponse{}, nil
	}
	return &dto.PreferencesResponse{
		PriceRangeMin: prefs.PriceRangeMin,
		PriceRangeMax: prefs.PriceRangeMax,
		UpdatedAt:     prefs.UpdatedAt,
	}, nil
}

// Upsert stores the preferences, replacing any previous values.
func (uc *PreferencesUseCase) Upsert(userID string, in dto.PreferencesRequest) (*dto.PreferencesResponse, error) {
	if in.PriceRangeMin != nil && in.PriceRangeMax != nil && *in.PriceRangeMin > *in.PriceRangeMax {
		return nil, domain.ErrInvalidInput
	}
	prefs := &entity.UserPreferences{
		ID:            uuid.New().String(),
		UserID:        userID,
		PriceRangeMin: in.PriceRangeMin,
		PriceRangeMax: in.PriceRangeMax,
		UpdatedAt:     time.Now(),
	}
	if err := uc.prefsRepo.Upsert(prefs); err != nil {
		return nil, err
	}
	return &dto.PreferencesResponse{
		PriceRangeMin: prefs.PriceRangeMin,
		PriceRangeMax: prefs.PriceRangeMax,
		UpdatedAt:     prefs.UpdatedAt,
	}, nil
}

// RecordView appends a product to the user's recently-viewed trail.
// Unknown products are rejected so the trail never references ghosts.
func (uc *PreferencesUseCase) RecordView(userID, productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.viewedRepo.Add(&entity.RecentlyViewed{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		ViewedAt:  time.Now(),
	})
}

// RecentlyViewed lists the user's latest product views, newest first.
func (uc *PreferencesUseCase) RecentlyViewed(userID string, limit int) ([]dto.RecentlyViewedResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	views, err := uc.viewedRepo.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecentlyViewedResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.RecentlyViewedResponse{ProductID: v.ProductID, ViewedAt: v.ViewedAt})
	}
	return out, nil
}
