package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// CatalogUseCase covers the small reference collections the storefront
// filters on: brands, categories and curated collections.
type CatalogUseCase struct {
	brandRepo      repository.BrandRepository
	categoryRepo   repository.CategoryRepository
	collectionRepo repository.CollectionRepository
}

// NewCatalogUseCase builds the catalog use case.
func NewCatalogUseCase(brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository, collectionRepo repository.CollectionRepository) *CatalogUseCase {
	return &CatalogUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo, collectionRepo: collectionRepo}
}

// CreateBrand adds a brand.
func (uc *CatalogUseCase) CreateBrand(in dto.CreateBrandRequest) (*dto.BrandResponse, error) {
	if in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	brand := &entity.Brand{
		ID:          uuid.New().String(),
		Label:       in.Label,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	return toBrandResponse(brand), nil
}

// GetBrand returns one brand, or ErrNotFound.
func (uc *CatalogUseCase) GetBrand(id string) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrNotFound
	}
	return toBrandResponse(brand), nil
}

// ListBrands returns every brand.
func (uc *CatalogUseCase) ListBrands() ([]dto.BrandResponse, error) {
	brands, err := uc.brandRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, *toBrandResponse(b))
	}
	return out, nil
}

// CreateCategory adds a category.
func (uc *CatalogUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Label:       in.Label,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetCategory returns one category, or ErrNotFound.
func (uc *CatalogUseCase) GetCategory(id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// ListCategories returns every category.
func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// CreateCollection adds a curated collection.
func (uc *CatalogUseCase) CreateCollection(in dto.CreateCollectionRequest) (*dto.CollectionResponse, error) {
	if in.Label == "" {
		return nil, domain.ErrInvalidInput
	}
	collection := &entity.Collection{
		ID:          uuid.New().String(),
		Label:       in.Label,
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.collectionRepo.Create(collection); err != nil {
		return nil, err
	}
	return toCollectionResponse(collection), nil
}

// GetCollection returns one collection, or ErrNotFound.
func (uc *CatalogUseCase) GetCollection(id string) (*dto.CollectionResponse, error) {
	collection, err := uc.collectionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, domain.ErrNotFound
	}
	return toCollectionResponse(collection), nil
}

// ListCollections returns every collection.
func (uc *CatalogUseCase) ListCollections() ([]dto.CollectionResponse, error) {
	collections, err := uc.collectionRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CollectionResponse, 0, len(collections))
	for _, c := range collections {
		out = append(out, *toCollectionResponse(c))
	}
	return out, nil
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:          b.ID,
		Label:       b.Label,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Active:      b.Active,
		CreatedAt:   b.CreatedAt,
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Label:       c.Label,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}

func toCollectionResponse(c *entity.Collection) *dto.CollectionResponse {
	return &dto.CollectionResponse{
		ID:          c.ID,
		Label:       c.Label,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
