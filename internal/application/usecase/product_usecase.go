package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/domain"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
	"github.com/threadline-shop/threadline-api/pkg/textutil"
)

// ProductUseCase covers catalog product CRUD and search.
type ProductUseCase struct {
	repo         repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase builds the product use case.
func NewProductUseCase(repo repository.ProductRepository, brandRepo repository.BrandRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, brandRepo: brandRepo, categoryRepo: categoryRepo}
}

// Create adds a product to the catalog. The brand and category must
// exist; a rating starts at zero and is recomputed from reviews.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || len(in.Sizes) == 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountedPrice != nil && (in.DiscountedPrice.IsNegative() || in.DiscountedPrice.GreaterThan(in.Price)) {
		return nil, domain.ErrInvalidInput
	}
	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if brand == nil || category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		BrandID:         in.BrandID,
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Gender:          in.Gender,
		SizesJSON:       mustJSON(in.Sizes),
		ImageURLsJSON:   mustJSON(in.ImageURLs),
		Featured:        in.Featured,
		IsNew:           in.IsNew,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID returns a product, or ErrNotFound.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List pages the catalog. The search term is diacritic-folded so
// "bleu marine" style queries match accented names.
func (uc *ProductUseCase) List(q string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	q = textutil.NormalizeQuery(q)
	products, err := uc.repo.List(q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update replaces the editable fields of a product. Rating fields are
// never written here; reviews own them.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || len(in.Sizes) == 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.BrandID = in.BrandID
	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.DiscountedPrice = in.DiscountedPrice
	product.Gender = in.Gender
	product.SizesJSON = mustJSON(in.Sizes)
	product.ImageURLsJSON = mustJSON(in.ImageURLs)
	product.Featured = in.Featured
	product.IsNew = in.IsNew
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete removes a product, or ErrNotFound when it never existed.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:              p.ID,
		BrandID:         p.BrandID,
		CategoryID:      p.CategoryID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DiscountedPrice: p.DiscountedPrice,
		Gender:          p.Gender,
		Sizes:           fromJSONList(p.SizesJSON),
		ImageURLs:       fromJSONList(p.ImageURLsJSON),
		AverageRating:   p.AverageRating,
		RatingCount:     p.RatingCount,
		Featured:        p.Featured,
		IsNew:           p.IsNew,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// mustJSON encodes a string slice to the JSON text column format.
// Marshalling []string cannot fail.
func mustJSON(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

func fromJSONList(s string) []string {
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}
