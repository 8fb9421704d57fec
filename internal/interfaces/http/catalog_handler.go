package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
)

// CatalogHandler handles brands, categories and collections.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.uc.ListBrands()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brands)
}

func (h *CatalogHandler) GetBrand(c *fiber.Ctx) error {
	brand, err := h.uc.GetBrand(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(brand)
}

func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var in dto.CreateBrandRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	brand, err := h.uc.CreateBrand(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.uc.ListCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	category, err := h.uc.GetCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	category, err := h.uc.CreateCategory(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CatalogHandler) ListCollections(c *fiber.Ctx) error {
	collections, err := h.uc.ListCollections()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(collections)
}

func (h *CatalogHandler) GetCollection(c *fiber.Ctx) error {
	collection, err := h.uc.GetCollection(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(collection)
}

func (h *CatalogHandler) CreateCollection(c *fiber.Ctx) error {
	var in dto.CreateCollectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	collection, err := h.uc.CreateCollection(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}
