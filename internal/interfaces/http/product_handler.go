package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
)

// ProductHandler handles the public catalog endpoints and the admin
// product CRUD.
type ProductHandler struct {
	uc      *usecase.ProductUseCase
	prefsUC *usecase.PreferencesUseCase
}

// NewProductHandler builds the handler.
func NewProductHandler(uc *usecase.ProductUseCase, prefsUC *usecase.PreferencesUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, prefsUC: prefsUC}
}

// List pages the catalog; ?q= searches by name.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID returns one product. Authenticated viewers leave a trace in
// their recently-viewed trail.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if userID := GetUserID(c); userID != "" {
		// A failed trail write never breaks the product view.
		_ = h.prefsUC.RecordView(userID, product.ID)
	}
	return c.JSON(product)
}

// Create adds a product (admin).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update replaces a product's editable fields (admin).
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Delete removes a product (admin).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
