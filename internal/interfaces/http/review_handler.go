package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
)

// ReviewHandler handles product reviews.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler builds the handler.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// ListByProduct pages the reviews of one product (public).
func (h *ReviewHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	reviews, err := h.uc.ListByProduct(c.Params("id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// List pages every review (admin moderation).
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	reviews, err := h.uc.List(page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reviews)
}

// Create posts a review on a product.
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	review, err := h.uc.Create(c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// Update edits a review (owner or admin).
func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	review, err := h.uc.Update(c.Params("id"), GetUserID(c), isAdmin(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// Delete removes a review (owner or admin).
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id"), GetUserID(c), isAdmin(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
