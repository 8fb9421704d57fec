package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
)

// ReturnsHandler handles the return workflow.
type ReturnsHandler struct {
	uc *usecase.ReturnsUseCase
}

// NewReturnsHandler builds the handler.
func NewReturnsHandler(uc *usecase.ReturnsUseCase) *ReturnsHandler {
	return &ReturnsHandler{uc: uc}
}

// Create opens a return for one item of the caller's delivered order.
func (h *ReturnsHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ret, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// ListMine returns the caller's return requests.
func (h *ReturnsHandler) ListMine(c *fiber.Ctx) error {
	returns, err := h.uc.ListByUser(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(returns)
}

// ListAll returns every return request (admin).
func (h *ReturnsHandler) ListAll(c *fiber.Ctx) error {
	returns, err := h.uc.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(returns)
}

// Resolve approves or rejects a pending return (admin). Approval
// restocks the returned quantity.
func (h *ReturnsHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ret, err := h.uc.Resolve(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ret)
}
