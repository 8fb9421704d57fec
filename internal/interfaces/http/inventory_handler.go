package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/inventory"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// InventoryHandler handles the stock ledger endpoints (admin).
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create opens a stock record for a (product, size) pair.
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.Create(c.Context(), in.ProductID, in.Size, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStockResponse(rec))
}

// GetByProduct lists the per-size records of a product. Public: the
// storefront uses it for size availability.
func (h *InventoryHandler) GetByProduct(c *fiber.Ctx) error {
	records, err := h.uc.GetByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, *toStockResponse(rec))
	}
	return c.JSON(out)
}

// Decrement takes units off a (product, size) pair through the locked
// guarded path.
func (h *InventoryHandler) Decrement(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Decrement(c.Context(), in.ProductID, in.Size, in.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock decremented"})
}

// Increment puts units back on a (product, size) pair.
func (h *InventoryHandler) Increment(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.Increment(c.Context(), in.ProductID, in.Size, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(rec))
}

// Update overwrites the absolute quantity of one record (admin
// corrections, not sales).
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	rec, err := h.uc.Update(c.Context(), c.Params("id"), &in.Quantity, "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponse(rec))
}

// Delete removes a stock record.
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LowStock lists records at or below ?threshold= (default 5).
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	threshold, err := strconv.Atoi(c.Query("threshold", "5"))
	if err != nil || threshold < 0 {
		return badBody(c)
	}
	records, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, *toStockResponse(rec))
	}
	return c.JSON(fiber.Map{"threshold": threshold, "records": out})
}

// Summary returns the inventory analytics overview.
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(summary))
}

func toStockResponse(rec *entity.StockRecord) *dto.StockResponse {
	if rec == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:        rec.ID,
		ProductID: rec.ProductID,
		Size:      rec.Size,
		Quantity:  rec.Quantity,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toSummaryResponse(s *repository.StockSummary) *dto.StockSummaryResponse {
	return &dto.StockSummaryResponse{
		TotalRecords: s.TotalRecords,
		TotalUnits:   s.TotalUnits,
		AverageUnits: s.AverageUnits,
		Highest:      toStockResponse(s.Highest),
		Lowest:       toStockResponse(s.Lowest),
	}
}
