package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/order"
	"github.com/threadline-shop/threadline-api/internal/domain/entity"
	"github.com/threadline-shop/threadline-api/internal/domain/repository"
)

// OrderHandler handles checkout and order management.
type OrderHandler struct {
	uc *order.UseCase
}

// NewOrderHandler builds the handler.
func NewOrderHandler(uc *order.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create places an order. An Idempotency-Key header makes the create
// safe to retry: the same key always answers with the same order.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	items := make([]order.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, order.LineItem{ProductID: item.ProductID, Size: item.Size, Quantity: item.Quantity})
	}
	created, replayed, err := h.uc.Create(c.Context(), order.CreateInput{
		UserID:         GetUserID(c),
		Email:          in.Email,
		FullName:       in.FullName,
		Address:        in.Address,
		City:           in.City,
		State:          in.State,
		PostalCode:     in.PostalCode,
		Phone:          in.Phone,
		IdempotencyKey: c.Get("Idempotency-Key"),
		Items:          items,
	})
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(toOrderResponse(created, nil))
}

// List pages the caller's orders; admins see all.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	orders, total, err := h.uc.List(c.Context(), GetUserID(c), isAdmin(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *toOrderResponse(o, nil))
	}
	return c.JSON(dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Get returns one order with its items.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	ord, items, err := h.uc.Get(c.Context(), c.Params("id"), GetUserID(c), isAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(ord, items))
}

// Cancel cancels a pending or processing order, restoring its stock.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	ord, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c), isAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(ord, nil))
}

// UpdateStatus moves an order to a new status (admin).
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ord, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(ord, nil))
}

// AddItem appends a line to a pending order (admin).
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	var in dto.OrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.AddItem(c.Context(), c.Params("id"), order.LineItem{
		ProductID: in.ProductID,
		Size:      in.Size,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderItemResponse(item))
}

// RemoveItem deletes a line from a pending order (admin).
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.Context(), c.Params("id"), c.Params("itemID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats aggregates the last ?days= of orders (admin, default 30).
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "30"))
	if err != nil || days <= 0 {
		return badBody(c)
	}
	stats, err := h.uc.Stats(c.Context(), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderStatsResponse(days, stats))
}

func isAdmin(c *fiber.Ctx) bool {
	return GetRole(c) == entity.RoleAdmin
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Email:      o.Email,
		FullName:   o.FullName,
		Address:    o.Address,
		City:       o.City,
		State:      o.State,
		PostalCode: o.PostalCode,
		Phone:      o.Phone,
		Status:     o.Status,
		Total:      o.Total,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, *toOrderItemResponse(item))
	}
	return resp
}

func toOrderItemResponse(item *entity.OrderItem) *dto.OrderItemResponse {
	return &dto.OrderItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
}

func toOrderStatsResponse(days int, stats *repository.OrderStats) *dto.OrderStatsResponse {
	return &dto.OrderStatsResponse{
		Days:              days,
		Count:             stats.Count,
		TotalRevenue:      stats.TotalRevenue,
		AverageOrderValue: stats.AverageOrderValue,
		ByStatus:          stats.ByStatus,
	}
}
