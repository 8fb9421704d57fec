package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/threadline-shop/threadline-api/internal/application/dto"
	"github.com/threadline-shop/threadline-api/internal/application/usecase"
)

// UserHandler handles the signed-in user's wishlist, preferences and
// recently-viewed trail.
type UserHandler struct {
	wishlistUC *usecase.WishlistUseCase
	prefsUC    *usecase.PreferencesUseCase
}

// NewUserHandler builds the handler.
func NewUserHandler(wishlistUC *usecase.WishlistUseCase, prefsUC *usecase.PreferencesUseCase) *UserHandler {
	return &UserHandler{wishlistUC: wishlistUC, prefsUC: prefsUC}
}

// ListWishlist pages the caller's saved products.
func (h *UserHandler) ListWishlist(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	items, pageMeta, err := h.wishlistUC.List(GetUserID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "page": pageMeta})
}

// AddToWishlist saves a product for the caller.
func (h *UserHandler) AddToWishlist(c *fiber.Ctx) error {
	item, err := h.wishlistUC.Add(GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// RemoveFromWishlist unsaves a product.
func (h *UserHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	if err := h.wishlistUC.Remove(GetUserID(c), c.Params("productID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ContainsWishlist reports whether one product is on the caller's
// wishlist.
func (h *UserHandler) ContainsWishlist(c *fiber.Ctx) error {
	present, err := h.wishlistUC.Contains(GetUserID(c), c.Params("productID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"in_wishlist": present})
}

// ClearWishlist empties the caller's wishlist.
func (h *UserHandler) ClearWishlist(c *fiber.Ctx) error {
	if err := h.wishlistUC.Clear(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPreferences returns the caller's stored preferences.
func (h *UserHandler) GetPreferences(c *fiber.Ctx) error {
	prefs, err := h.prefsUC.Get(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// PutPreferences upserts the caller's preferences.
func (h *UserHandler) PutPreferences(c *fiber.Ctx) error {
	var in dto.PreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	prefs, err := h.prefsUC.Upsert(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(prefs)
}

// RecordView registers an explicit product view on the caller's trail.
func (h *UserHandler) RecordView(c *fiber.Ctx) error {
	if err := h.prefsUC.RecordView(GetUserID(c), c.Params("productID")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecentlyViewed lists the caller's latest product views.
func (h *UserHandler) RecentlyViewed(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		return badBody(c)
	}
	views, err := h.prefsUC.RecentlyViewed(GetUserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}
