package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(userID(c))
	if err != nil {
		applog.Error(c, "wishlist.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch wishlist")
	}
	return c.JSON(fiber.Map{"wishlist": items})
}

type wishlistRequest struct {
	ProductID string `json:"productId"`
}

// POST /api/wishlist. Idempotent save.
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var req wishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.ID(req.ProductID); !ok {
		return jsonError(c, fiber.StatusBadRequest, "productId is required")
	}
	if err := h.Wish.Save(userID(c), req.ProductID); err != nil {
		applog.Error(c, "wishlist.save.fail", err, map[string]any{"product": req.ProductID})
		return jsonError(c, fiber.StatusInternalServerError, "failed to save item")
	}
	return jsonMessage(c, "Item added to wishlist")
}

// DELETE /api/wishlist?productId=...
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "productId is required")
	}
	if err := h.Wish.Unsave(userID(c), id); err != nil {
		applog.Error(c, "wishlist.unsave.fail", err, map[string]any{"product": id})
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove item")
	}
	return jsonMessage(c, "Item removed from wishlist")
}
