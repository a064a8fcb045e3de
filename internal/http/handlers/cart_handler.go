package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(userID(c))
	if err != nil {
		applog.Error(c, "cart.view.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch cart")
	}
	return c.JSON(cv)
}

type addCartRequest struct {
	ProductID        string  `json:"productId"`
	ProductVariantID *string `json:"productVariantId"`
	Quantity         int     `json:"quantity"`
}

// POST /api/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req addCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.ID(req.ProductID); !ok || req.Quantity < 1 {
		return jsonError(c, fiber.StatusBadRequest, "productId and a positive quantity are required")
	}
	if req.ProductVariantID != nil {
		if _, ok := validate.ID(*req.ProductVariantID); !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid productVariantId")
		}
	}

	err := h.Cart.Add(userID(c), req.ProductID, req.ProductVariantID, req.Quantity)
	switch {
	case err == nil:
		applog.Info(c, "cart.add", map[string]any{"product": req.ProductID, "qty": req.Quantity})
		return jsonMessage(c, "Item added to cart")
	case errors.Is(err, services.ErrQuantity),
		errors.Is(err, services.ErrProductUnknown),
		errors.Is(err, services.ErrOutOfStock):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": req.ProductID})
		return jsonError(c, fiber.StatusInternalServerError, "failed to add item to cart")
	}
}

type updateCartRequest struct {
	CartItemID string `json:"cartItemId"`
	Quantity   *int   `json:"quantity"`
}

// PUT /api/cart. Quantity <= 0 removes the row.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	var req updateCartRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.ID(req.CartItemID); !ok || req.Quantity == nil {
		return jsonError(c, fiber.StatusBadRequest, "cartItemId and quantity are required")
	}

	if err := h.Cart.UpdateQuantity(userID(c), req.CartItemID, *req.Quantity); err != nil {
		applog.Error(c, "cart.update.fail", err, map[string]any{"cart_item": req.CartItemID})
		return jsonError(c, fiber.StatusInternalServerError, "failed to update cart")
	}
	return jsonMessage(c, "Cart updated")
}

// DELETE /api/cart?cartItemId=...
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("cartItemId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "cartItemId is required")
	}
	if err := h.Cart.Remove(userID(c), id); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"cart_item": id})
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove item from cart")
	}
	return jsonMessage(c, "Item removed from cart")
}
