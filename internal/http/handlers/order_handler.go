package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
	CouponCode      string `json:"couponCode"`
}

// POST /api/checkout
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.CouponCode != "" {
		code, ok := validate.CouponCode(req.CouponCode)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid coupon code")
		}
		req.CouponCode = code
	}

	order, err := h.Orders.Checkout(userID(c), req.ShippingAddress, req.CouponCode)
	switch {
	case err == nil:
		applog.Audit(c, "checkout.placed", map[string]any{"order": order.OrderNumber, "total": order.TotalAmount})
		return c.JSON(fiber.Map{"order": order})
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponUsedUp),
		errors.Is(err, services.ErrCouponMinOrder):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repos.ErrInsufficientStock):
		return jsonError(c, fiber.StatusConflict, err.Error())
	default:
		applog.Error(c, "checkout.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "checkout failed")
	}
}

// GET /api/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.ListForUser(userID(c))
	if err != nil {
		applog.Error(c, "orders.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /api/orders/:id. Owner-filtered inside the query predicate, so someone
// else's order id reads as not found.
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid order id")
	}
	order, items, err := h.Orders.Get(id, userID(c))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(c, fiber.StatusNotFound, "order not found")
		}
		applog.Error(c, "orders.detail.fail", err, map[string]any{"order": id})
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch order")
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}
