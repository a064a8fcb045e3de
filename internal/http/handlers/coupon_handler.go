package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type CouponHandler struct {
	Coupons *services.CouponService
}

type validateCouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// POST /api/coupons/validate
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req validateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	code, ok := validate.CouponCode(req.Code)
	if !ok || req.Subtotal < 0 {
		return jsonError(c, fiber.StatusBadRequest, "code and a non-negative subtotal are required")
	}

	d, err := h.Coupons.Validate(code, req.Subtotal, time.Now().UTC())
	switch {
	case err == nil:
		return c.JSON(fiber.Map{"discount": d.Amount, "coupon": d.Coupon})
	case errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponUsedUp),
		errors.Is(err, services.ErrCouponMinOrder):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		applog.Error(c, "coupons.validate.fail", err, map[string]any{"code": code})
		return jsonError(c, fiber.StatusInternalServerError, "failed to validate coupon")
	}
}
