package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// GET /api/products/:slug/reviews
func (h *ReviewHandler) List(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product slug")
	}
	reviews, err := h.Reviews.ListForProduct(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "reviews.list.fail", err, map[string]any{"slug": slug})
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch reviews")
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Title   string `json:"title"`
	Comment string `json:"comment"`
}

// POST /api/products/:slug/reviews
func (h *ReviewHandler) Submit(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product slug")
	}
	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	err := h.Reviews.Submit(slug, userID(c), req.Rating, req.Title, req.Comment)
	switch {
	case err == nil:
		applog.Audit(c, "reviews.submit", map[string]any{"slug": slug, "rating": req.Rating})
		return jsonMessage(c, "Review saved")
	case errors.Is(err, services.ErrRating):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, sql.ErrNoRows):
		return jsonError(c, fiber.StatusNotFound, "product not found")
	default:
		applog.Error(c, "reviews.submit.fail", err, map[string]any{"slug": slug})
		return jsonError(c, fiber.StatusInternalServerError, "failed to save review")
	}
}
