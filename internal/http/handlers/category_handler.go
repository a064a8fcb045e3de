package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/categories?includeProductCount=true|false
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	if c.Query("includeProductCount") == "true" {
		cats, err := h.Catalog.ListCategoriesWithCount()
		if err != nil {
			applog.Error(c, "categories.list.fail", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "failed to fetch categories")
		}
		return c.JSON(fiber.Map{"categories": cats})
	}

	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch categories")
	}
	return c.JSON(fiber.Map{"categories": cats})
}
