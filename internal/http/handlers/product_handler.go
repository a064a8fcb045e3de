package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	sortBy, sortOrder := validate.Sort(c.Query("sortBy"), c.Query("sortOrder"))

	category := c.Query("category")
	if category != "" {
		if _, ok := validate.Slug(category); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "category"})
			return jsonError(c, fiber.StatusBadRequest, "invalid category")
		}
	}

	params := services.ListParams{
		Page:      validate.Page(c.Query("page")),
		Limit:     validate.Limit(c.Query("limit")),
		Category:  category,
		Search:    validate.Search(c.Query("search")),
		MinPrice:  validate.Price(c.Query("minPrice")),
		MaxPrice:  validate.Price(c.Query("maxPrice")),
		SortBy:    sortBy,
		SortOrder: sortOrder,
	}

	page, err := h.Catalog.ListProducts(c.Context(), params)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch products")
	}
	return c.JSON(page)
}

// GET /api/products/:slug
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product slug")
	}
	p, err := h.Catalog.GetProduct(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jsonError(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "products.detail.fail", err, map[string]any{"slug": slug})
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch product")
	}
	return c.JSON(fiber.Map{"product": p})
}
