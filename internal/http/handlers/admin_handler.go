package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Iamtheusername112/eCommerce/internal/cache"
	"github.com/Iamtheusername112/eCommerce/internal/domain"
	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

type AdminHandler struct {
	Admin  *services.AdminService
	Prods  *repos.ProductRepo
	Cats   *repos.CategoryRepo
	Orders *repos.OrderRepo
	Users  *repos.UserRepo
	Cache  *cache.Cache
}

// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.Admin.Dashboard(c.Context())
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(fiber.Map{"stats": stats})
}

// GET /api/admin/products/low-stock
func (h *AdminHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.Admin.LowStock()
	if err != nil {
		applog.Error(c, "admin.lowstock.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load low-stock report")
	}
	return c.JSON(fiber.Map{"products": rows})
}

type productRequest struct {
	CategoryID        *string  `json:"categoryId"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Description       string   `json:"description"`
	ShortDescription  string   `json:"shortDescription"`
	Price             float64  `json:"price"`
	ComparePrice      *float64 `json:"comparePrice"`
	SKU               string   `json:"sku"`
	IsFeatured        bool     `json:"isFeatured"`
	IsOnSale          bool     `json:"isOnSale"`
	SalePercentage    *int     `json:"salePercentage"`
	StockQuantity     int      `json:"stockQuantity"`
	LowStockThreshold int      `json:"lowStockThreshold"`
}

func (r productRequest) toDomain(id string) domain.Product {
	threshold := r.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}
	return domain.Product{
		ID:                id,
		CategoryID:        r.CategoryID,
		Name:              r.Name,
		Slug:              r.Slug,
		Description:       r.Description,
		ShortDescription:  r.ShortDescription,
		Price:             r.Price,
		ComparePrice:      r.ComparePrice,
		SKU:               r.SKU,
		IsActive:          true,
		IsFeatured:        r.IsFeatured,
		IsOnSale:          r.IsOnSale,
		SalePercentage:    r.SalePercentage,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: threshold,
		TagsJSON:          "[]",
	}
}

func (r productRequest) valid() bool {
	if r.Name == "" || r.Price < 0 || r.StockQuantity < 0 {
		return false
	}
	_, ok := validate.Slug(r.Slug)
	return ok
}

// POST /api/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !req.valid() {
		return jsonError(c, fiber.StatusBadRequest, "name, slug and non-negative price/stock are required")
	}
	p := req.toDomain(uuid.NewString())
	if err := h.Prods.Create(p); err != nil {
		applog.Error(c, "admin.products.create.fail", err, map[string]any{"slug": p.Slug})
		return jsonError(c, fiber.StatusInternalServerError, "failed to create product")
	}
	h.invalidateDashboard(c.Context())
	applog.Audit(c, "admin.products.create", map[string]any{"product": p.ID, "slug": p.Slug})
	return c.JSON(fiber.Map{"product": p})
}

// PUT /api/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !req.valid() {
		return jsonError(c, fiber.StatusBadRequest, "name, slug and non-negative price/stock are required")
	}
	if err := h.Prods.Update(req.toDomain(id)); err != nil {
		applog.Error(c, "admin.products.update.fail", err, map[string]any{"product": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update product")
	}
	h.invalidateDashboard(c.Context())
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return jsonMessage(c, "Product updated")
}

// POST /api/admin/products/:id/deactivate. Products are never hard-deleted.
func (h *AdminHandler) DeactivateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Prods.SetActive(id, false); err != nil {
		applog.Error(c, "admin.products.deactivate.fail", err, map[string]any{"product": id})
		return jsonError(c, fiber.StatusInternalServerError, "could not deactivate product")
	}
	h.invalidateDashboard(c.Context())
	applog.Audit(c, "admin.products.deactivate", map[string]any{"product": id})
	return jsonMessage(c, "Product deactivated")
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive"`
}

// POST /api/admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.Slug(req.Slug); !ok || req.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name and slug are required")
	}
	cat := domain.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := h.Cats.Create(cat); err != nil {
		applog.Error(c, "admin.categories.create.fail", err, map[string]any{"slug": cat.Slug})
		return jsonError(c, fiber.StatusInternalServerError, "failed to create category")
	}
	applog.Audit(c, "admin.categories.create", map[string]any{"category": cat.ID})
	return c.JSON(fiber.Map{"category": cat})
}

// PUT /api/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid category id")
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.Slug(req.Slug); !ok || req.Name == "" {
		return jsonError(c, fiber.StatusBadRequest, "name and slug are required")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	cat := domain.Category{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	}
	if err := h.Cats.Update(cat); err != nil {
		applog.Error(c, "admin.categories.update.fail", err, map[string]any{"category": id})
		return jsonError(c, fiber.StatusBadRequest, "could not update category")
	}
	applog.Audit(c, "admin.categories.update", map[string]any{"category": id})
	return jsonMessage(c, "Category updated")
}

// GET /api/admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid order id")
	}
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.OrderStatus(req.Status) {
		return jsonError(c, fiber.StatusBadRequest, "invalid status")
	}
	if err := h.Orders.UpdateStatus(id, req.Status); err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order": id})
		return jsonError(c, fiber.StatusInternalServerError, "could not update status")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order": id, "status": req.Status})
	return jsonMessage(c, "Order status updated")
}

// GET /api/admin/users
func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users, err := h.Users.List(100)
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "failed to load users")
	}
	return c.JSON(fiber.Map{"users": users})
}

type roleRequest struct {
	Role string `json:"role"`
}

// PUT /api/admin/users/:id/role. The only path that mutates a role.
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req roleRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !validate.Role(req.Role) {
		return jsonError(c, fiber.StatusBadRequest, "invalid role")
	}
	if err := h.Users.UpdateRole(id, req.Role); err != nil {
		applog.Error(c, "admin.users.role.fail", err, map[string]any{"user": id})
		return jsonError(c, fiber.StatusInternalServerError, "could not update role")
	}
	applog.Audit(c, "admin.users.role", map[string]any{"user": id, "role": req.Role})
	return jsonMessage(c, "User role updated")
}

func (h *AdminHandler) invalidateDashboard(ctx context.Context) {
	h.Cache.Invalidate(ctx, "admin:dashboard")
}
