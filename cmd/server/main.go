package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Iamtheusername112/eCommerce/internal/cache"
	"github.com/Iamtheusername112/eCommerce/internal/config"
	"github.com/Iamtheusername112/eCommerce/internal/http/handlers"
	applog "github.com/Iamtheusername112/eCommerce/internal/log"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rc := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("[warn] redis unreachable, continuing without cache: %v", err)
			rc = nil
		}
		cancel()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			applog.Error(c, "server.error", err, nil)
			// Never leak internals to the client
			return c.Status(code).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	deps := handlers.NewDeps(db, cfg, rc)
	auth := deps.Auth

	api := app.Group("/api")

	// Public catalog
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)
	api.Get("/products/:slug/reviews", deps.ReviewHandler.List)
	api.Get("/categories", deps.CategoryHandler.List)

	// Coupon validation needs a signed-in shopper
	api.Post("/coupons/validate", auth.RequireUser(), deps.CouponHandler.Validate)

	// Cart
	api.Get("/cart", auth.RequireUser(), deps.CartHandler.View)
	api.Post("/cart", auth.RequireUser(), deps.CartHandler.Add)
	api.Put("/cart", auth.RequireUser(), deps.CartHandler.Update)
	api.Delete("/cart", auth.RequireUser(), deps.CartHandler.Remove)

	// Wishlist
	api.Get("/wishlist", auth.RequireUser(), deps.WishlistHandler.List)
	api.Post("/wishlist", auth.RequireUser(), deps.WishlistHandler.Save)
	api.Delete("/wishlist", auth.RequireUser(), deps.WishlistHandler.Unsave)

	// Reviews
	api.Post("/products/:slug/reviews", auth.RequireUser(), deps.ReviewHandler.Submit)

	// Orders
	api.Post("/checkout", auth.RequireUser(), deps.OrderHandler.Checkout)
	api.Get("/orders", auth.RequireUser(), deps.OrderHandler.History)
	api.Get("/orders/:id", auth.RequireUser(), deps.OrderHandler.Detail)

	// Admin
	admin := api.Group("/admin", auth.RequireAdmin())
	admin.Get("/dashboard", deps.AdminHandler.Dashboard)
	admin.Get("/products/low-stock", deps.AdminHandler.LowStock)
	admin.Post("/products", deps.AdminHandler.CreateProduct)
	admin.Put("/products/:id", deps.AdminHandler.UpdateProduct)
	admin.Post("/products/:id/deactivate", deps.AdminHandler.DeactivateProduct)
	admin.Post("/categories", deps.AdminHandler.CreateCategory)
	admin.Put("/categories/:id", deps.AdminHandler.UpdateCategory)
	admin.Get("/orders", deps.AdminHandler.OrdersPage)
	admin.Put("/orders/:id/status", deps.AdminHandler.UpdateOrderStatus)
	admin.Get("/users", deps.AdminHandler.UsersPage)
	admin.Put("/users/:id/role", deps.AdminHandler.UpdateUserRole)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
