package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/config"
	"github.com/Iamtheusername112/eCommerce/internal/http/handlers"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

const testSecret = "test-secret"

// newTestApp builds the API over a seeded in-memory store, wired the same way
// main does minus the rate limiter.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	cfg := config.Config{JWTSecret: testSecret}
	deps := handlers.NewDeps(db, cfg, nil)
	auth := deps.Auth

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "something went wrong"})
		},
	})

	api := app.Group("/api")
	api.Get("/products", deps.ProductHandler.List)
	api.Get("/products/:slug", deps.ProductHandler.Detail)
	api.Get("/products/:slug/reviews", deps.ReviewHandler.List)
	api.Get("/categories", deps.CategoryHandler.List)
	api.Post("/coupons/validate", auth.RequireUser(), deps.CouponHandler.Validate)

	api.Get("/cart", auth.RequireUser(), deps.CartHandler.View)
	api.Post("/cart", auth.RequireUser(), deps.CartHandler.Add)
	api.Put("/cart", auth.RequireUser(), deps.CartHandler.Update)
	api.Delete("/cart", auth.RequireUser(), deps.CartHandler.Remove)

	api.Post("/products/:slug/reviews", auth.RequireUser(), deps.ReviewHandler.Submit)
	api.Post("/checkout", auth.RequireUser(), deps.OrderHandler.Checkout)
	api.Get("/orders", auth.RequireUser(), deps.OrderHandler.History)
	api.Get("/orders/:id", auth.RequireUser(), deps.OrderHandler.Detail)

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

	return app, db
}

// bearer signs a short-lived HS256 token the way the identity provider would.
func bearer(t *testing.T, sub, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"name":  "Test User",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + tok
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
}
