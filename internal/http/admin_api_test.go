package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminProductLifecycle(t *testing.T) {
	app, _ := newTestApp(t)
	admin := bearer(t, "u-root", "admin")

	resp, err := app.Test(authedJSON(t, "POST", "/api/admin/products",
		`{"name":"Water Bottle","slug":"water-bottle","price":14.50,"stockQuantity":80,"categoryId":"cat-home"}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: want 200, got %d", resp.StatusCode)
	}
	var created struct {
		Product struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		} `json:"product"`
	}
	decodeBody(t, resp, &created)
	if created.Product.ID == "" {
		t.Fatal("missing product id")
	}

	// New product appears in the public listing.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/products/water-bottle", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("public detail: want 200, got %d", resp.StatusCode)
	}

	// Deactivation hides it without deleting.
	resp, err = app.Test(authedJSON(t, "POST", "/api/admin/products/"+created.Product.ID+"/deactivate", "", admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivate: want 200, got %d", resp.StatusCode)
	}
	resp, err = app.Test(httptest.NewRequest("GET", "/api/products/water-bottle", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("hidden product: want 404, got %d", resp.StatusCode)
	}

	// Missing name is rejected.
	resp, err = app.Test(authedJSON(t, "POST", "/api/admin/products",
		`{"slug":"nameless","price":5,"stockQuantity":1}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create: want 400, got %d", resp.StatusCode)
	}
}

func TestAdminOrderStatus(t *testing.T) {
	app, _ := newTestApp(t)
	admin := bearer(t, "u-root", "admin")
	alice := bearer(t, "u-alice", "customer")

	if _, err := app.Test(authedJSON(t, "POST", "/api/cart", `{"productId":"prod-buds","quantity":1}`, alice)); err != nil {
		t.Fatal(err)
	}
	resp, err := app.Test(authedJSON(t, "POST", "/api/checkout", `{"shippingAddress":"1 Main St"}`, alice))
	if err != nil {
		t.Fatal(err)
	}
	var placed struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decodeBody(t, resp, &placed)

	resp, err = app.Test(authedJSON(t, "PUT", "/api/admin/orders/"+placed.Order.ID+"/status",
		`{"status":"shipped"}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status update: want 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(authedJSON(t, "PUT", "/api/admin/orders/"+placed.Order.ID+"/status",
		`{"status":"teleported"}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus status: want 400, got %d", resp.StatusCode)
	}

	// The owner sees the new status.
	resp, err = app.Test(authedJSON(t, "GET", "/api/orders/"+placed.Order.ID, "", alice))
	if err != nil {
		t.Fatal(err)
	}
	var detail struct {
		Order struct {
			Status string `json:"status"`
		} `json:"order"`
	}
	decodeBody(t, resp, &detail)
	if detail.Order.Status != "shipped" {
		t.Fatalf("want shipped, got %q", detail.Order.Status)
	}
}

func TestAdminUserRole(t *testing.T) {
	app, _ := newTestApp(t)
	admin := bearer(t, "u-root", "admin")
	alice := bearer(t, "u-alice", "customer")

	// Alice shows up after her first request.
	if _, err := app.Test(authedJSON(t, "GET", "/api/cart", "", alice)); err != nil {
		t.Fatal(err)
	}

	resp, err := app.Test(authedJSON(t, "PUT", "/api/admin/users/u-alice/role", `{"role":"admin"}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promote: want 200, got %d", resp.StatusCode)
	}

	// Alice can now reach the admin surface.
	resp, err = app.Test(authedJSON(t, "GET", "/api/admin/dashboard", "", alice))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promoted user: want 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(authedJSON(t, "PUT", "/api/admin/users/u-alice/role", `{"role":"emperor"}`, admin))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bogus role: want 400, got %d", resp.StatusCode)
	}
}

func TestAdminDashboardAndLowStock(t *testing.T) {
	app, _ := newTestApp(t)
	admin := bearer(t, "u-root", "admin")

	resp, err := app.Test(authedJSON(t, "GET", "/api/admin/dashboard", "", admin))
	if err != nil {
		t.Fatal(err)
	}
	var dash struct {
		Stats struct {
			TotalProducts int `json:"totalProducts"`
			LowStockCount int `json:"lowStockCount"`
		} `json:"stats"`
	}
	decodeBody(t, resp, &dash)
	if dash.Stats.TotalProducts != 4 || dash.Stats.LowStockCount != 1 {
		t.Fatalf("bad dashboard stats: %+v", dash.Stats)
	}

	resp, err = app.Test(authedJSON(t, "GET", "/api/admin/products/low-stock", "", admin))
	if err != nil {
		t.Fatal(err)
	}
	var low struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	decodeBody(t, resp, &low)
	if len(low.Products) != 1 || low.Products[0].ID != "prod-lamp" {
		t.Fatalf("want prod-lamp only, got %+v", low.Products)
	}
}
