package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
)

func newOrderService(db *sqlx.DB) (*services.CartService, *services.OrderService) {
	cartRepo := repos.NewCartRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	couponSvc := services.NewCouponService(repos.NewCouponRepo(db))

	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo, couponSvc)
	return cartSvc, orderSvc
}

func TestCheckoutFlow(t *testing.T) {
	db := seededDB(t)
	cartSvc, orderSvc := newOrderService(db)

	varL := "var-tee-l"
	if err := cartSvc.Add("u-alice", "prod-tee", &varL, 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add("u-alice", "prod-buds", nil, 1); err != nil {
		t.Fatal(err)
	}

	order, err := orderSvc.Checkout("u-alice", "1 Main St", "")
	if err != nil {
		t.Fatal(err)
	}

	// 2*(24.00+2.00) + 59.90 = 111.90; free shipping over 100; 8% tax.
	if order.Subtotal != 111.90 {
		t.Fatalf("want subtotal 111.90, got %v", order.Subtotal)
	}
	if order.ShippingAmount != 0 {
		t.Fatalf("want free shipping, got %v", order.ShippingAmount)
	}
	if order.TaxAmount != 8.95 {
		t.Fatalf("want tax 8.95, got %v", order.TaxAmount)
	}
	if order.TotalAmount != 120.85 {
		t.Fatalf("want total 120.85, got %v", order.TotalAmount)
	}
	if order.Status != "pending" || order.PaymentStatus != "pending" {
		t.Fatalf("new order should be pending/pending, got %s/%s", order.Status, order.PaymentStatus)
	}

	// Stock depleted on both the variant and the product.
	prodRepo := repos.NewProductRepo(db)
	p, err := prodRepo.ByID("prod-tee")
	if err != nil {
		t.Fatal(err)
	}
	if p.StockQuantity != 118 {
		t.Fatalf("want product stock 118, got %d", p.StockQuantity)
	}
	v, err := prodRepo.Variant(varL)
	if err != nil {
		t.Fatal(err)
	}
	if v.StockQuantity != 38 {
		t.Fatalf("want variant stock 38, got %d", v.StockQuantity)
	}

	// Cart is cleared.
	cv, err := cartSvc.View("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d rows", len(cv.Items))
	}

	// Items are snapshots; later price edits must not leak into them.
	got, items, err := orderSvc.Get(order.ID, "u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.OrderNumber == "" {
		t.Fatal("missing order number")
	}
	if len(items) != 2 {
		t.Fatalf("want 2 order items, got %d", len(items))
	}
	var teeLine repos.OrderItem
	for _, it := range items {
		if it.ProductID == "prod-tee" {
			teeLine = it
		}
	}
	if teeLine.ProductName != "Classic Tee (Size: L)" {
		t.Fatalf("variant name not snapshotted: %q", teeLine.ProductName)
	}
	if teeLine.UnitPrice != 26.00 || teeLine.TotalPrice != 52.00 {
		t.Fatalf("bad snapshot pricing: %+v", teeLine)
	}

	db.MustExec(`UPDATE products SET price = 99.99 WHERE id = 'prod-tee'`)
	_, items, err = orderSvc.Get(order.ID, "u-alice")
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range items {
		if it.ProductID == "prod-tee" && it.UnitPrice != 26.00 {
			t.Fatalf("snapshot followed a price edit: %v", it.UnitPrice)
		}
	}
}

func TestCheckoutWithCoupon(t *testing.T) {
	db := seededDB(t)
	cartSvc, orderSvc := newOrderService(db)

	varL := "var-tee-l"
	if err := cartSvc.Add("u-alice", "prod-tee", &varL, 2); err != nil {
		t.Fatal(err)
	}
	if err := cartSvc.Add("u-alice", "prod-buds", nil, 1); err != nil {
		t.Fatal(err)
	}

	order, err := orderSvc.Checkout("u-alice", "1 Main St", "WELCOME10")
	if err != nil {
		t.Fatal(err)
	}
	// 10% of 111.90 = 11.19; tax on the discounted amount.
	if order.DiscountAmount != 11.19 {
		t.Fatalf("want discount 11.19, got %v", order.DiscountAmount)
	}
	if order.TaxAmount != 8.06 {
		t.Fatalf("want tax 8.06, got %v", order.TaxAmount)
	}
	if order.TotalAmount != 108.77 {
		t.Fatalf("want total 108.77, got %v", order.TotalAmount)
	}

	var used int
	if err := db.Get(&used, `SELECT used_count FROM coupons WHERE code = 'WELCOME10'`); err != nil {
		t.Fatal(err)
	}
	if used != 1 {
		t.Fatalf("want used_count 1, got %d", used)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := seededDB(t)
	_, orderSvc := newOrderService(db)

	if _, err := orderSvc.Checkout("u-alice", "1 Main St", ""); !errors.Is(err, services.ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := seededDB(t)
	cartSvc, orderSvc := newOrderService(db)

	// prod-lamp has 3 in stock when the cart is filled.
	if err := cartSvc.Add("u-alice", "prod-lamp", nil, 3); err != nil {
		t.Fatal(err)
	}
	// Stock drops before checkout (another buyer, an admin correction).
	db.MustExec(`UPDATE products SET stock_quantity = 2 WHERE id = 'prod-lamp'`)

	_, err := orderSvc.Checkout("u-alice", "1 Main St", "")
	if !errors.Is(err, repos.ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock, got %v", err)
	}

	// Nothing committed: no order, cart intact, stock untouched.
	var orders int
	if err := db.Get(&orders, `SELECT COUNT(*) FROM orders`); err != nil {
		t.Fatal(err)
	}
	if orders != 0 {
		t.Fatalf("want 0 orders after failed checkout, got %d", orders)
	}
	cv, err := cartSvc.View("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Items[0].Quantity != 3 {
		t.Fatalf("cart should survive a failed checkout, got %+v", cv.Items)
	}
	var stock int
	if err := db.Get(&stock, `SELECT stock_quantity FROM products WHERE id = 'prod-lamp'`); err != nil {
		t.Fatal(err)
	}
	if stock != 2 {
		t.Fatalf("stock should be untouched, got %d", stock)
	}
}

func TestOrderOwnership(t *testing.T) {
	db := seededDB(t)
	cartSvc, orderSvc := newOrderService(db)

	if err := cartSvc.Add("u-alice", "prod-buds", nil, 1); err != nil {
		t.Fatal(err)
	}
	order, err := orderSvc.Checkout("u-alice", "1 Main St", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := orderSvc.Get(order.ID, "u-bob"); err == nil {
		t.Fatal("other user should not see the order")
	}
	mine, err := orderSvc.ListForUser("u-alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 {
		t.Fatalf("want 1 order for owner, got %d", len(mine))
	}
	theirs, err := orderSvc.ListForUser("u-bob")
	if err != nil {
		t.Fatal(err)
	}
	if len(theirs) != 0 {
		t.Fatalf("want 0 orders for other user, got %d", len(theirs))
	}
}
