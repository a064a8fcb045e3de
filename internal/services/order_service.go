package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

var ErrCartEmpty = errors.New("cart is empty")

const (
	taxRate           = 0.08
	shippingFlat      = 10.0
	freeShippingAbove = 100.0
)

type OrderService struct {
	Carts   *repos.CartRepo
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
	Coupons *CouponService
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, coupons *CouponService) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders, Coupons: coupons}
}

// Checkout turns the caller's cart into an order: stock is depleted with
// conditional updates, item name/sku/price are snapshotted, the coupon usage
// counter is bumped, and the cart is cleared, all in one transaction.
// Payment capture happens elsewhere; the order starts payment_status=pending.
func (s *OrderService) Checkout(userID, shippingAddress, couponCode string) (repos.Order, error) {
	items, err := s.Carts.ItemsForUser(userID)
	if err != nil {
		return repos.Order{}, err
	}
	if len(items) == 0 {
		return repos.Order{}, ErrCartEmpty
	}

	subtotal := 0.0
	for _, it := range items {
		unit := it.Price
		if it.VariantPriceModifier != nil {
			unit += *it.VariantPriceModifier
		}
		subtotal += unit * float64(it.Quantity)
	}
	subtotal = round2(subtotal)

	discount := 0.0
	if couponCode != "" {
		d, err := s.Coupons.Validate(couponCode, subtotal, time.Now().UTC())
		if err != nil {
			return repos.Order{}, err
		}
		discount = d.Amount
	}

	tax := round2((subtotal - discount) * taxRate)
	shipping := shippingFlat
	if subtotal >= freeShippingAbove {
		shipping = 0
	}
	total := round2(subtotal - discount + tax + shipping)

	order := repos.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		OrderNumber:     orderNumber(),
		Status:          "pending",
		Subtotal:        subtotal,
		DiscountAmount:  discount,
		TaxAmount:       tax,
		ShippingAmount:  shipping,
		TotalAmount:     total,
		Currency:        "USD",
		PaymentStatus:   "pending",
		CouponCode:      couponCode,
		ShippingAddress: shippingAddress,
	}

	// Snapshot name/sku/price up front so no pooled reads happen while the
	// write transaction is open; these copies never follow later edits.
	snapshots := make([]repos.OrderItem, 0, len(items))
	for _, it := range items {
		unit := it.Price
		if it.VariantPriceModifier != nil {
			unit += *it.VariantPriceModifier
		}
		p, err := s.Prods.ByID(it.ProductID)
		if err != nil {
			return repos.Order{}, err
		}
		name := p.Name
		if it.VariantName != nil && it.VariantValue != nil {
			name = fmt.Sprintf("%s (%s: %s)", p.Name, *it.VariantName, *it.VariantValue)
		}
		snapshots = append(snapshots, repos.OrderItem{
			ID:               uuid.NewString(),
			OrderID:          order.ID,
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			ProductName:      name,
			ProductSKU:       p.SKU,
			Quantity:         it.Quantity,
			UnitPrice:        round2(unit),
			TotalPrice:       round2(unit * float64(it.Quantity)),
		})
	}
	var couponID string
	if couponCode != "" {
		c, err := s.Coupons.Coupons.ByCode(couponCode)
		if err != nil {
			return repos.Order{}, err
		}
		couponID = c.ID
	}

	tx, err := s.Orders.Beginx()
	if err != nil {
		return repos.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Deplete stock first; any insufficient line aborts the whole checkout.
	for _, it := range items {
		if it.ProductVariantID != nil {
			if err := s.Prods.DecrementVariantStock(tx, *it.ProductVariantID, it.Quantity); err != nil {
				return repos.Order{}, err
			}
		}
		if err := s.Prods.DecrementStock(tx, it.ProductID, it.Quantity); err != nil {
			return repos.Order{}, err
		}
	}

	if err := s.Orders.CreateTx(tx, order); err != nil {
		return repos.Order{}, err
	}
	for _, snap := range snapshots {
		if err := s.Orders.InsertItemTx(tx, snap); err != nil {
			return repos.Order{}, err
		}
	}

	if couponID != "" {
		if err := s.Coupons.Coupons.IncrementUsageTx(tx, couponID); err != nil {
			return repos.Order{}, err
		}
	}

	if err := s.Carts.ClearTx(tx, userID); err != nil {
		return repos.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return repos.Order{}, err
	}
	return order, nil
}

func (s *OrderService) ListForUser(userID string) ([]repos.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) Get(orderID, userID string) (repos.Order, []repos.OrderItem, error) {
	return s.Orders.Get(orderID, userID)
}

func orderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UTC().Unix(), uuid.NewString()[:8])
}
