package repos

import (
	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Beginx() (*sqlx.Tx, error) { return r.db.Beginx() }

type Order struct {
	ID              string  `db:"id" json:"id"`
	UserID          string  `db:"user_id" json:"-"`
	OrderNumber     string  `db:"order_number" json:"orderNumber"`
	Status          string  `db:"status" json:"status"`
	Subtotal        float64 `db:"subtotal" json:"subtotal"`
	DiscountAmount  float64 `db:"discount_amount" json:"discountAmount"`
	TaxAmount       float64 `db:"tax_amount" json:"taxAmount"`
	ShippingAmount  float64 `db:"shipping_amount" json:"shippingAmount"`
	TotalAmount     float64 `db:"total_amount" json:"totalAmount"`
	Currency        string  `db:"currency" json:"currency"`
	PaymentStatus   string  `db:"payment_status" json:"paymentStatus"`
	CouponCode      string  `db:"coupon_code" json:"couponCode,omitempty"`
	ShippingAddress string  `db:"shipping_address" json:"shippingAddress,omitempty"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
}

// OrderItem is the immutable snapshot of what was bought: name/sku/price are
// copied at purchase time and never follow later product edits.
type OrderItem struct {
	ID               string  `db:"id" json:"id"`
	OrderID          string  `db:"order_id" json:"-"`
	ProductID        string  `db:"product_id" json:"productId"`
	ProductVariantID *string `db:"product_variant_id" json:"productVariantId,omitempty"`
	ProductName      string  `db:"product_name" json:"productName"`
	ProductSKU       string  `db:"product_sku" json:"productSku,omitempty"`
	Quantity         int     `db:"quantity" json:"quantity"`
	UnitPrice        float64 `db:"unit_price" json:"unitPrice"`
	TotalPrice       float64 `db:"total_price" json:"totalPrice"`
}

func (r *OrderRepo) CreateTx(tx *sqlx.Tx, o Order) error {
	_, err := tx.Exec(`
	  INSERT INTO orders(id, user_id, order_number, status, subtotal, discount_amount,
	    tax_amount, shipping_amount, total_amount, currency, payment_status,
	    coupon_code, shipping_address, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.OrderNumber, o.Status, o.Subtotal, o.DiscountAmount,
		o.TaxAmount, o.ShippingAmount, o.TotalAmount, o.Currency, o.PaymentStatus,
		o.CouponCode, o.ShippingAddress)
	return err
}

func (r *OrderRepo) InsertItemTx(tx *sqlx.Tx, it OrderItem) error {
	_, err := tx.Exec(`
	  INSERT INTO order_items(id, order_id, product_id, product_variant_id,
	    product_name, product_sku, quantity, unit_price, total_price, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, it.ID, it.OrderID, it.ProductID, it.ProductVariantID,
		it.ProductName, it.ProductSKU, it.Quantity, it.UnitPrice, it.TotalPrice)
	return err
}

// Get returns one order with its items, filtered by owner in the predicate.
func (r *OrderRepo) Get(orderID, userID string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.Get(&o, `
	  SELECT id, user_id, order_number, status, subtotal, discount_amount, tax_amount,
	         shipping_amount, total_amount, currency, payment_status, coupon_code,
	         shipping_address, created_at
	  FROM orders
	  WHERE id = ? AND user_id = ?
	`, orderID, userID); err != nil {
		return Order{}, nil, err
	}

	items := []OrderItem{}
	if err := r.db.Select(&items, `
	  SELECT id, order_id, product_id, product_variant_id, product_name, product_sku,
	         quantity, unit_price, total_price
	  FROM order_items
	  WHERE order_id = ?
	  ORDER BY product_name
	`, orderID); err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListByUser(userID string) ([]Order, error) {
	out := []Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, order_number, status, subtotal, discount_amount, tax_amount,
	         shipping_amount, total_amount, currency, payment_status, coupon_code,
	         shipping_address, created_at
	  FROM orders
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []Order{}
	err := r.db.Select(&out, `
	  SELECT id, user_id, order_number, status, subtotal, discount_amount, tax_amount,
	         shipping_amount, total_amount, currency, payment_status, coupon_code,
	         shipping_address, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, status, id)
	return err
}
