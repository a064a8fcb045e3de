package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartRow is a cart line joined with live product (and variant) data. Prices
// here are live, not snapshotted; orders snapshot at checkout instead.
type CartRow struct {
	ID                   string   `db:"id" json:"id"`
	Quantity             int      `db:"quantity" json:"quantity"`
	ProductID            string   `db:"product_id" json:"productId"`
	ProductVariantID     *string  `db:"product_variant_id" json:"productVariantId,omitempty"`
	ProductName          string   `db:"product_name" json:"productName"`
	ProductSlug          string   `db:"product_slug" json:"productSlug"`
	Price                float64  `db:"price" json:"price"`
	ComparePrice         *float64 `db:"compare_price" json:"comparePrice,omitempty"`
	IsOnSale             bool     `db:"is_on_sale" json:"isOnSale"`
	SalePercentage       *int     `db:"sale_percentage" json:"salePercentage,omitempty"`
	StockQuantity        int      `db:"stock_quantity" json:"stockQuantity"`
	PrimaryImage         string   `db:"primary_image" json:"primaryImage,omitempty"`
	VariantName          *string  `db:"variant_name" json:"variantName,omitempty"`
	VariantValue         *string  `db:"variant_value" json:"variantValue,omitempty"`
	VariantPriceModifier *float64 `db:"variant_price_modifier" json:"variantPriceModifier,omitempty"`
}

func (r *CartRepo) ItemsForUser(userID string) ([]CartRow, error) {
	out := []CartRow{}
	err := r.db.Select(&out, `
	  SELECT ci.id, ci.quantity, ci.product_id, ci.product_variant_id,
	         p.name AS product_name, p.slug AS product_slug, p.price, p.compare_price,
	         p.is_on_sale, p.sale_percentage, p.stock_quantity,
	         COALESCE(pi.url,'') AS primary_image,
	         pv.name AS variant_name, pv.value AS variant_value,
	         pv.price_modifier AS variant_price_modifier
	  FROM cart_items ci
	  JOIN products p ON p.id = ci.product_id
	  LEFT JOIN product_images pi ON pi.product_id = p.id AND pi.is_primary = 1
	  LEFT JOIN product_variants pv ON pv.id = ci.product_variant_id
	  WHERE ci.user_id = ?
	  ORDER BY datetime(ci.created_at)
	`, userID)
	return out, err
}

// Upsert merges an add into an existing (user, product, variant) row or
// inserts a fresh one. The unique index on the triple makes this a single
// atomic statement rather than check-then-act.
func (r *CartRepo) Upsert(userID, productID string, variantID *string, qty int) error {
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(id, user_id, product_id, product_variant_id, quantity, created_at)
	  VALUES(?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id, COALESCE(product_variant_id,'')) DO UPDATE
	  SET quantity = quantity + excluded.quantity, updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), userID, productID, variantID, qty)
	return err
}

// MergedQuantity returns what the row quantity would become after adding qty,
// so the service can check stock before committing.
func (r *CartRepo) MergedQuantity(userID, productID string, variantID *string, qty int) (int, error) {
	var current int
	err := r.db.Get(&current, `
	  SELECT COALESCE(SUM(quantity),0) FROM cart_items
	  WHERE user_id = ? AND product_id = ? AND COALESCE(product_variant_id,'') = COALESCE(?,'')
	`, userID, productID, variantID)
	if err != nil {
		return 0, err
	}
	return current + qty, nil
}

// SetQuantity overwrites the stored quantity. Ownership is part of the
// predicate; updating someone else's row is a no-op.
func (r *CartRepo) SetQuantity(cartItemID, userID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND user_id = ?
	`, qty, cartItemID, userID)
	return err
}

func (r *CartRepo) Delete(cartItemID, userID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, cartItemID, userID)
	return err
}

func (r *CartRepo) ClearTx(tx *sqlx.Tx, userID string) error {
	_, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID)
	return err
}

func (r *CartRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cart_items WHERE user_id = ?`, userID)
	return n, err
}
