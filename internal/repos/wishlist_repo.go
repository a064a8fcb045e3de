package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// Add is idempotent: saving the same product twice keeps one row.
func (r *WishlistRepo) Add(userID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(id, user_id, product_id, created_at)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, product_id) DO NOTHING
	`, uuid.NewString(), userID, productID)
	return err
}

func (r *WishlistRepo) Remove(userID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	return err
}

type WishlistRow struct {
	ID           string   `db:"id" json:"id"`
	ProductID    string   `db:"product_id" json:"productId"`
	ProductName  string   `db:"product_name" json:"productName"`
	ProductSlug  string   `db:"product_slug" json:"productSlug"`
	Price        float64  `db:"price" json:"price"`
	ComparePrice *float64 `db:"compare_price" json:"comparePrice,omitempty"`
	IsActive     bool     `db:"is_active" json:"isActive"`
	PrimaryImage string   `db:"primary_image" json:"primaryImage,omitempty"`
}

func (r *WishlistRepo) List(userID string) ([]WishlistRow, error) {
	out := []WishlistRow{}
	err := r.db.Select(&out, `
	  SELECT wi.id, p.id AS product_id, p.name AS product_name, p.slug AS product_slug,
	         p.price, p.compare_price, p.is_active,
	         COALESCE(pi.url,'') AS primary_image
	  FROM wishlist_items wi
	  JOIN products p ON p.id = wi.product_id
	  LEFT JOIN product_images pi ON pi.product_id = p.id AND pi.is_primary = 1
	  WHERE wi.user_id = ?
	  ORDER BY datetime(wi.created_at) DESC
	`, userID)
	return out, err
}
