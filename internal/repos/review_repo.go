package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Upsert writes a user's review of a product; a second submission replaces
// the first (one review per user/product).
func (r *ReviewRepo) Upsert(productID, userID string, rating int, title, comment string) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_reviews(id, product_id, user_id, rating, title, comment, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(product_id, user_id) DO UPDATE
	  SET rating = excluded.rating, title = excluded.title, comment = excluded.comment,
	      updated_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), productID, userID, rating, title, comment)
	return err
}

type ReviewRow struct {
	ID         string `db:"id" json:"id"`
	Rating     int    `db:"rating" json:"rating"`
	Title      string `db:"title" json:"title,omitempty"`
	Comment    string `db:"comment" json:"comment,omitempty"`
	IsVerified bool   `db:"is_verified" json:"isVerified"`
	UserName   string `db:"user_name" json:"userName"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

func (r *ReviewRepo) ListForProduct(productID string) ([]ReviewRow, error) {
	out := []ReviewRow{}
	err := r.db.Select(&out, `
	  SELECT pr.id, pr.rating, pr.title, pr.comment, pr.is_verified,
	         u.name AS user_name, pr.created_at
	  FROM product_reviews pr
	  JOIN users u ON u.id = pr.user_id
	  WHERE pr.product_id = ? AND pr.is_active = 1
	  ORDER BY datetime(pr.created_at) DESC
	`, productID)
	return out, err
}
