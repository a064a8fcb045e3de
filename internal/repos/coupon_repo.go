package repos

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
)

type CouponRepo struct{ db *sqlx.DB }

func NewCouponRepo(db *sqlx.DB) *CouponRepo { return &CouponRepo{db: db} }

func (r *CouponRepo) ByCode(code string) (domain.Coupon, error) {
	var c domain.Coupon
	err := r.db.Get(&c, `
	  SELECT id, code, description, discount_type, discount_value,
	         minimum_order_amount, maximum_discount_amount,
	         usage_limit, used_count, is_active, valid_from, valid_until
	  FROM coupons
	  WHERE UPPER(code) = ?
	`, strings.ToUpper(code))
	return c, err
}

// IncrementUsageTx bumps used_count, refusing once the cap is reached. The
// cap check sits in the predicate so concurrent checkouts cannot overrun it.
func (r *CouponRepo) IncrementUsageTx(tx *sqlx.Tx, id string) error {
	res, err := tx.Exec(`
	  UPDATE coupons
	  SET used_count = used_count + 1
	  WHERE id = ? AND (usage_limit IS NULL OR used_count < usage_limit)
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("coupon %s usage limit reached", id)
	}
	return nil
}
