package services

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

var (
	ErrCouponInvalid  = errors.New("coupon is not valid")
	ErrCouponExpired  = errors.New("coupon is outside its validity window")
	ErrCouponUsedUp   = errors.New("coupon usage limit reached")
	ErrCouponMinOrder = errors.New("order subtotal below coupon minimum")
)

type CouponService struct {
	Coupons *repos.CouponRepo
}

func NewCouponService(coupons *repos.CouponRepo) *CouponService {
	return &CouponService{Coupons: coupons}
}

const couponTimeLayout = "2006-01-02 15:04:05"

// Discount is the outcome of validating a coupon against a subtotal.
type Discount struct {
	Coupon domain.Coupon `json:"coupon"`
	Amount float64       `json:"amount"`
}

// Validate checks the coupon's active flag, validity window, usage cap and
// minimum order amount, then computes the discount:
//   - percentage: subtotal * value/100, capped by maximum_discount_amount
//   - fixed_amount: min(value, subtotal), never below zero
func (s *CouponService) Validate(code string, subtotal float64, now time.Time) (Discount, error) {
	c, err := s.Coupons.ByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Discount{}, ErrCouponInvalid
		}
		return Discount{}, err
	}
	if !c.IsActive {
		return Discount{}, ErrCouponInvalid
	}

	from, err := time.Parse(couponTimeLayout, c.ValidFrom)
	if err != nil {
		return Discount{}, ErrCouponInvalid
	}
	until, err := time.Parse(couponTimeLayout, c.ValidUntil)
	if err != nil {
		return Discount{}, ErrCouponInvalid
	}
	if now.Before(from) || now.After(until) {
		return Discount{}, ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return Discount{}, ErrCouponUsedUp
	}
	if c.MinimumOrderAmount != nil && subtotal < *c.MinimumOrderAmount {
		return Discount{}, ErrCouponMinOrder
	}

	var amount float64
	switch c.DiscountType {
	case "percentage":
		amount = subtotal * c.DiscountValue / 100
		if c.MaximumDiscountAmount != nil && amount > *c.MaximumDiscountAmount {
			amount = *c.MaximumDiscountAmount
		}
	case "fixed_amount":
		amount = math.Min(c.DiscountValue, subtotal)
	default:
		return Discount{}, ErrCouponInvalid
	}

	return Discount{Coupon: c, Amount: round2(amount)}, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
