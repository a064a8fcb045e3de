package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
)

func TestCouponPercentageWithCap(t *testing.T) {
	db := seededDB(t)
	couponSvc := services.NewCouponService(repos.NewCouponRepo(db))
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// WELCOME10: 10% off, capped at 25.
	d, err := couponSvc.Validate("WELCOME10", 80.00, now)
	if err != nil {
		t.Fatal(err)
	}
	if d.Amount != 8.00 {
		t.Fatalf("want 8.00, got %v", d.Amount)
	}

	d, err = couponSvc.Validate("welcome10", 300.00, now)
	if err != nil {
		t.Fatal(err)
	}
	if d.Amount != 25.00 {
		t.Fatalf("cap: want 25.00, got %v", d.Amount)
	}
}

func TestCouponFixedAmountAndMinimum(t *testing.T) {
	db := seededDB(t)
	couponSvc := services.NewCouponService(repos.NewCouponRepo(db))
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// FLAT5 requires a 30.00 subtotal.
	if _, err := couponSvc.Validate("FLAT5", 20.00, now); !errors.Is(err, services.ErrCouponMinOrder) {
		t.Fatalf("want ErrCouponMinOrder, got %v", err)
	}
	d, err := couponSvc.Validate("FLAT5", 50.00, now)
	if err != nil {
		t.Fatal(err)
	}
	if d.Amount != 5.00 {
		t.Fatalf("want 5.00, got %v", d.Amount)
	}
}

func TestCouponRejections(t *testing.T) {
	db := seededDB(t)
	couponSvc := services.NewCouponService(repos.NewCouponRepo(db))
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if _, err := couponSvc.Validate("NOPE", 50.00, now); !errors.Is(err, services.ErrCouponInvalid) {
		t.Fatalf("unknown code: want ErrCouponInvalid, got %v", err)
	}

	// Outside the validity window.
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := couponSvc.Validate("WELCOME10", 50.00, early); !errors.Is(err, services.ErrCouponExpired) {
		t.Fatalf("before window: want ErrCouponExpired, got %v", err)
	}
	late := time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := couponSvc.Validate("WELCOME10", 50.00, late); !errors.Is(err, services.ErrCouponExpired) {
		t.Fatalf("after window: want ErrCouponExpired, got %v", err)
	}

	// Deactivated coupon.
	db.MustExec(`UPDATE coupons SET is_active = 0 WHERE code = 'WELCOME10'`)
	if _, err := couponSvc.Validate("WELCOME10", 50.00, now); !errors.Is(err, services.ErrCouponInvalid) {
		t.Fatalf("inactive: want ErrCouponInvalid, got %v", err)
	}

	// Usage limit reached.
	db.MustExec(`UPDATE coupons SET used_count = usage_limit WHERE code = 'FLAT5'`)
	if _, err := couponSvc.Validate("FLAT5", 50.00, now); !errors.Is(err, services.ErrCouponUsedUp) {
		t.Fatalf("used up: want ErrCouponUsedUp, got %v", err)
	}
}
