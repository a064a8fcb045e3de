package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reID   = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	reCode = regexp.MustCompile(`^[A-Za-z0-9]{3,32}$`)
	reSort = regexp.MustCompile(`^(price|name|createdAt)$`)
)

// ID validates a simple resource identifier (product/category/cart-item ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Slug validates a URL slug (lowercase, dash-separated).
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Search trims and caps a catalog search term. The term only ever reaches the
// database as a bound LIKE parameter, so the cap is about abuse, not injection.
func Search(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Qty parses a cart quantity. Returns 0 for anything that is not a positive
// integer; the caller decides whether that is an error or a removal.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Page parses a page number, clamping to 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Limit parses a page size with a default of 12 and a hard cap of 100.
func Limit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 12
	}
	if n > 100 {
		return 100
	}
	return n
}

// Price parses an optional price bound; nil means absent or malformed.
func Price(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// Sort validates the sort key, falling back to newest-first.
func Sort(by, order string) (string, string) {
	by = strings.TrimSpace(by)
	if !reSort.MatchString(by) {
		by = "createdAt"
	}
	order = strings.ToLower(strings.TrimSpace(order))
	if order != "asc" {
		order = "desc"
	}
	return by, order
}

// Rating validates a 1-5 star rating.
func Rating(n int) bool { return n >= 1 && n <= 5 }

// CouponCode validates a coupon code shape before hitting the DB.
func CouponCode(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reCode.MatchString(s)
}

// OrderStatus whitelists admin status transitions.
func OrderStatus(s string) bool {
	switch s {
	case "pending", "processing", "shipped", "delivered", "cancelled":
		return true
	}
	return false
}

// Role whitelists user roles for the admin role mutation.
func Role(s string) bool { return s == "customer" || s == "admin" }
