package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

var (
	ErrQuantity       = errors.New("quantity must be a positive integer")
	ErrProductUnknown = errors.New("product not found")
	ErrOutOfStock     = errors.New("not enough stock")
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add merges qty into the caller's cart row for (product, variant), creating
// the row if absent. The merged quantity is checked against live stock before
// the write; the unique index keeps concurrent adds from splitting rows.
func (s *CartService) Add(userID, productID string, variantID *string, qty int) error {
	if qty < 1 {
		return ErrQuantity
	}
	p, err := s.Prods.ByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProductUnknown
		}
		return err
	}
	if !p.IsActive {
		return ErrProductUnknown
	}

	available := p.StockQuantity
	if variantID != nil {
		v, err := s.Prods.Variant(*variantID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrProductUnknown
			}
			return err
		}
		if v.ProductID != productID {
			return ErrProductUnknown
		}
		available = v.StockQuantity
	}

	merged, err := s.Carts.MergedQuantity(userID, productID, variantID, qty)
	if err != nil {
		return err
	}
	if merged > available {
		return fmt.Errorf("%w: requested %d, available %d", ErrOutOfStock, merged, available)
	}

	return s.Carts.Upsert(userID, productID, variantID, qty)
}

// UpdateQuantity overwrites a row's quantity; qty <= 0 removes the row.
// Rows not owned by the caller are silently untouched.
func (s *CartService) UpdateQuantity(userID, cartItemID string, qty int) error {
	if qty <= 0 {
		return s.Carts.Delete(cartItemID, userID)
	}
	return s.Carts.SetQuantity(cartItemID, userID, qty)
}

func (s *CartService) Remove(userID, cartItemID string) error {
	return s.Carts.Delete(cartItemID, userID)
}

type CartView struct {
	Items []repos.CartRow `json:"cart"`
	Total float64         `json:"total"`
}

// View returns the caller's cart priced live: line price is the current
// product price plus the variant modifier.
func (s *CartService) View(userID string) (CartView, error) {
	items, err := s.Carts.ItemsForUser(userID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		unit := it.Price
		if it.VariantPriceModifier != nil {
			unit += *it.VariantPriceModifier
		}
		total += unit * float64(it.Quantity)
	}
	return CartView{Items: items, Total: round2(total)}, nil
}
