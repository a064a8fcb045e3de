package services

import (
	"errors"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/validate"
)

var ErrRating = errors.New("rating must be between 1 and 5")

type ReviewService struct {
	Revs  *repos.ReviewRepo
	Prods *repos.ProductRepo
}

func NewReviewService(revs *repos.ReviewRepo, prods *repos.ProductRepo) *ReviewService {
	return &ReviewService{Revs: revs, Prods: prods}
}

// Submit records a user's review; a repeat submission replaces the previous
// one rather than stacking duplicates into the aggregate.
func (s *ReviewService) Submit(productSlug, userID string, rating int, title, comment string) error {
	if !validate.Rating(rating) {
		return ErrRating
	}
	p, err := s.Prods.BySlug(productSlug)
	if err != nil {
		return err
	}
	return s.Revs.Upsert(p.ID, userID, rating, title, comment)
}

func (s *ReviewService) ListForProduct(productSlug string) ([]repos.ReviewRow, error) {
	p, err := s.Prods.BySlug(productSlug)
	if err != nil {
		return nil, err
	}
	return s.Revs.ListForProduct(p.ID)
}
