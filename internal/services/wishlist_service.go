package services

import "github.com/Iamtheusername112/eCommerce/internal/repos"

type WishlistService struct {
	Repo *repos.WishlistRepo
}

func NewWishlistService(r *repos.WishlistRepo) *WishlistService { return &WishlistService{Repo: r} }

func (s *WishlistService) Save(userID, productID string) error {
	return s.Repo.Add(userID, productID)
}

func (s *WishlistService) Unsave(userID, productID string) error {
	return s.Repo.Remove(userID, productID)
}

func (s *WishlistService) List(userID string) ([]repos.WishlistRow, error) {
	return s.Repo.List(userID)
}
