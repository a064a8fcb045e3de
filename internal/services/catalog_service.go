package services

import (
	"context"
	"fmt"
	"math"

	"github.com/Iamtheusername112/eCommerce/internal/cache"
	"github.com/Iamtheusername112/eCommerce/internal/domain"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
	Revs  *repos.ReviewRepo
	Cache *cache.Cache // nil disables caching
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, revs *repos.ReviewRepo, c *cache.Cache) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Revs: revs, Cache: c}
}

// ListParams are the public catalog query parameters, already validated.
type ListParams struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ProductPage struct {
	Products   []repos.ProductListRow `json:"products"`
	Pagination Pagination             `json:"pagination"`
}

func (p ListParams) cacheKey() string {
	min, max := float64(-1), float64(-1)
	if p.MinPrice != nil {
		min = *p.MinPrice
	}
	if p.MaxPrice != nil {
		max = *p.MaxPrice
	}
	return fmt.Sprintf("products:%d:%d:%s:%s:%g:%g:%s:%s",
		p.Page, p.Limit, p.Category, p.Search, min, max, p.SortBy, p.SortOrder)
}

func (s *CatalogService) ListProducts(ctx context.Context, p ListParams) (ProductPage, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 12
	}

	key := p.cacheKey()
	var page ProductPage
	if s.Cache.GetJSON(ctx, key, &page) {
		return page, nil
	}

	f := repos.ProductFilter{
		CategorySlug: p.Category,
		Search:       p.Search,
		MinPrice:     p.MinPrice,
		MaxPrice:     p.MaxPrice,
		SortBy:       p.SortBy,
		SortOrder:    p.SortOrder,
		Limit:        p.Limit,
		Offset:       (p.Page - 1) * p.Limit,
	}
	products, err := s.Prods.List(f)
	if err != nil {
		return ProductPage{}, err
	}
	total, err := s.Prods.Count(f)
	if err != nil {
		return ProductPage{}, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	page = ProductPage{
		Products: products,
		Pagination: Pagination{
			Page:       p.Page,
			Limit:      p.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    p.Page < totalPages,
			HasPrev:    p.Page > 1,
		},
	}
	s.Cache.SetJSON(ctx, key, page, cache.CatalogTTL)
	return page, nil
}

// ProductDetail is the public single-product view with images, variants and
// review aggregates.
type ProductDetail struct {
	domain.Product
	Images      []domain.ProductImage   `json:"images"`
	Variants    []domain.ProductVariant `json:"variants"`
	Rating      float64                 `json:"rating"`
	ReviewCount int                     `json:"reviewCount"`
}

func (s *CatalogService) GetProduct(slug string) (ProductDetail, error) {
	p, err := s.Prods.BySlug(slug)
	if err != nil {
		return ProductDetail{}, err
	}
	images, err := s.Prods.Images(p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	variants, err := s.Prods.Variants(p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	rating, count, err := s.Prods.Rating(p.ID)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Images: images, Variants: variants, Rating: rating, ReviewCount: count}, nil
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListCategoriesWithCount() ([]repos.CategoryCountRow, error) {
	return s.Cats.ListWithProductCount()
}
