package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/cache"
	"github.com/Iamtheusername112/eCommerce/internal/config"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
)

type Deps struct {
	Auth            *Auth
	ProductHandler  *ProductHandler
	CategoryHandler *CategoryHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	ReviewHandler   *ReviewHandler
	CouponHandler   *CouponHandler
	OrderHandler    *OrderHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, c *cache.Cache) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	couponRepo := repos.NewCouponRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	userRepo := repos.NewUserRepo(db)
	statsRepo := repos.NewStatsRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo, reviewRepo, c)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo)
	reviewSvc := services.NewReviewService(reviewRepo, prodRepo)
	couponSvc := services.NewCouponService(couponRepo)
	orderSvc := services.NewOrderService(cartRepo, prodRepo, orderRepo, couponSvc)
	adminSvc := services.NewAdminService(statsRepo, prodRepo, c)

	return &Deps{
		Auth:            &Auth{Secret: []byte(cfg.JWTSecret), Users: userRepo},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		ReviewHandler:   &ReviewHandler{Reviews: reviewSvc},
		CouponHandler:   &CouponHandler{Coupons: couponSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		AdminHandler: &AdminHandler{
			Admin:  adminSvc,
			Prods:  prodRepo,
			Cats:   catRepo,
			Orders: orderRepo,
			Users:  userRepo,
			Cache:  c,
		},
	}
}
