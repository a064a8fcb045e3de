package services

import (
	"context"

	"github.com/Iamtheusername112/eCommerce/internal/cache"
	"github.com/Iamtheusername112/eCommerce/internal/repos"
)

type AdminService struct {
	Stats *repos.StatsRepo
	Prods *repos.ProductRepo
	Cache *cache.Cache
}

func NewAdminService(stats *repos.StatsRepo, prods *repos.ProductRepo, c *cache.Cache) *AdminService {
	return &AdminService{Stats: stats, Prods: prods, Cache: c}
}

const dashboardKey = "admin:dashboard"

// Dashboard returns the storefront aggregates, cached for a short TTL.
func (s *AdminService) Dashboard(ctx context.Context) (repos.DashboardStats, error) {
	var stats repos.DashboardStats
	if s.Cache.GetJSON(ctx, dashboardKey, &stats) {
		return stats, nil
	}
	stats, err := s.Stats.Dashboard()
	if err != nil {
		return repos.DashboardStats{}, err
	}
	s.Cache.SetJSON(ctx, dashboardKey, stats, cache.DashboardTTL)
	return stats, nil
}

func (s *AdminService) LowStock() ([]repos.LowStockRow, error) {
	return s.Prods.LowStock()
}
