package repos

import "github.com/jmoiron/sqlx"

// StatsRepo computes the admin dashboard aggregates. Each aggregate is an
// independent read; the dashboard is a point-in-time approximation, not a
// consistent snapshot.
type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

type DashboardStats struct {
	TotalProducts  int     `json:"totalProducts"`
	TotalOrders    int     `json:"totalOrders"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalRevenue   float64 `json:"totalRevenue"`
	RecentOrders   int     `json:"recentOrders"` // last 7 days
	LowStockCount  int     `json:"lowStockCount"`
}

func (r *StatsRepo) Dashboard() (DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Get(&s.TotalProducts, `SELECT COUNT(*) FROM products`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalCustomers, `SELECT COUNT(*) FROM users`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.TotalRevenue, `
	  SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'paid'
	`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.RecentOrders, `
	  SELECT COUNT(*) FROM orders WHERE datetime(created_at) >= datetime('now','-7 days')
	`); err != nil {
		return s, err
	}
	if err := r.db.Get(&s.LowStockCount, `
	  SELECT COUNT(*) FROM products WHERE is_active = 1 AND stock_quantity <= low_stock_threshold
	`); err != nil {
		return s, err
	}
	return s, nil
}
