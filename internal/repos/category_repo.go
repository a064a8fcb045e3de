package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, name, slug, description, image_url, is_active,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE is_active = 1
	  ORDER BY name
	`)
	return out, err
}

// CategoryCountRow adds the active-product count used by the storefront nav.
type CategoryCountRow struct {
	domain.Category
	ProductCount int `db:"product_count" json:"productCount"`
}

func (r *CategoryRepo) ListWithProductCount() ([]CategoryCountRow, error) {
	out := []CategoryCountRow{}
	err := r.db.Select(&out, `
	  SELECT c.id, c.name, c.slug, c.description, c.image_url, c.is_active,
	         c.created_at, COALESCE(c.updated_at,'') AS updated_at,
	         COUNT(p.id) AS product_count
	  FROM categories c
	  LEFT JOIN products p ON p.category_id = c.id AND p.is_active = 1
	  WHERE c.is_active = 1
	  GROUP BY c.id
	  ORDER BY c.name
	`)
	return out, err
}

func (r *CategoryRepo) BySlug(slug string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `
	  SELECT id, name, slug, description, image_url, is_active,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM categories
	  WHERE slug = ? AND is_active = 1
	`, slug)
	return c, err
}

func (r *CategoryRepo) Create(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, slug, description, image_url, is_active, created_at)
	  VALUES(?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, c.ID, c.Name, c.Slug, c.Description, c.ImageURL, c.IsActive)
	return err
}

func (r *CategoryRepo) Update(c domain.Category) error {
	res, err := r.db.Exec(`
	  UPDATE categories
	  SET name=?, slug=?, description=?, image_url=?, is_active=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, c.Name, c.Slug, c.Description, c.ImageURL, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %s not found", c.ID)
	}
	return nil
}
