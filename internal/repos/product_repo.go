package repos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
)

// ErrInsufficientStock reports a conditional stock decrement that matched no
// row because the remaining quantity was too small.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter captures the public listing parameters. Zero values mean
// "not filtered"; sort fields must already be validated by the caller.
type ProductFilter struct {
	CategorySlug string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       string // price | name | createdAt
	SortOrder    string // asc | desc
	Limit        int
	Offset       int
}

// ProductListRow is one catalog listing entry: product joined with category,
// primary image and review aggregates.
type ProductListRow struct {
	ID             string   `db:"id" json:"id"`
	Name           string   `db:"name" json:"name"`
	Slug           string   `db:"slug" json:"slug"`
	Description    string   `db:"description" json:"description,omitempty"`
	Price          float64  `db:"price" json:"price"`
	ComparePrice   *float64 `db:"compare_price" json:"comparePrice,omitempty"`
	IsOnSale       bool     `db:"is_on_sale" json:"isOnSale"`
	SalePercentage *int     `db:"sale_percentage" json:"salePercentage,omitempty"`
	StockQuantity  int      `db:"stock_quantity" json:"stockQuantity"`
	IsFeatured     bool     `db:"is_featured" json:"isFeatured"`
	CategoryName   string   `db:"category_name" json:"categoryName,omitempty"`
	CategorySlug   string   `db:"category_slug" json:"categorySlug,omitempty"`
	PrimaryImage   string   `db:"primary_image" json:"primaryImage,omitempty"`
	Rating         float64  `db:"rating" json:"rating"`
	ReviewCount    int      `db:"review_count" json:"reviewCount"`
	CreatedAt      string   `db:"created_at" json:"createdAt"`
}

const productListColumns = `
  p.id, p.name, p.slug, p.short_description AS description,
  p.price, p.compare_price, p.is_on_sale, p.sale_percentage,
  p.stock_quantity, p.is_featured,
  COALESCE(c.name,'') AS category_name, COALESCE(c.slug,'') AS category_slug,
  COALESCE(pi.url,'') AS primary_image,
  COALESCE(AVG(pr.rating), 0) AS rating,
  COUNT(pr.id) AS review_count,
  p.created_at`

// buildWhere returns the WHERE fragment and args shared by List and Count.
// Only active products ever reach the public listing.
func (f ProductFilter) buildWhere() (string, []any) {
	where := `p.is_active = 1`
	args := []any{}
	if f.CategorySlug != "" {
		where += ` AND c.slug = ?`
		args = append(args, f.CategorySlug)
	}
	if f.Search != "" {
		where += ` AND LOWER(p.name) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Search)+"%")
	}
	if f.MinPrice != nil {
		where += ` AND p.price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND p.price <= ?`
		args = append(args, *f.MaxPrice)
	}
	return where, args
}

// orderClause maps the validated sort key to a column expression. The map is a
// whitelist; user input never reaches the SQL text directly.
func (f ProductFilter) orderClause() string {
	col := `datetime(p.created_at)`
	switch f.SortBy {
	case "price":
		col = `p.price`
	case "name":
		col = `LOWER(p.name)`
	}
	dir := `DESC`
	if f.SortOrder == "asc" {
		dir = `ASC`
	}
	return col + ` ` + dir
}

func (r *ProductRepo) List(f ProductFilter) ([]ProductListRow, error) {
	where, args := f.buildWhere()
	query := `
	  SELECT ` + productListColumns + `
	  FROM products p
	  LEFT JOIN categories c  ON c.id = p.category_id
	  LEFT JOIN product_images pi ON pi.product_id = p.id AND pi.is_primary = 1
	  LEFT JOIN product_reviews pr ON pr.product_id = p.id
	  WHERE ` + where + `
	  GROUP BY p.id
	  ORDER BY ` + f.orderClause() + `
	  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	out := []ProductListRow{}
	err := r.db.Select(&out, query, args...)
	return out, err
}

func (r *ProductRepo) Count(f ProductFilter) (int, error) {
	where, args := f.buildWhere()
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*)
	  FROM products p
	  LEFT JOIN categories c ON c.id = p.category_id
	  WHERE `+where, args...)
	return n, err
}

// BySlug returns a single active product for the public detail page.
func (r *ProductRepo) BySlug(slug string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, category_id, name, slug, description, short_description,
	         price, compare_price, sku, is_active, is_featured, is_on_sale,
	         sale_percentage, stock_quantity, low_stock_threshold, tags_json,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE slug = ? AND is_active = 1
	`, slug)
	return p, err
}

func (r *ProductRepo) ByID(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, category_id, name, slug, description, short_description,
	         price, compare_price, sku, is_active, is_featured, is_on_sale,
	         sale_percentage, stock_quantity, low_stock_threshold, tags_json,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Images(productID string) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, url, alt, is_primary, sort_order
	  FROM product_images
	  WHERE product_id = ?
	  ORDER BY is_primary DESC, sort_order
	`, productID)
	return out, err
}

func (r *ProductRepo) Variants(productID string) ([]domain.ProductVariant, error) {
	out := []domain.ProductVariant{}
	err := r.db.Select(&out, `
	  SELECT id, product_id, name, value, price_modifier, stock_quantity, sku, is_active
	  FROM product_variants
	  WHERE product_id = ? AND is_active = 1
	  ORDER BY name, value
	`, productID)
	return out, err
}

func (r *ProductRepo) Variant(id string) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := r.db.Get(&v, `
	  SELECT id, product_id, name, value, price_modifier, stock_quantity, sku, is_active
	  FROM product_variants
	  WHERE id = ?
	`, id)
	return v, err
}

// Rating returns the review aggregates for one product. Zero reviews yields
// rating 0, never NULL.
func (r *ProductRepo) Rating(productID string) (float64, int, error) {
	var row struct {
		Rating float64 `db:"rating"`
		Count  int     `db:"review_count"`
	}
	err := r.db.Get(&row, `
	  SELECT COALESCE(AVG(rating),0) AS rating, COUNT(id) AS review_count
	  FROM product_reviews
	  WHERE product_id = ?
	`, productID)
	return row.Rating, row.Count, err
}

// ---------- Admin lifecycle (create/update/deactivate, never hard delete) ----------

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, slug, description, short_description,
	    price, compare_price, sku, is_active, is_featured, is_on_sale, sale_percentage,
	    stock_quantity, low_stock_threshold, tags_json, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.CategoryID, p.Name, p.Slug, p.Description, p.ShortDescription,
		p.Price, p.ComparePrice, p.SKU, p.IsActive, p.IsFeatured, p.IsOnSale,
		p.SalePercentage, p.StockQuantity, p.LowStockThreshold, p.TagsJSON)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET category_id=?, name=?, slug=?, description=?, short_description=?,
	      price=?, compare_price=?, sku=?, is_featured=?, is_on_sale=?,
	      sale_percentage=?, stock_quantity=?, low_stock_threshold=?, tags_json=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.CategoryID, p.Name, p.Slug, p.Description, p.ShortDescription,
		p.Price, p.ComparePrice, p.SKU, p.IsFeatured, p.IsOnSale,
		p.SalePercentage, p.StockQuantity, p.LowStockThreshold, p.TagsJSON, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s not found", p.ID)
	}
	return nil
}

func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.db.Exec(`UPDATE products SET is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, active, id)
	return err
}

// DecrementStock atomically subtracts qty if enough stock exists; the guard
// lives in the predicate so concurrent checkouts cannot oversell.
func (r *ProductRepo) DecrementStock(tx *sqlx.Tx, productID string, qty int) error {
	res, err := tx.Exec(`
	  UPDATE products
	  SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND stock_quantity >= ?
	`, qty, productID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w for product %s", ErrInsufficientStock, productID)
	}
	return nil
}

func (r *ProductRepo) DecrementVariantStock(tx *sqlx.Tx, variantID string, qty int) error {
	res, err := tx.Exec(`
	  UPDATE product_variants
	  SET stock_quantity = stock_quantity - ?
	  WHERE id = ? AND stock_quantity >= ?
	`, qty, variantID, qty)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w for variant %s", ErrInsufficientStock, variantID)
	}
	return nil
}

// LowStockRow is an admin alert line for products at or below their threshold.
type LowStockRow struct {
	ID                string `db:"id" json:"id"`
	Name              string `db:"name" json:"name"`
	SKU               string `db:"sku" json:"sku,omitempty"`
	StockQuantity     int    `db:"stock_quantity" json:"stockQuantity"`
	LowStockThreshold int    `db:"low_stock_threshold" json:"lowStockThreshold"`
}

func (r *ProductRepo) LowStock() ([]LowStockRow, error) {
	out := []LowStockRow{}
	err := r.db.Select(&out, `
	  SELECT id, name, sku, stock_quantity, low_stock_threshold
	  FROM products
	  WHERE is_active = 1 AND stock_quantity <= low_stock_threshold
	  ORDER BY stock_quantity, name
	`)
	return out, err
}
