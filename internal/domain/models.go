package domain

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description,omitempty"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
	IsActive    bool   `db:"is_active" json:"isActive"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID                string   `db:"id" json:"id"`
	CategoryID        *string  `db:"category_id" json:"categoryId,omitempty"`
	Name              string   `db:"name" json:"name"`
	Slug              string   `db:"slug" json:"slug"`
	Description       string   `db:"description" json:"description,omitempty"`
	ShortDescription  string   `db:"short_description" json:"shortDescription,omitempty"`
	Price             float64  `db:"price" json:"price"`
	ComparePrice      *float64 `db:"compare_price" json:"comparePrice,omitempty"`
	SKU               string   `db:"sku" json:"sku,omitempty"`
	IsActive          bool     `db:"is_active" json:"isActive"`
	IsFeatured        bool     `db:"is_featured" json:"isFeatured"`
	IsOnSale          bool     `db:"is_on_sale" json:"isOnSale"`
	SalePercentage    *int     `db:"sale_percentage" json:"salePercentage,omitempty"`
	StockQuantity     int      `db:"stock_quantity" json:"stockQuantity"`
	LowStockThreshold int      `db:"low_stock_threshold" json:"lowStockThreshold"`
	TagsJSON          string   `db:"tags_json" json:"-"`
	CreatedAt         string   `db:"created_at" json:"createdAt"`
	UpdatedAt         string   `db:"updated_at" json:"updatedAt,omitempty"`
}

type ProductImage struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	URL       string `db:"url" json:"url"`
	Alt       string `db:"alt" json:"alt,omitempty"`
	IsPrimary bool   `db:"is_primary" json:"isPrimary"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
}

type ProductVariant struct {
	ID            string  `db:"id" json:"id"`
	ProductID     string  `db:"product_id" json:"productId"`
	Name          string  `db:"name" json:"name"`   // e.g. "Size"
	Value         string  `db:"value" json:"value"` // e.g. "Large"
	PriceModifier float64 `db:"price_modifier" json:"priceModifier"`
	StockQuantity int     `db:"stock_quantity" json:"stockQuantity"`
	SKU           string  `db:"sku" json:"sku,omitempty"`
	IsActive      bool    `db:"is_active" json:"isActive"`
}

type Coupon struct {
	ID                    string   `db:"id" json:"id"`
	Code                  string   `db:"code" json:"code"`
	Description           string   `db:"description" json:"description,omitempty"`
	DiscountType          string   `db:"discount_type" json:"discountType"` // percentage | fixed_amount
	DiscountValue         float64  `db:"discount_value" json:"discountValue"`
	MinimumOrderAmount    *float64 `db:"minimum_order_amount" json:"minimumOrderAmount,omitempty"`
	MaximumDiscountAmount *float64 `db:"maximum_discount_amount" json:"maximumDiscountAmount,omitempty"`
	UsageLimit            *int     `db:"usage_limit" json:"usageLimit,omitempty"`
	UsedCount             int      `db:"used_count" json:"usedCount"`
	IsActive              bool     `db:"is_active" json:"isActive"`
	ValidFrom             string   `db:"valid_from" json:"validFrom"`
	ValidUntil            string   `db:"valid_until" json:"validUntil"`
}
