package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every pooled connection to ":memory:" would get its own database, and
	// SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog data if the DB is empty (categories/products/images).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users (profile for externally authenticated identities; id = provider subject)
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('customer','admin')),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NULL REFERENCES categories(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  short_description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  compare_price NUMERIC NULL,
  sku TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_on_sale INTEGER NOT NULL DEFAULT 0,
  sale_percentage INTEGER NULL,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  low_stock_threshold INTEGER NOT NULL DEFAULT 5,
  tags_json TEXT NOT NULL DEFAULT '[]',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_price      ON products(price);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Product images (at most one primary per product)
CREATE TABLE IF NOT EXISTS product_images(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  alt TEXT NOT NULL DEFAULT '',
  is_primary INTEGER NOT NULL DEFAULT 0,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_images_product ON product_images(product_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_product_images_primary
  ON product_images(product_id) WHERE is_primary = 1;

-- Product variants
CREATE TABLE IF NOT EXISTS product_variants(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  value TEXT NOT NULL,
  price_modifier NUMERIC NOT NULL DEFAULT 0,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  sku TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_product_variants_product ON product_variants(product_id);

-- Cart (one row per user/product/variant; merge-on-add is an upsert)
CREATE TABLE IF NOT EXISTS cart_items(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  product_variant_id TEXT NULL REFERENCES product_variants(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_items_owner
  ON cart_items(user_id, product_id, COALESCE(product_variant_id,''));

-- Orders (immutable after creation except status transitions)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id),
  order_number TEXT NOT NULL UNIQUE,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal NUMERIC NOT NULL,
  discount_amount NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  shipping_amount NUMERIC NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  coupon_code TEXT NOT NULL DEFAULT '',
  shipping_address TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

-- Order items snapshot name/sku/price at purchase time, decoupled from live products.
CREATE TABLE IF NOT EXISTS order_items(
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  product_variant_id TEXT NULL REFERENCES product_variants(id),
  product_name TEXT NOT NULL,
  product_sku TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  unit_price NUMERIC NOT NULL,
  total_price NUMERIC NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

-- Wishlist
CREATE TABLE IF NOT EXISTS wishlist_items(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, product_id)
);

-- Reviews (one per user/product)
CREATE TABLE IF NOT EXISTS product_reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  title TEXT NOT NULL DEFAULT '',
  comment TEXT NOT NULL DEFAULT '',
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE(product_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_product_reviews_product ON product_reviews(product_id);

-- Coupons
CREATE TABLE IF NOT EXISTS coupons(
  id TEXT PRIMARY KEY,
  code TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  discount_type TEXT NOT NULL CHECK (discount_type IN ('percentage','fixed_amount')),
  discount_value NUMERIC NOT NULL CHECK (discount_value >= 0),
  minimum_order_amount NUMERIC NULL,
  maximum_discount_amount NUMERIC NULL,
  usage_limit INTEGER NULL,
  used_count INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  valid_from TEXT NOT NULL,
  valid_until TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products/images")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,slug,description) VALUES
	  ('cat-apparel','Apparel','apparel','Clothing and accessories'),
	  ('cat-audio','Audio','audio','Headphones and speakers'),
	  ('cat-home','Home & Living','home-living','Things for the house')`)

	tx.MustExec(`INSERT INTO products(id,category_id,name,slug,short_description,price,compare_price,sku,is_on_sale,sale_percentage,stock_quantity,low_stock_threshold,created_at) VALUES
	  ('prod-tee','cat-apparel','Classic Tee','classic-tee','Plain cotton tee',24.00,NULL,'TEE-001',0,NULL,120,10,'2024-01-02 10:00:00'),
	  ('prod-hoodie','cat-apparel','Zip Hoodie','zip-hoodie','Heavyweight fleece hoodie',69.00,89.00,'HOOD-001',1,20,45,10,'2024-01-03 10:00:00'),
	  ('prod-buds','cat-audio','Wireless Earbuds','wireless-earbuds','Bluetooth 5.3 earbuds',59.90,NULL,'BUDS-001',0,NULL,200,15,'2024-01-04 10:00:00'),
	  ('prod-lamp','cat-home','Desk Lamp','desk-lamp','Dimmable LED lamp',39.50,49.50,'LAMP-001',1,20,3,5,'2024-01-05 10:00:00')`)

	tx.MustExec(`INSERT INTO product_images(id,product_id,url,alt,is_primary,sort_order) VALUES
	  ('img-tee-1','prod-tee','/images/classic-tee.jpg','Classic Tee',1,0),
	  ('img-hoodie-1','prod-hoodie','/images/zip-hoodie.jpg','Zip Hoodie',1,0),
	  ('img-hoodie-2','prod-hoodie','/images/zip-hoodie-back.jpg','Zip Hoodie back',0,1),
	  ('img-buds-1','prod-buds','/images/wireless-earbuds.jpg','Wireless Earbuds',1,0)`)

	tx.MustExec(`INSERT INTO product_variants(id,product_id,name,value,price_modifier,stock_quantity,sku) VALUES
	  ('var-tee-m','prod-tee','Size','M',0,60,'TEE-001-M'),
	  ('var-tee-l','prod-tee','Size','L',2.00,40,'TEE-001-L'),
	  ('var-hoodie-l','prod-hoodie','Size','L',0,20,'HOOD-001-L')`)

	tx.MustExec(`INSERT INTO coupons(id,code,description,discount_type,discount_value,minimum_order_amount,maximum_discount_amount,usage_limit,valid_from,valid_until) VALUES
	  ('coup-welcome','WELCOME10','10% off your first order','percentage',10,NULL,25,NULL,'2024-01-01 00:00:00','2030-01-01 00:00:00'),
	  ('coup-ship','FLAT5','Five dollars off','fixed_amount',5,30,NULL,1000,'2024-01-01 00:00:00','2030-01-01 00:00:00')`)

	return tx.Commit()
}
