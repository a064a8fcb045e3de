package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/repos"
	"github.com/Iamtheusername112/eCommerce/internal/services"
)

func newCatalogService(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(
		repos.NewCategoryRepo(db),
		repos.NewProductRepo(db),
		repos.NewReviewRepo(db),
		nil,
	)
}

func TestListProductsPagination(t *testing.T) {
	db := seededDB(t)
	catalog := newCatalogService(db)
	ctx := context.Background()

	// Seed catalog has 4 active products.
	page1, err := catalog.ListProducts(ctx, services.ListParams{Page: 1, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page1.Products) != 3 {
		t.Fatalf("page 1: want 3 products, got %d", len(page1.Products))
	}
	pg := page1.Pagination
	if pg.Total != 4 || pg.TotalPages != 2 || !pg.HasNext || pg.HasPrev {
		t.Fatalf("page 1: bad pagination %+v", pg)
	}

	page2, err := catalog.ListProducts(ctx, services.ListParams{Page: 2, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.Products) != 1 {
		t.Fatalf("page 2: want 1 product, got %d", len(page2.Products))
	}
	pg = page2.Pagination
	if pg.HasNext || !pg.HasPrev {
		t.Fatalf("page 2: bad pagination %+v", pg)
	}

	// Pages past the end are empty, not errors.
	page9, err := catalog.ListProducts(ctx, services.ListParams{Page: 9, Limit: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page9.Products) != 0 {
		t.Fatalf("page 9: want empty page, got %d products", len(page9.Products))
	}
}

func TestListProductsFilters(t *testing.T) {
	db := seededDB(t)
	catalog := newCatalogService(db)
	ctx := context.Background()

	byCat, err := catalog.ListProducts(ctx, services.ListParams{Category: "apparel"})
	if err != nil {
		t.Fatal(err)
	}
	if byCat.Pagination.Total != 2 {
		t.Fatalf("apparel: want 2 products, got %d", byCat.Pagination.Total)
	}

	bySearch, err := catalog.ListProducts(ctx, services.ListParams{Search: "tee"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySearch.Products) != 1 || bySearch.Products[0].Slug != "classic-tee" {
		t.Fatalf("search: want classic-tee only, got %+v", bySearch.Products)
	}

	min, max := 30.0, 70.0
	byPrice, err := catalog.ListProducts(ctx, services.ListParams{
		MinPrice: &min, MaxPrice: &max, SortBy: "price", SortOrder: "asc",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(byPrice.Products) != 3 {
		t.Fatalf("price range: want 3 products, got %d", len(byPrice.Products))
	}
	wantOrder := []string{"desk-lamp", "wireless-earbuds", "zip-hoodie"}
	for i, slug := range wantOrder {
		if byPrice.Products[i].Slug != slug {
			t.Fatalf("price asc: position %d want %s, got %s", i, slug, byPrice.Products[i].Slug)
		}
	}
}

func TestListProductsExcludesInactive(t *testing.T) {
	db := seededDB(t)
	catalog := newCatalogService(db)
	prodRepo := repos.NewProductRepo(db)

	if err := prodRepo.SetActive("prod-tee", false); err != nil {
		t.Fatal(err)
	}

	page, err := catalog.ListProducts(context.Background(), services.ListParams{})
	if err != nil {
		t.Fatal(err)
	}
	if page.Pagination.Total != 3 {
		t.Fatalf("want 3 after deactivation, got %d", page.Pagination.Total)
	}
	for _, p := range page.Products {
		if p.Slug == "classic-tee" {
			t.Fatal("deactivated product leaked into listing")
		}
	}

	if _, err := catalog.GetProduct("classic-tee"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("detail for inactive product: want ErrNoRows, got %v", err)
	}
}

func TestProductDetailAggregates(t *testing.T) {
	db := seededDB(t)
	catalog := newCatalogService(db)

	d, err := catalog.GetProduct("zip-hoodie")
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Images) != 2 {
		t.Fatalf("want 2 images, got %d", len(d.Images))
	}
	if !d.Images[0].IsPrimary {
		t.Fatal("primary image should sort first")
	}
	if len(d.Variants) != 1 {
		t.Fatalf("want 1 variant, got %d", len(d.Variants))
	}
	if d.Rating != 0 || d.ReviewCount != 0 {
		t.Fatalf("no reviews yet: want 0/0, got %v/%d", d.Rating, d.ReviewCount)
	}

	revRepo := repos.NewReviewRepo(db)
	if err := revRepo.Upsert(d.ID, "u-alice", 4, "Nice", ""); err != nil {
		t.Fatal(err)
	}
	if err := revRepo.Upsert(d.ID, "u-bob", 5, "Great", ""); err != nil {
		t.Fatal(err)
	}

	d, err = catalog.GetProduct("zip-hoodie")
	if err != nil {
		t.Fatal(err)
	}
	if d.Rating != 4.5 || d.ReviewCount != 2 {
		t.Fatalf("want rating 4.5 from 2 reviews, got %v/%d", d.Rating, d.ReviewCount)
	}

	// A repeat submission replaces the old review instead of stacking.
	if err := revRepo.Upsert(d.ID, "u-bob", 3, "Changed my mind", ""); err != nil {
		t.Fatal(err)
	}
	d, err = catalog.GetProduct("zip-hoodie")
	if err != nil {
		t.Fatal(err)
	}
	if d.Rating != 3.5 || d.ReviewCount != 2 {
		t.Fatalf("want rating 3.5 from 2 reviews after resubmit, got %v/%d", d.Rating, d.ReviewCount)
	}
}

func TestCategoriesWithProductCount(t *testing.T) {
	db := seededDB(t)
	catalog := newCatalogService(db)

	rows, err := catalog.ListCategoriesWithCount()
	if err != nil {
		t.Fatal(err)
	}
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Slug] = r.ProductCount
	}
	if counts["apparel"] != 2 || counts["audio"] != 1 || counts["home-living"] != 1 {
		t.Fatalf("bad product counts: %+v", counts)
	}
}
