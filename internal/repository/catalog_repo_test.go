package repository

import (
	"testing"

	"github.com/lapiazza/storefront_api/internal/utils"
)

func newSeededRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	return NewCatalogRepository(SeedProducts("EUR"))
}

func TestSeedCatalogShape(t *testing.T) {
	products := SeedProducts("EUR")
	if len(products) != 13 {
		t.Fatalf("expected 13 seed products, got %d", len(products))
	}
	for _, p := range products {
		dv := p.DefaultVariant()
		if dv == nil {
			t.Fatalf("product %s has no variants", p.ID)
		}
		if dv.ID != "v-"+p.ID || dv.Title != "Normal" {
			t.Fatalf("product %s default variant = %s/%s", p.ID, dv.ID, dv.Title)
		}
		if p.Price.CurrencyCode != "EUR" {
			t.Fatalf("product %s currency = %s", p.ID, p.Price.CurrencyCode)
		}
		if !p.HasTag("comida") {
			t.Fatalf("product %s misses the shared tag", p.ID)
		}
	}
}

func TestLookups(t *testing.T) {
	repo := newSeededRepo(t)

	p, err := repo.GetByHandle("pizza-pepperoni")
	if err != nil {
		t.Fatalf("GetByHandle failed: %v", err)
	}
	if p.ID != "p2" {
		t.Fatalf("expected p2, got %s", p.ID)
	}

	if _, err := repo.GetByHandle("no-such"); err != utils.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	owner, variant, err := repo.GetByVariantID("v-p7")
	if err != nil {
		t.Fatalf("GetByVariantID failed: %v", err)
	}
	if owner.ID != "p7" || variant.Title != "Normal" {
		t.Fatalf("unexpected variant resolution: %s / %s", owner.ID, variant.Title)
	}

	if _, _, err := repo.GetByVariantID("v-nope"); err != utils.ErrVariantNotFound {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestCollectionsDerivedFromCategories(t *testing.T) {
	repo := newSeededRepo(t)

	collections := repo.Collections()
	wantTitles := []string{"Pizzas", "Pastas", "Entrantes", "Postres"}
	wantHandles := []string{"pizzas", "pastas", "entrantes", "postres"}
	if len(collections) != len(wantTitles) {
		t.Fatalf("expected %d collections, got %d", len(wantTitles), len(collections))
	}
	for i, c := range collections {
		if c.Title != wantTitles[i] || c.Handle != wantHandles[i] {
			t.Fatalf("collection %d = %s/%s, want %s/%s", i, c.Title, c.Handle, wantTitles[i], wantHandles[i])
		}
		if c.Path != "/products?c="+c.Handle {
			t.Fatalf("collection %s path = %s", c.Title, c.Path)
		}
		if c.Image.URL == "" {
			t.Fatalf("collection %s missing image", c.Title)
		}
	}
}

func TestVendorsAndTags(t *testing.T) {
	repo := newSeededRepo(t)

	vendors := repo.Vendors()
	if len(vendors) != 1 || vendors[0].Vendor != DefaultVendor || vendors[0].ProductCount != 13 {
		t.Fatalf("unexpected vendors: %+v", vendors)
	}

	tags := repo.Tags()
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if seen[tag] {
			t.Fatalf("duplicate tag %s", tag)
		}
		seen[tag] = true
	}
	for _, must := range []string{"pizzas", "pastas", "comida", "tiramisú"} {
		if !seen[must] {
			t.Fatalf("missing tag %s in %v", must, tags)
		}
	}
}

func TestHighestPrice(t *testing.T) {
	repo := newSeededRepo(t)
	if got := repo.HighestPrice("EUR"); got.Amount != "16.00" || got.CurrencyCode != "EUR" {
		t.Fatalf("unexpected highest price: %+v", got)
	}
}
