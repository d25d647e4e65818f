package cache

import (
	"context"
	"testing"

	"github.com/lapiazza/storefront_api/internal/models"
)

func TestCartStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(NewMemoryStore(), "cart")

	cart := &models.Cart{
		ID:          "c1",
		CheckoutURL: "/checkout",
		Lines: []models.CartLine{
			{
				ID:       "l1",
				Quantity: 2,
				Merchandise: models.Merchandise{
					ID:    "v-p1",
					Title: "Normal",
				},
				Cost: models.LineCost{TotalAmount: models.Money{Amount: "24.00", CurrencyCode: "EUR"}},
			},
		},
		Cost: models.CartCost{
			SubtotalAmount: models.Money{Amount: "24.00", CurrencyCode: "EUR"},
			TotalAmount:    models.Money{Amount: "24.00", CurrencyCode: "EUR"},
			TotalTaxAmount: models.Money{Amount: "0.00", CurrencyCode: "EUR"},
		},
		TotalQuantity: 2,
	}

	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, status := store.Load(ctx, "c1")
	if status != StatusLoaded {
		t.Fatalf("expected StatusLoaded, got %s", status)
	}
	if loaded.ID != "c1" || loaded.TotalQuantity != 2 || len(loaded.Lines) != 1 {
		t.Fatalf("unexpected loaded cart: %+v", loaded)
	}
	if loaded.Lines[0].Cost.TotalAmount.Amount != "24.00" {
		t.Fatalf("line cost did not survive the round trip: %+v", loaded.Lines[0])
	}
}

func TestCartStoreMissing(t *testing.T) {
	store := NewCartStore(NewMemoryStore(), "cart")

	cart, status := store.Load(context.Background(), "nope")
	if cart != nil || status != StatusMissing {
		t.Fatalf("expected nil/StatusMissing, got %+v/%s", cart, status)
	}
}

func TestCartStoreCorruptBlob(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()
	store := NewCartStore(backend, "cart")

	cases := map[string]string{
		"invalid json": "{oops",
		"wrong shape":  `{"foo": "bar"}`,
		"wrong type":   `"just a string"`,
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			if err := backend.Set(ctx, "cart:c1", blob, 0); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			cart, status := store.Load(ctx, "c1")
			if cart != nil || status != StatusRecovered {
				t.Fatalf("expected nil/StatusRecovered, got %+v/%s", cart, status)
			}
		})
	}
}

func TestCartStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore(NewMemoryStore(), "cart")

	if err := store.Save(ctx, &models.Cart{ID: "c1"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "c1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, status := store.Load(ctx, "c1"); status != StatusMissing {
		t.Fatalf("expected StatusMissing after delete, got %s", status)
	}
}
