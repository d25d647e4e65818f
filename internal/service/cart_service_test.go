package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lapiazza/storefront_api/internal/cache"
	"github.com/lapiazza/storefront_api/internal/models"
	"github.com/lapiazza/storefront_api/internal/repository"
	"github.com/lapiazza/storefront_api/internal/utils"
)

const testCartID = "test-cart"

func newTestCartService(t *testing.T) (*CartService, *cache.MemoryStore) {
	t.Helper()
	catalog := repository.NewCatalogRepository([]models.Product{
		testProduct("p1", "Pizza Margarita", "12.00", "pizza"),
		testProduct("p2", "Tiramisu", "6.50", "postre"),
	})
	store := cache.NewMemoryStore()
	carts := cache.NewCartStore(store, "cart")
	return NewCartService(catalog, carts, "EUR", "/checkout"), store
}

func assertInvariants(t *testing.T, cart *models.Cart) {
	t.Helper()
	quantity := 0
	subtotal := models.Money{Amount: "0.00", CurrencyCode: "EUR"}.Decimal()
	for _, line := range cart.Lines {
		if line.Quantity < 1 {
			t.Fatalf("line %s retained with quantity %d", line.ID, line.Quantity)
		}
		quantity += line.Quantity
		subtotal = subtotal.Add(line.Cost.TotalAmount.Decimal())
	}
	if cart.TotalQuantity != quantity {
		t.Fatalf("totalQuantity = %d, want %d", cart.TotalQuantity, quantity)
	}
	if got := cart.Cost.SubtotalAmount.Decimal(); !got.Equal(subtotal) {
		t.Fatalf("subtotal = %s, want %s", got, subtotal)
	}
}

func TestAddLineMergesByVariant(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	if _, err := svc.AddLine(ctx, testCartID, "v-p1", 2); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	cart, err := svc.AddLine(ctx, testCartID, "v-p1", 3)
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Lines[0].Quantity)
	}
	if got := cart.Lines[0].Cost.TotalAmount.Amount; got != "60.00" {
		t.Fatalf("expected line cost 60.00, got %s", got)
	}
	assertInvariants(t, cart)
}

func TestAddLineUnknownVariant(t *testing.T) {
	svc, _ := newTestCartService(t)

	_, err := svc.AddLine(context.Background(), testCartID, "v-nope", 1)
	if err != utils.ErrVariantNotFound {
		t.Fatalf("expected ErrVariantNotFound, got %v", err)
	}
}

func TestAddLineRejectsNonPositiveQuantity(t *testing.T) {
	svc, _ := newTestCartService(t)

	_, err := svc.AddLine(context.Background(), testCartID, "v-p1", 0)
	if err != utils.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestRemoveLinesIsIdempotent(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart, err := svc.AddLine(ctx, testCartID, "v-p1", 1)
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	if _, err := svc.AddLine(ctx, testCartID, "v-p2", 2); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	lineID := cart.Lines[0].ID

	first, err := svc.RemoveLines(ctx, testCartID, lineID, "absent-id")
	if err != nil {
		t.Fatalf("RemoveLines failed: %v", err)
	}
	second, err := svc.RemoveLines(ctx, testCartID, lineID, "absent-id")
	if err != nil {
		t.Fatalf("RemoveLines failed: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("removing twice changed the cart:\n%s\nvs\n%s", a, b)
	}
	if len(second.Lines) != 1 || second.Lines[0].Merchandise.ID != "v-p2" {
		t.Fatalf("unexpected remaining lines: %+v", second.Lines)
	}
	assertInvariants(t, second)
}

func TestUpdateLineQuantity(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	cart, err := svc.AddLine(ctx, testCartID, "v-p2", 1)
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	lineID := cart.Lines[0].ID

	t.Run("sets quantity and recomputes cost", func(t *testing.T) {
		cart, err := svc.UpdateLineQuantity(ctx, testCartID, lineID, 4)
		if err != nil {
			t.Fatalf("UpdateLineQuantity failed: %v", err)
		}
		if cart.Lines[0].Quantity != 4 {
			t.Fatalf("expected quantity 4, got %d", cart.Lines[0].Quantity)
		}
		if got := cart.Lines[0].Cost.TotalAmount.Amount; got != "26.00" {
			t.Fatalf("expected line cost 26.00, got %s", got)
		}
		assertInvariants(t, cart)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		cart, err := svc.UpdateLineQuantity(ctx, testCartID, lineID, 0)
		if err != nil {
			t.Fatalf("UpdateLineQuantity failed: %v", err)
		}
		if cart.LineByID(lineID) != nil {
			t.Fatal("line still present after update to zero")
		}
		if len(cart.Lines) != 0 {
			t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
		}
		assertInvariants(t, cart)
	})

	t.Run("unknown line", func(t *testing.T) {
		_, err := svc.UpdateLineQuantity(ctx, testCartID, "absent-id", 2)
		if err != utils.ErrLineNotFound {
			t.Fatalf("expected ErrLineNotFound, got %v", err)
		}
	})
}

func TestCartPersistRoundTrip(t *testing.T) {
	svc, store := newTestCartService(t)
	ctx := context.Background()

	if _, err := svc.AddLine(ctx, testCartID, "v-p1", 2); err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}
	saved, err := svc.AddLine(ctx, testCartID, "v-p2", 1)
	if err != nil {
		t.Fatalf("AddLine failed: %v", err)
	}

	// A second service over the same backend must see the identical cart.
	catalog := repository.NewCatalogRepository([]models.Product{
		testProduct("p1", "Pizza Margarita", "12.00", "pizza"),
		testProduct("p2", "Tiramisu", "6.50", "postre"),
	})
	reloadedSvc := NewCartService(catalog, cache.NewCartStore(store, "cart"), "EUR", "/checkout")
	reloaded, status := reloadedSvc.GetCart(ctx, testCartID)
	if status != cache.StatusLoaded {
		t.Fatalf("expected StatusLoaded, got %s", status)
	}

	a, _ := json.Marshal(saved)
	b, _ := json.Marshal(reloaded)
	if string(a) != string(b) {
		t.Fatalf("reloaded cart differs:\n%s\nvs\n%s", a, b)
	}
}

func TestCorruptBlobRecoversToEmptyCart(t *testing.T) {
	svc, store := newTestCartService(t)
	ctx := context.Background()

	if err := store.Set(ctx, "cart:"+testCartID, "{not json", 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cart, status := svc.GetCart(ctx, testCartID)
	if status != cache.StatusRecovered {
		t.Fatalf("expected StatusRecovered, got %s", status)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
	assertInvariants(t, cart)
}

func TestFreshCartWhenNothingStored(t *testing.T) {
	svc, _ := newTestCartService(t)

	cart, status := svc.GetCart(context.Background(), testCartID)
	if status != cache.StatusMissing {
		t.Fatalf("expected StatusMissing, got %s", status)
	}
	if !cart.IsEmpty() || cart.ID != testCartID || cart.CheckoutURL != "/checkout" {
		t.Fatalf("unexpected fresh cart: %+v", cart)
	}
	if cart.Cost.SubtotalAmount.Amount != "0.00" {
		t.Fatalf("expected zero subtotal, got %s", cart.Cost.SubtotalAmount.Amount)
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	svc, store := newTestCartService(t)
	store.FailWrites = true

	cart, err := svc.AddLine(context.Background(), testCartID, "v-p1", 1)
	if err != nil {
		t.Fatalf("AddLine surfaced a storage error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected the in-memory cart to hold the line, got %d", len(cart.Lines))
	}
}
