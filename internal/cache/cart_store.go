package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lapiazza/storefront_api/internal/models"
)

// LoadStatus reports which path a cart load took, so callers and tests can
// distinguish "loaded what was saved" from "fell back to a fresh cart".
type LoadStatus int

const (
	// StatusLoaded means a blob was present and parsed cleanly.
	StatusLoaded LoadStatus = iota
	// StatusMissing means no blob existed under the key.
	StatusMissing
	// StatusRecovered means a blob existed but was unreadable or had the
	// wrong shape and was discarded.
	StatusRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusMissing:
		return "missing"
	case StatusRecovered:
		return "recovered"
	}
	return "unknown"
}

// CartStore persists each cart as a single JSON blob under a fixed key.
// Carts persist indefinitely: blobs are written without expiry.
type CartStore struct {
	store     Store
	keyPrefix string
}

// NewCartStore creates a CartStore over the given key-value backend.
func NewCartStore(store Store, keyPrefix string) *CartStore {
	return &CartStore{store: store, keyPrefix: keyPrefix}
}

// key returns the storage key for a cart identifier.
func (c *CartStore) key(cartID string) string {
	return fmt.Sprintf("%s:%s", c.keyPrefix, cartID)
}

// Save serializes the cart and writes it under its key.
func (c *CartStore) Save(ctx context.Context, cart *models.Cart) error {
	blob, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := c.store.Set(ctx, c.key(cart.ID), string(blob), 0); err != nil {
		return fmt.Errorf("failed to write cart blob: %w", err)
	}
	return nil
}

// Load reads the cart blob for an identifier. It never fails: a missing
// key, a backend error, or a malformed blob all degrade to a nil cart with
// a status explaining which path was taken.
func (c *CartStore) Load(ctx context.Context, cartID string) (*models.Cart, LoadStatus) {
	blob, err := c.store.Get(ctx, c.key(cartID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, StatusMissing
		}
		return nil, StatusRecovered
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(blob), &cart); err != nil {
		return nil, StatusRecovered
	}
	// A parseable blob of the wrong shape yields a zero cart; treat it the
	// same as corrupt data.
	if cart.ID == "" {
		return nil, StatusRecovered
	}
	return &cart, StatusLoaded
}

// Delete removes the persisted blob for a cart.
func (c *CartStore) Delete(ctx context.Context, cartID string) error {
	return c.store.Delete(ctx, c.key(cartID))
}
