package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/lapiazza/storefront_api/internal/cache"
	"github.com/lapiazza/storefront_api/internal/models"
	"github.com/lapiazza/storefront_api/internal/repository"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// CartService owns all cart mutations. Every mutation recomputes the
// aggregate fields from the line sequence and then persists the cart as a
// single blob. Persistence is best effort: a failed write is logged and
// swallowed, a failed or corrupt read degrades to a fresh empty cart.
type CartService struct {
	catalogRepo *repository.CatalogRepository
	carts       *cache.CartStore
	currency    string
	checkoutURL string
}

// NewCartService constructs a CartService.
func NewCartService(catalogRepo *repository.CatalogRepository, carts *cache.CartStore, currency, checkoutURL string) *CartService {
	return &CartService{
		catalogRepo: catalogRepo,
		carts:       carts,
		currency:    currency,
		checkoutURL: checkoutURL,
	}
}

// GetCart loads the cart for a session, falling back to a fresh empty cart
// when nothing usable is stored. The status reports which path was taken.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, cache.LoadStatus) {
	cart, status := s.carts.Load(ctx, cartID)
	if cart == nil {
		cart = s.newCart(cartID)
	}
	if status == cache.StatusRecovered {
		log.Warn().Str("cart_id", cartID).Msg("Discarded unreadable cart blob, starting empty")
	}
	return cart, status
}

// AddLine adds a quantity of a variant to the cart. If the cart already
// holds a line for that variant the quantities merge into one line;
// otherwise a new line is appended with a fresh identifier and a snapshot
// of the product taken now.
func (s *CartService) AddLine(ctx context.Context, cartID, variantID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, utils.ErrInvalidQuantity
	}
	product, variant, err := s.catalogRepo.GetByVariantID(variantID)
	if err != nil {
		return nil, err
	}

	cart, _ := s.GetCart(ctx, cartID)

	if line := cart.LineByVariant(variantID); line != nil {
		line.Quantity += quantity
		line.Cost = s.lineCost(line)
	} else {
		newLine := models.CartLine{
			ID:       uuid.New().String(),
			Quantity: quantity,
			Merchandise: models.Merchandise{
				ID:      variant.ID,
				Title:   variant.Title,
				Product: *product,
			},
		}
		newLine.Cost = s.lineCost(&newLine)
		cart.Lines = append(cart.Lines, newLine)
	}

	s.recalculate(cart)
	s.persist(ctx, cart)
	return cart, nil
}

// RemoveLines drops all lines matching the given identifiers in one pass.
// Identifiers without a matching line are ignored, so the operation is
// idempotent.
func (s *CartService) RemoveLines(ctx context.Context, cartID string, lineIDs ...string) (*models.Cart, error) {
	cart, _ := s.GetCart(ctx, cartID)

	remove := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		remove[id] = true
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if !remove[line.ID] {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	s.recalculate(cart)
	s.persist(ctx, cart)
	return cart, nil
}

// UpdateLineQuantity sets the quantity of a line. A quantity below one
// removes the line entirely; a zero-quantity line is never retained.
func (s *CartService) UpdateLineQuantity(ctx context.Context, cartID, lineID string, quantity int) (*models.Cart, error) {
	cart, _ := s.GetCart(ctx, cartID)

	line := cart.LineByID(lineID)
	if line == nil {
		return nil, utils.ErrLineNotFound
	}

	if quantity < 1 {
		return s.RemoveLines(ctx, cartID, lineID)
	}

	line.Quantity = quantity
	line.Cost = s.lineCost(line)

	s.recalculate(cart)
	s.persist(ctx, cart)
	return cart, nil
}

// newCart builds an empty cart for a session.
func (s *CartService) newCart(cartID string) *models.Cart {
	cart := &models.Cart{
		ID:          cartID,
		CheckoutURL: s.checkoutURL,
		Lines:       []models.CartLine{},
	}
	s.recalculate(cart)
	return cart
}

// lineCost computes quantity times the unit price from the snapshot taken
// at add time. Later catalog price changes do not affect existing lines.
func (s *CartService) lineCost(line *models.CartLine) models.LineCost {
	unit := line.Merchandise.Product.MinPrice()
	for _, v := range line.Merchandise.Product.Variants {
		if v.ID == line.Merchandise.ID {
			unit = v.Price.Decimal()
			break
		}
	}
	total := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return models.LineCost{TotalAmount: models.NewMoney(total, s.currency)}
}

// recalculate recomputes the aggregate fields from the line sequence. The
// aggregates are never mutated anywhere else.
func (s *CartService) recalculate(cart *models.Cart) {
	subtotal := decimal.Zero
	quantity := 0
	for _, line := range cart.Lines {
		subtotal = subtotal.Add(line.Cost.TotalAmount.Decimal())
		quantity += line.Quantity
	}

	cart.Cost = models.CartCost{
		SubtotalAmount: models.NewMoney(subtotal, s.currency),
		TotalAmount:    models.NewMoney(subtotal, s.currency),
		TotalTaxAmount: models.NewMoney(decimal.Zero, s.currency),
	}
	cart.TotalQuantity = quantity
}

// persist writes the cart blob back to storage. Failures are logged and
// swallowed; the in-memory cart stays valid either way.
func (s *CartService) persist(ctx context.Context, cart *models.Cart) {
	if err := s.carts.Save(ctx, cart); err != nil {
		log.Warn().Err(err).Str("cart_id", cart.ID).Msg("Cart persistence failed")
	}
}
