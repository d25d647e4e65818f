package models

// CartCost aggregates the computed totals of a cart. The fields are always
// a pure function of the current line sequence and are recomputed on every
// mutation, never set independently.
type CartCost struct {
	SubtotalAmount Money `json:"subtotalAmount"`
	TotalAmount    Money `json:"totalAmount"`
	TotalTaxAmount Money `json:"totalTaxAmount"`
}

// LineCost is the computed cost of a single cart line.
type LineCost struct {
	TotalAmount Money `json:"totalAmount"`
}

// Merchandise references the purchased variant together with a snapshot of
// its product taken at add time. The snapshot is intentionally decoupled
// from the catalog: a later price change does not touch existing lines.
type Merchandise struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Product Product `json:"product"`
}

// CartLine is one entry in a cart, referencing exactly one variant.
// Quantity is always >= 1; a line that would drop to zero is removed.
type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
	Cost        LineCost    `json:"cost"`
}

// Cart holds the line items of one client session. Lines are unique per
// variant identifier and keep their insertion order.
type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkoutUrl"`
	Lines         []CartLine `json:"lines"`
	Cost          CartCost   `json:"cost"`
	TotalQuantity int        `json:"totalQuantity"`
}

// LineByVariant returns the line holding the given variant, or nil.
func (c *Cart) LineByVariant(variantID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].Merchandise.ID == variantID {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineByID returns the line with the given line identifier, or nil.
func (c *Cart) LineByID(lineID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// IsEmpty reports whether the cart has no lines. "Empty" is derived from
// the line count, not stored.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
