package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount carried as a fixed 2-decimal string plus a
// currency code. Amounts are only ever produced through NewMoney so the
// string form stays canonical on the wire and in the persisted cart blob.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// NewMoney renders a decimal amount as Money with two decimal places.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount.StringFixed(2), CurrencyCode: currency}
}

// Decimal parses the amount back for arithmetic. A malformed amount is
// treated as zero so a damaged persisted blob cannot panic price math.
func (m Money) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Image is a product image reference.
type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Variant is a purchasable configuration of a product with its own
// identifier and price.
type Variant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Price            Money  `json:"price"`
	AvailableForSale bool   `json:"availableForSale"`
}

// Product represents one catalog entry. Every product carries at least one
// variant; the first variant is the default purchase unit.
type Product struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Handle           string    `json:"handle"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Vendor           string    `json:"vendor"`
	Tags             []string  `json:"tags"`
	AvailableForSale bool      `json:"availableForSale"`
	FeaturedImage    Image     `json:"featuredImage"`
	Images           []Image   `json:"images"`
	Variants         []Variant `json:"variants"`
	Price            Money     `json:"price"`
	CompareAtPrice   *Money    `json:"compareAtPrice,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DefaultVariant returns the first variant, the default purchase unit.
func (p *Product) DefaultVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}
	return &p.Variants[0]
}

// MinPrice returns the lowest variant price as a decimal. Products without
// variants fall back to the listed price.
func (p *Product) MinPrice() decimal.Decimal {
	if len(p.Variants) == 0 {
		return p.Price.Decimal()
	}
	min := p.Variants[0].Price.Decimal()
	for _, v := range p.Variants[1:] {
		if d := v.Price.Decimal(); d.LessThan(min) {
			min = d
		}
	}
	return min
}

// HasTag reports whether the product carries the tag, case-insensitively.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Collection is a named grouping of products, derived by grouping the
// catalog on category. It is computed on demand, never stored.
type Collection struct {
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Path        string    `json:"path"`
	Image       Image     `json:"image"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MenuItem is one entry of the storefront navigation menu.
type MenuItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// VendorCount pairs a vendor name with the number of products it supplies.
type VendorCount struct {
	Vendor       string `json:"vendor"`
	ProductCount int    `json:"productCount"`
}
