package service

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lapiazza/storefront_api/internal/models"
)

// Supported sort keys.
const (
	SortPrice     = "PRICE"
	SortTitle     = "TITLE"
	SortCreatedAt = "CREATED_AT"
)

// ProductQuery is the loosely typed query descriptor accepted at the system
// boundary. Query may be a URL-parameter string (minPrice=, maxPrice=, b=,
// t=, q=) or a pseudo-query string with inline tokens (variants.price:>=x,
// vendor:"...", tag:x, q:"..."), with free text as the residual.
type ProductQuery struct {
	Query   string `form:"query" json:"query"`
	SortKey string `form:"sortKey" json:"sortKey"`
	Reverse bool   `form:"reverse" json:"reverse"`
}

// Filter is the structured form of a ProductQuery. It is built exactly once
// at the boundary by ParseProductQuery; everything downstream works with
// explicit fields instead of re-parsing strings.
type Filter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Vendor   string
	Tag      string
	Text     string
	SortKey  string
	Reverse  bool
}

var (
	reMinPriceToken = regexp.MustCompile(`variants\.price:>=([\d.]+)`)
	reMaxPriceToken = regexp.MustCompile(`variants\.price:<=([\d.]+)`)
	reVendorQuoted  = regexp.MustCompile(`vendor:"([^"]+)"`)
	reVendorBare    = regexp.MustCompile(`vendor:(\S+)`)
	reTagToken      = regexp.MustCompile(`tag:(\S+)`)
	reTextQuoted    = regexp.MustCompile(`q:"([^"]+)"`)

	// Used to strip recognized tokens before treating the rest as free text.
	rePriceStrip = regexp.MustCompile(`variants\.price:[<>]=\d+(\.\d+)?`)
)

// ParseProductQuery extracts the structured filter from a query descriptor.
// URL parameters take precedence over inline tokens for every field.
func ParseProductQuery(q ProductQuery) Filter {
	raw := q.Query
	f := Filter{SortKey: q.SortKey, Reverse: q.Reverse}

	// The string is treated as URL parameters only when it contains '='.
	var params url.Values
	if strings.Contains(raw, "=") {
		params, _ = url.ParseQuery(raw)
	}

	f.MinPrice = parsePrice(params.Get("minPrice"), reMinPriceToken, raw)
	f.MaxPrice = parsePrice(params.Get("maxPrice"), reMaxPriceToken, raw)

	f.Vendor = params.Get("b")
	if f.Vendor == "" {
		if m := reVendorQuoted.FindStringSubmatch(raw); m != nil {
			f.Vendor = m[1]
		} else if m := reVendorBare.FindStringSubmatch(raw); m != nil {
			f.Vendor = m[1]
		}
	}

	f.Tag = params.Get("t")
	if f.Tag == "" {
		if m := reTagToken.FindStringSubmatch(raw); m != nil {
			f.Tag = m[1]
		}
	}

	f.Text = params.Get("q")
	if f.Text == "" {
		if m := reTextQuoted.FindStringSubmatch(raw); m != nil {
			f.Text = m[1]
		} else if residual := stripTokens(raw); !strings.Contains(residual, "=") {
			// The leftover after stripping recognized tokens is the raw
			// search text. A leftover still holding '=' is an unconsumed
			// URL-parameter string, not something the user typed to search.
			f.Text = residual
		}
	}
	f.Text = strings.TrimSpace(f.Text)

	return f
}

// stripTokens removes every recognized inline token from a pseudo-query
// string, leaving only free text.
func stripTokens(raw string) string {
	out := rePriceStrip.ReplaceAllString(raw, "")
	out = reVendorQuoted.ReplaceAllString(out, "")
	out = reVendorBare.ReplaceAllString(out, "")
	out = reTagToken.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// parsePrice resolves a price bound: the URL parameter wins, otherwise the
// inline token. Unparsable values are ignored.
func parsePrice(param string, tokenRe *regexp.Regexp, raw string) *decimal.Decimal {
	s := param
	if s == "" {
		if m := tokenRe.FindStringSubmatch(raw); m != nil {
			s = m[1]
		}
	}
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// Apply filters and sorts a product list. It is a pure function: the input
// slice is never mutated and the same inputs always produce the same
// ordered output. Each predicate is an independent narrowing pass.
func (f Filter) Apply(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	if f.MinPrice != nil {
		out = keep(out, func(p *models.Product) bool {
			return p.MinPrice().GreaterThanOrEqual(*f.MinPrice)
		})
	}
	if f.MaxPrice != nil {
		out = keep(out, func(p *models.Product) bool {
			return p.MinPrice().LessThanOrEqual(*f.MaxPrice)
		})
	}
	if f.Vendor != "" {
		// Exact case-insensitive match only.
		out = keep(out, func(p *models.Product) bool {
			return strings.EqualFold(p.Vendor, f.Vendor)
		})
	}
	if f.Tag != "" {
		out = keep(out, func(p *models.Product) bool {
			return p.HasTag(f.Tag)
		})
	}
	if f.Text != "" {
		term := strings.ToLower(f.Text)
		out = keep(out, func(p *models.Product) bool {
			return strings.Contains(strings.ToLower(p.Title), term) ||
				strings.Contains(strings.ToLower(p.Description), term) ||
				strings.Contains(strings.ToLower(p.Category), term)
		})
	}

	f.sortProducts(out)
	return out
}

func keep(products []models.Product, pred func(*models.Product) bool) []models.Product {
	out := products[:0]
	for i := range products {
		if pred(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}

// sortProducts orders the slice by the requested key, ascending unless
// Reverse is set. Without a sort key the input order is preserved.
func (f Filter) sortProducts(products []models.Product) {
	var less func(a, b *models.Product) bool
	switch f.SortKey {
	case SortPrice:
		less = func(a, b *models.Product) bool { return a.MinPrice().LessThan(b.MinPrice()) }
	case SortTitle:
		less = func(a, b *models.Product) bool { return a.Title < b.Title }
	case SortCreatedAt:
		less = func(a, b *models.Product) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		if f.Reverse {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}
