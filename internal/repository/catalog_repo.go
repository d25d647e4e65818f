package repository

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lapiazza/storefront_api/internal/models"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// CatalogRepository serves the immutable in-process product catalog. It is
// constructed once at startup and never mutated afterwards, so reads need
// no synchronization.
type CatalogRepository struct {
	products  []models.Product
	byHandle  map[string]int
	byVariant map[string]variantRef
}

type variantRef struct {
	product int
	variant int
}

// NewCatalogRepository builds lookup indexes over the given product set.
func NewCatalogRepository(products []models.Product) *CatalogRepository {
	r := &CatalogRepository{
		products:  products,
		byHandle:  make(map[string]int, len(products)),
		byVariant: make(map[string]variantRef),
	}
	for i, p := range products {
		r.byHandle[p.Handle] = i
		for j, v := range p.Variants {
			r.byVariant[v.ID] = variantRef{product: i, variant: j}
		}
	}
	return r
}

// List returns the full catalog in seed order. The returned slice is a
// copy; callers may reorder it freely.
func (r *CatalogRepository) List() []models.Product {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out
}

// GetByHandle returns the product with the given URL slug.
func (r *CatalogRepository) GetByHandle(handle string) (*models.Product, error) {
	i, ok := r.byHandle[handle]
	if !ok {
		return nil, utils.ErrProductNotFound
	}
	p := r.products[i]
	return &p, nil
}

// GetByVariantID resolves a variant identifier to its owning product and
// the variant itself.
func (r *CatalogRepository) GetByVariantID(variantID string) (*models.Product, *models.Variant, error) {
	ref, ok := r.byVariant[variantID]
	if !ok {
		return nil, nil, utils.ErrVariantNotFound
	}
	p := r.products[ref.product]
	v := p.Variants[ref.variant]
	return &p, &v, nil
}

// ByCategory returns the products of one category in seed order. The match
// is case-insensitive.
func (r *CatalogRepository) ByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Collections derives the collection list by grouping the catalog on the
// category field. It is computed on each call, not a stored relation.
func (r *CatalogRepository) Collections() []models.Collection {
	var order []string
	seen := make(map[string]bool)
	image := make(map[string]models.Image)
	updated := make(map[string]time.Time)
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			order = append(order, p.Category)
			image[p.Category] = p.FeaturedImage
			updated[p.Category] = p.UpdatedAt
		}
	}

	out := make([]models.Collection, 0, len(order))
	for _, cat := range order {
		handle := strings.ToLower(cat)
		out = append(out, models.Collection{
			Handle:      handle,
			Title:       cat,
			Description: "Los mejores " + handle + " de La Piazza",
			Path:        "/products?c=" + handle,
			Image:       image[cat],
			UpdatedAt:   updated[cat],
		})
	}
	return out
}

// Tags returns the distinct product tags in first-seen order.
func (r *CatalogRepository) Tags() []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range r.products {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// Vendors returns each vendor with its product count, ordered by vendor name.
func (r *CatalogRepository) Vendors() []models.VendorCount {
	counts := make(map[string]int)
	for _, p := range r.products {
		counts[p.Vendor]++
	}
	out := make([]models.VendorCount, 0, len(counts))
	for vendor, n := range counts {
		out = append(out, models.VendorCount{Vendor: vendor, ProductCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Vendor < out[j].Vendor })
	return out
}

// HighestPrice returns the most expensive variant price in the catalog.
func (r *CatalogRepository) HighestPrice(currency string) models.Money {
	max := decimal.Zero
	for _, p := range r.products {
		for _, v := range p.Variants {
			if d := v.Price.Decimal(); d.GreaterThan(max) {
				max = d
			}
		}
	}
	return models.NewMoney(max, currency)
}

// Recommendations returns up to limit products related to the given one:
// same-category products first, then the remainder of the catalog, never
// the product itself.
func (r *CatalogRepository) Recommendations(productID string, limit int) []models.Product {
	var self *models.Product
	for i := range r.products {
		if r.products[i].ID == productID {
			self = &r.products[i]
			break
		}
	}

	var out []models.Product
	appendFrom := func(sameCategory bool) {
		for _, p := range r.products {
			if len(out) >= limit {
				return
			}
			if p.ID == productID {
				continue
			}
			match := self != nil && strings.EqualFold(p.Category, self.Category)
			if match == sameCategory {
				out = append(out, p)
			}
		}
	}
	appendFrom(true)
	appendFrom(false)
	return out
}
