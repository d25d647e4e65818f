package service

import (
	"github.com/lapiazza/storefront_api/internal/models"
	"github.com/lapiazza/storefront_api/internal/repository"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// Reserved collection handles with fixed product sets used by the
// storefront home page.
const (
	CollectionAll              = "all"
	CollectionHomepageCarousel = "hidden-homepage-carousel"
	CollectionFeatured         = "featured-products"
)

// RecommendationLimit caps the related-products list for a product page.
const RecommendationLimit = 4

// CatalogService provides catalog browsing and search on top of the
// immutable catalog repository. All operations are synchronous and free of
// side effects.
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
	currency    string
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(catalogRepo *repository.CatalogRepository, currency string) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo, currency: currency}
}

// Search applies the filter engine to the full catalog.
func (s *CatalogService) Search(q ProductQuery) []models.Product {
	return ParseProductQuery(q).Apply(s.catalogRepo.List())
}

// GetProduct returns a product by its URL slug.
func (s *CatalogService) GetProduct(handle string) (*models.Product, error) {
	return s.catalogRepo.GetByHandle(handle)
}

// Recommendations returns related products for a product page.
func (s *CatalogService) Recommendations(handle string) ([]models.Product, error) {
	p, err := s.catalogRepo.GetByHandle(handle)
	if err != nil {
		return nil, err
	}
	return s.catalogRepo.Recommendations(p.ID, RecommendationLimit), nil
}

// Collections returns the derived collection list.
func (s *CatalogService) Collections() []models.Collection {
	return s.catalogRepo.Collections()
}

// CollectionProducts returns the products of a collection with the filter
// engine applied. The reserved handles bypass filtering and return their
// fixed slices of the catalog.
func (s *CatalogService) CollectionProducts(handle string, q ProductQuery) ([]models.Product, error) {
	all := s.catalogRepo.List()

	switch handle {
	case CollectionHomepageCarousel:
		return firstN(all, 3), nil
	case CollectionFeatured:
		if len(all) <= 3 {
			return []models.Product{}, nil
		}
		return firstN(all[3:], 5), nil
	}

	products := all
	if handle != "" && handle != CollectionAll {
		products = s.catalogRepo.ByCategory(handle)
		if len(products) == 0 {
			return nil, utils.ErrCollectionNotFound
		}
	}

	return ParseProductQuery(q).Apply(products), nil
}

// Tags returns the distinct product tags.
func (s *CatalogService) Tags() []string {
	return s.catalogRepo.Tags()
}

// Vendors returns vendors with their product counts.
func (s *CatalogService) Vendors() []models.VendorCount {
	return s.catalogRepo.Vendors()
}

// HighestPrice returns the most expensive product price, used by the UI to
// bound its price-range slider.
func (s *CatalogService) HighestPrice() models.Money {
	return s.catalogRepo.HighestPrice(s.currency)
}

// Menu returns the static storefront navigation.
func (s *CatalogService) Menu() []models.MenuItem {
	return []models.MenuItem{
		{Title: "Inicio", Path: "/"},
		{Title: "Pizzas", Path: "/products?c=pizzas"},
		{Title: "Carta Completa", Path: "/products"},
	}
}

func firstN(products []models.Product, n int) []models.Product {
	if len(products) < n {
		n = len(products)
	}
	return products[:n]
}
