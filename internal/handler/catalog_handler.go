package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lapiazza/storefront_api/internal/service"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// CatalogHandler handles catalog browsing and search endpoints.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// productQuery builds the query descriptor from the request. An explicit
// `query` parameter is passed through as-is (it may carry inline tokens);
// otherwise the raw query string itself is the descriptor, so minPrice=,
// maxPrice=, b=, t= and q= work directly as request parameters.
func productQuery(c *gin.Context) service.ProductQuery {
	raw := c.Query("query")
	if raw == "" {
		raw = c.Request.URL.RawQuery
	}

	sortKey := c.Query("sortKey")
	switch sortKey {
	case service.SortPrice, service.SortTitle, service.SortCreatedAt:
	default:
		sortKey = ""
	}

	return service.ProductQuery{
		Query:   raw,
		SortKey: sortKey,
		Reverse: c.Query("reverse") == "true",
	}
}

// singlePage is the continuation stub for the one-page catalog.
func singlePage() utils.PageInfo {
	return utils.PageInfo{HasNextPage: false, HasPreviousPage: false, EndCursor: ""}
}

// GetProducts returns the catalog filtered and sorted by the query.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products := h.catalogService.Search(productQuery(c))
	utils.SuccessWithPageInfo(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	}, singlePage())
}

// GetProduct returns a single product by handle.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("handle"))
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "No product with that handle")
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product": product,
	})
}

// GetRecommendations returns related products for a product page.
func (h *CatalogHandler) GetRecommendations(c *gin.Context) {
	products, err := h.catalogService.Recommendations(c.Param("handle"))
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "No product with that handle")
		return
	}
	utils.Success(c, 200, "Recommendations retrieved successfully", gin.H{
		"products": products,
	})
}

// GetCollections returns the derived collection list.
func (h *CatalogHandler) GetCollections(c *gin.Context) {
	utils.Success(c, 200, "Collections retrieved successfully", gin.H{
		"collections": h.catalogService.Collections(),
	})
}

// GetCollectionProducts returns the products of one collection, filtered
// and sorted by the query.
func (h *CatalogHandler) GetCollectionProducts(c *gin.Context) {
	products, err := h.catalogService.CollectionProducts(c.Param("handle"), productQuery(c))
	if err != nil {
		if errors.Is(err, utils.ErrCollectionNotFound) {
			utils.Error(c, 404, "COLLECTION_NOT_FOUND", "No collection with that handle")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get collection products")
		return
	}
	utils.SuccessWithPageInfo(c, 200, "Collection products retrieved successfully", gin.H{
		"products": products,
	}, singlePage())
}

// GetTags returns the distinct product tags.
func (h *CatalogHandler) GetTags(c *gin.Context) {
	utils.Success(c, 200, "Tags retrieved successfully", gin.H{
		"tags": h.catalogService.Tags(),
	})
}

// GetVendors returns the vendors with product counts.
func (h *CatalogHandler) GetVendors(c *gin.Context) {
	utils.Success(c, 200, "Vendors retrieved successfully", gin.H{
		"vendors": h.catalogService.Vendors(),
	})
}

// GetMenu returns the storefront navigation menu.
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	utils.Success(c, 200, "Menu retrieved successfully", gin.H{
		"menu": h.catalogService.Menu(),
	})
}

// GetPriceRange returns the highest product price for UI slider bounds.
func (h *CatalogHandler) GetPriceRange(c *gin.Context) {
	utils.Success(c, 200, "Price range retrieved successfully", gin.H{
		"highestPrice": h.catalogService.HighestPrice(),
	})
}
