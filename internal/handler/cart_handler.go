package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lapiazza/storefront_api/internal/service"
	"github.com/lapiazza/storefront_api/internal/utils"
)

// CartIDHeader carries the client session's cart identifier. Clients that
// send nothing share the default demo cart.
const CartIDHeader = "X-Cart-Id"

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartService   *service.CartService
	defaultCartID string
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService, defaultCartID string) *CartHandler {
	return &CartHandler{cartService: cartService, defaultCartID: defaultCartID}
}

// cartID resolves the session cart identifier from the request.
func (h *CartHandler) cartID(c *gin.Context) string {
	id := c.GetHeader(CartIDHeader)
	if id == "" {
		id = h.defaultCartID
	}
	c.Set("cart_id", id)
	return id
}

// GetCart returns the session cart, loading it from storage if needed.
// The source field reports whether the cart was loaded, newly created, or
// recovered from a corrupt blob.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, status := h.cartService.GetCart(c.Request.Context(), h.cartID(c))
	utils.Success(c, 200, "Cart retrieved successfully", gin.H{
		"cart":   cart,
		"source": status.String(),
	})
}

type addLineRequest struct {
	MerchandiseID string `json:"merchandiseId" binding:"required"`
	Quantity      int    `json:"quantity"`
}

// AddLine adds a variant to the cart, merging into an existing line when
// the variant is already present.
func (h *CartHandler) AddLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "merchandiseId is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartService.AddLine(c.Request.Context(), h.cartID(c), req.MerchandiseID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrVariantNotFound):
			utils.Error(c, 404, "VARIANT_NOT_FOUND", "No product owns that variant")
		case errors.Is(err, utils.ErrInvalidQuantity):
			utils.Error(c, 400, "INVALID_QUANTITY", "Quantity must be at least 1")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to add to cart")
		}
		return
	}

	utils.Success(c, 200, "Added to cart", gin.H{"cart": cart})
}

type removeLinesRequest struct {
	LineIDs []string `json:"lineIds" binding:"required"`
}

// RemoveLines drops the given lines from the cart. Unknown line IDs are
// ignored, so repeating the call is a no-op.
func (h *CartHandler) RemoveLines(c *gin.Context) {
	var req removeLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "lineIds is required")
		return
	}

	cart, err := h.cartService.RemoveLines(c.Request.Context(), h.cartID(c), req.LineIDs...)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove from cart")
		return
	}

	utils.Success(c, 200, "Removed from cart", gin.H{"cart": cart})
}

type updateLineRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateLine sets a line's quantity. A quantity below one removes the line.
func (h *CartHandler) UpdateLine(c *gin.Context) {
	var req updateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "quantity is required")
		return
	}

	cart, err := h.cartService.UpdateLineQuantity(c.Request.Context(), h.cartID(c), c.Param("lineId"), *req.Quantity)
	if err != nil {
		if errors.Is(err, utils.ErrLineNotFound) {
			utils.Error(c, 404, "LINE_NOT_FOUND", "No cart line with that id")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update cart")
		return
	}

	utils.Success(c, 200, "Cart updated", gin.H{"cart": cart})
}
