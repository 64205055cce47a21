package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/dwikikusuma/techhub-store/internal/cart/domain"
	checkoutdomain "github.com/dwikikusuma/techhub-store/internal/checkout/domain"
)

const headerSessionID = "X-Session-Id"

type CartService interface {
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (cartdomain.CartItem, error)
	UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (cartdomain.CartItem, bool, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type SummaryService interface {
	Summarize(ctx context.Context, sessionID string) (checkoutdomain.Summary, error)
}

type CartHandler struct {
	cart    CartService
	summary SummaryService
}

func NewCartHandler(cart CartService, summary SummaryService) *CartHandler {
	return &CartHandler{cart: cart, summary: summary}
}

// GET /api/cart/:sessionId
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respondSummary(c, c.Param("sessionId"))
}

// POST /api/cart
// body: { "productId": "...", "quantity": 1, "sessionId": "..." }
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg, details := bindingDetails(err)
		respondInvalid(c, msg, details)
		return
	}

	qty := cartdomain.DefaultQuantity
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if _, err := h.cart.AddItem(c.Request.Context(), req.SessionID, req.ProductID, qty); err != nil {
		respondError(c, err)
		return
	}
	h.respondSummary(c, req.SessionID)
}

// PATCH /api/cart/:itemId
// body: { "quantity": 0, "sessionId": "..." }; quantity 0 removes the item.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg, details := bindingDetails(err)
		respondInvalid(c, msg, details)
		return
	}

	var err error
	if *req.Quantity == 0 {
		_, err = h.cart.RemoveItem(c.Request.Context(), req.SessionID, c.Param("itemId"))
	} else {
		_, _, err = h.cart.UpdateQuantity(c.Request.Context(), req.SessionID, c.Param("itemId"), *req.Quantity)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondSummary(c, req.SessionID)
}

// DELETE /api/cart/:itemId
// The session comes from the JSON body, the sessionId query or X-Session-Id.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		msg, details := bindingDetails(err)
		respondInvalid(c, msg, details)
		return
	}

	sessionID := firstNonBlank(req.SessionID, c.Query("sessionId"), c.GetHeader(headerSessionID))
	if sessionID == "" {
		respondInvalid(c, "request validation failed", map[string]string{"sessionId": "is required"})
		return
	}

	if _, err := h.cart.RemoveItem(c.Request.Context(), sessionID, c.Param("itemId")); err != nil {
		respondError(c, err)
		return
	}
	h.respondSummary(c, sessionID)
}

// DELETE /api/cart/clear/:sessionId
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if err := h.cart.ClearSession(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}
	h.respondSummary(c, sessionID)
}

func (h *CartHandler) respondSummary(c *gin.Context, sessionID string) {
	s, err := h.summary.Summarize(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartSummaryDTO(s))
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
