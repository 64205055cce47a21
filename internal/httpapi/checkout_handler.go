package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutdomain "github.com/dwikikusuma/techhub-store/internal/checkout/domain"
	orderdomain "github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type CheckoutService interface {
	SummaryService
	Checkout(ctx context.Context, req checkoutdomain.Request) (checkoutdomain.Confirmation, error)
}

type OrderService interface {
	GetOrder(ctx context.Context, sessionID, id string) (orderdomain.Order, error)
}

type CheckoutHandler struct {
	checkout CheckoutService
	orders   OrderService
}

func NewCheckoutHandler(checkout CheckoutService, orders OrderService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders}
}

// POST /api/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		msg, details := bindingDetails(err)
		respondInvalid(c, msg, details)
		return
	}

	conf, err := h.checkout.Checkout(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toConfirmationDTO(conf))
}

// GET /api/orders/:id?sessionId=
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	sessionID := firstNonBlank(c.Query("sessionId"), c.GetHeader(headerSessionID))
	order, err := h.orders.GetOrder(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTO(order))
}
