// Package httpapi exposes the storefront over HTTP with gin.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	ServiceName string
	Logger      *zap.Logger
	CORSOrigins []string

	Catalog  CatalogService
	Cart     CartService
	Checkout CheckoutService
	Orders   OrderService

	// Ready reports whether the backing stores answer. Nil means always ready.
	Ready func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		otelgin.Middleware(cfg.ServiceName),
		RequestID(),
		RequestLogger(cfg.Logger),
		CORS(cfg.CORSOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readiness(cfg.Ready))

	catalog := NewCatalogHandler(cfg.Catalog)
	cart := NewCartHandler(cfg.Cart, cfg.Checkout)
	checkout := NewCheckoutHandler(cfg.Checkout, cfg.Orders)

	api := router.Group("/api")
	{
		api.GET("/products", catalog.ListProducts)
		api.GET("/products/facets", catalog.Facets)
		api.GET("/products/:id", catalog.GetProduct)
		api.GET("/products/category/:category", catalog.ListByCategory)

		api.GET("/cart/:sessionId", cart.GetCart)
		api.POST("/cart", cart.AddItem)
		api.PATCH("/cart/:itemId", cart.UpdateQuantity)
		api.DELETE("/cart/:itemId", cart.RemoveItem)
		api.DELETE("/cart/clear/:sessionId", cart.ClearCart)

		api.POST("/checkout", checkout.Checkout)
		api.GET("/orders/:id", checkout.GetOrder)
	}

	return router
}

func readiness(ready func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				_ = c.Error(err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
