package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

type CatalogService interface {
	Browse(ctx context.Context, f catalogdomain.Filter) ([]catalogdomain.Product, error)
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]catalogdomain.Product, error)
	Facets(ctx context.Context) (catalogdomain.Facets, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/products?brand=&storage=&priceRange=&sort=
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	sort, ok := catalogdomain.ParseSortOrder(c.Query("sort"))
	if !ok {
		respondInvalid(c, "unknown sort order", map[string]string{
			"sort": "must be one of featured, price-low, price-high, newest, best-selling",
		})
		return
	}

	filter := catalogdomain.Filter{
		Brands:   queryList(c, "brand"),
		Storages: queryList(c, "storage"),
		Sort:     sort,
	}
	for _, raw := range queryList(c, "priceRange") {
		r, ok := catalogdomain.ParsePriceRange(raw)
		if !ok {
			respondInvalid(c, "unknown price range", map[string]string{
				"priceRange": "must be one of under-200, 200-500, 500-800, over-800",
			})
			return
		}
		filter.PriceRanges = append(filter.PriceRanges, r)
	}

	products, err := h.svc.Browse(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductDTOs(products))
}

// GET /api/products/facets
func (h *CatalogHandler) Facets(c *gin.Context) {
	f, err := h.svc.Facets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facetsDTO{Brands: f.Brands, Storages: f.Storages})
}

// GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductDTO(p))
}

// GET /api/products/category/:category
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	products, err := h.svc.ListByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductDTOs(products))
}

// queryList accepts both repeated keys and comma separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
