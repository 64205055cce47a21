package adapter

import (
	"context"

	catalogdomain "github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

type productFinder interface {
	FindProduct(ctx context.Context, id string) (catalogdomain.Product, bool, error)
}

// CatalogChecker answers cart product lookups from the catalog service.
type CatalogChecker struct {
	catalog productFinder
}

func NewCatalogChecker(catalog productFinder) *CatalogChecker {
	return &CatalogChecker{catalog: catalog}
}

func (c *CatalogChecker) ProductExists(ctx context.Context, productID string) (bool, error) {
	_, ok, err := c.catalog.FindProduct(ctx, productID)
	return ok, err
}
