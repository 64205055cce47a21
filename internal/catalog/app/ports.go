package app

import (
	"context"

	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

// ProductRepo stores products in insertion order. Get reports absence with
// ok=false rather than an error.
type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (p domain.Product, ok bool, err error)
	List(ctx context.Context) ([]domain.Product, error)
}
