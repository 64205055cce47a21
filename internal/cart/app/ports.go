package app

import (
	"context"

	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

// CartRepo stores cart items keyed by opaque id and partitioned by session.
// Lookups report absence with ok=false rather than an error.
type CartRepo interface {
	// AddItem merges into the session's existing line for productID, or
	// creates one, in a single atomic step. It returns domain.ErrQuantityLimit
	// and leaves the line unchanged when the result would exceed domain.MaxQuantity.
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.CartItem, error)
	GetItem(ctx context.Context, itemID string) (item domain.CartItem, ok bool, err error)
	SetQuantity(ctx context.Context, itemID string, quantity int) (item domain.CartItem, ok bool, err error)
	RemoveItem(ctx context.Context, itemID string) (removed bool, err error)
	ClearSession(ctx context.Context, sessionID string) error
	// ListItems returns the session's items in the order they were first added.
	ListItems(ctx context.Context, sessionID string) ([]domain.CartItem, error)
}

// ProductChecker answers whether a product id refers to a catalog product.
type ProductChecker interface {
	ProductExists(ctx context.Context, productID string) (bool, error)
}
