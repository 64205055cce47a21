package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/techhub-store/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) ListItems(ctx context.Context, sessionID string) ([]checkoutapp.CartItem, error) {
	items, err := r.svc.ListItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	out := make([]checkoutapp.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, checkoutapp.CartItem{
			ID:        it.ID,
			SessionID: it.SessionID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return out, nil
}

func (r *CartServiceReader) ClearSession(ctx context.Context, sessionID string) error {
	return r.svc.ClearSession(ctx, sessionID)
}
