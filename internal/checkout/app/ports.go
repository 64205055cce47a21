package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/techhub-store/internal/catalog/domain"
	"github.com/dwikikusuma/techhub-store/internal/checkout/domain"
)

type CartItem struct {
	ID        string
	SessionID string
	ProductID string
	Quantity  int
}

type CartStore interface {
	ListItems(ctx context.Context, sessionID string) ([]CartItem, error)
	ClearSession(ctx context.Context, sessionID string) error
}

type CatalogReader interface {
	FindProduct(ctx context.Context, productID string) (catalogdomain.Product, bool, error)
}

type PaymentRequest struct {
	Amount decimal.Decimal
	Card   domain.Card
}

type PaymentReceipt struct {
	Reference string
	CardLast4 string
}

type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req PaymentRequest) (PaymentReceipt, error)
}

type OrderLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type PlaceOrderRequest struct {
	SessionID  string
	Contact    domain.Contact
	Shipping   domain.Shipping
	Lines      []OrderLine
	Tax        decimal.Decimal
	PaymentRef string
	CardLast4  string
}

type PlacedOrder struct {
	ID        string
	Number    string
	Status    string
	Subtotal  decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (PlacedOrder, error)
}
