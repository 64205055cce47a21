package adapter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/techhub-store/internal/cart/app"
	cartadapter "github.com/dwikikusuma/techhub-store/internal/cart/infra/adapter"
	cartmemory "github.com/dwikikusuma/techhub-store/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/techhub-store/internal/catalog/app"
	catalogmemory "github.com/dwikikusuma/techhub-store/internal/catalog/infra/memory"
	"github.com/dwikikusuma/techhub-store/internal/catalog/infra/seed"
	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
	"github.com/dwikikusuma/techhub-store/internal/checkout/domain"
	"github.com/dwikikusuma/techhub-store/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/techhub-store/internal/checkout/infra/payment"
	orderapp "github.com/dwikikusuma/techhub-store/internal/order/app"
	ordermemory "github.com/dwikikusuma/techhub-store/internal/order/infra/memory"
)

type stack struct {
	cart     *cartapp.Service
	orders   *orderapp.Service
	checkout *checkoutapp.Service
}

func newStack(t *testing.T) stack {
	t.Helper()
	ctx := context.Background()

	catalog := catalogapp.NewService(catalogmemory.NewProductRepo())
	_, err := seed.Load(ctx, catalog, seed.Default())
	require.NoError(t, err)

	cart := cartapp.NewService(cartmemory.NewCartRepo(), cartadapter.NewCatalogChecker(catalog))
	orders := orderapp.NewService(ordermemory.NewOrderRepo())

	return stack{
		cart:   cart,
		orders: orders,
		checkout: checkoutapp.NewService(checkoutapp.Deps{
			Cart:     adapter.NewCartServiceReader(cart),
			Catalog:  catalog,
			Orders:   adapter.NewOrderServicePlacer(orders),
			Payments: payment.NewSimulator(0),
		}),
	}
}

func TestCartSummaryLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	phone, err := s.cart.AddItem(ctx, "S1", "iphone-14-pro-max", 1)
	require.NoError(t, err)

	sum, err := s.checkout.Summarize(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "1186.92", sum.Total.StringFixed(2))

	pads, err := s.cart.AddItem(ctx, "S1", "wireless-charging-pad", 2)
	require.NoError(t, err)

	sum, err = s.checkout.Summarize(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "1197.00", sum.Subtotal.StringFixed(2))
	assert.Equal(t, "95.76", sum.Tax.StringFixed(2))
	assert.Equal(t, "1292.76", sum.Total.StringFixed(2))
	assert.Equal(t, 3, sum.ItemCount)

	removed, err := s.cart.RemoveItem(ctx, "S1", pads.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	sum, err = s.checkout.Summarize(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "1099.00", sum.Subtotal.StringFixed(2))
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, phone.ID, sum.Lines[0].ItemID)

	require.NoError(t, s.cart.ClearSession(ctx, "S1"))
	sum, err = s.checkout.Summarize(ctx, "S1")
	require.NoError(t, err)
	assert.True(t, sum.Empty())
	assert.True(t, sum.Total.IsZero())
}

func TestCheckoutPersistsOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	s := newStack(t)

	_, err := s.cart.AddItem(ctx, "S1", "iphone-14-pro-max", 1)
	require.NoError(t, err)
	_, err = s.cart.AddItem(ctx, "S1", "wireless-charging-pad", 2)
	require.NoError(t, err)
	_, err = s.cart.AddItem(ctx, "S2", "premium-phone-case", 1)
	require.NoError(t, err)

	conf, err := s.checkout.Checkout(ctx, domain.Request{
		SessionID: "S1",
		Contact:   domain.Contact{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		Shipping:  domain.Shipping{Address: "12 Analytical Way", City: "London", State: "LN", ZipCode: "10001"},
		Card:      domain.Card{Number: "4111-1111-1111-1111", Expiry: "09/29", CVV: "321", NameOnCard: "Ada Lovelace"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1292.76", conf.Total.StringFixed(2))
	assert.Equal(t, "1111", conf.CardLast4)
	assert.Equal(t, orderapp.OrderStatusConfirmed, conf.Status)

	order, err := s.orders.GetOrder(ctx, "S1", conf.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "95.76", order.Tax.StringFixed(2))
	assert.Equal(t, 3, order.ItemCount)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "98.00", order.OrderItems[1].LineTotal.StringFixed(2))

	_, err = s.orders.GetOrder(ctx, "S2", conf.OrderID)
	assert.ErrorIs(t, err, orderapp.ErrNotFound)

	items, err := s.cart.ListItems(ctx, "S1")
	require.NoError(t, err)
	assert.Empty(t, items)

	other, err := s.cart.ListItems(ctx, "S2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}
