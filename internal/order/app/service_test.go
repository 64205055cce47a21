package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/techhub-store/internal/order/domain"
	"github.com/dwikikusuma/techhub-store/internal/order/infra/memory"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validRequest() domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		SessionID:  "s1",
		Customer:   domain.Customer{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"},
		Shipping:   domain.Address{Street: "12 Analytical Way", City: "London", State: "LN", ZipCode: "10001"},
		PaymentRef: "pay_123",
		CardLast4:  "4242",
		Tax:        dec("95.76"),
		Items: []domain.OrderItemRequest{
			{ProductID: "iphone-14-pro-max", Name: "iPhone 14 Pro Max", UnitPrice: dec("1099.00"), Quantity: 1},
			{ProductID: "wireless-charging-pad", Name: "Wireless Charging Pad", UnitPrice: dec("49.00"), Quantity: 2},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(memory.NewOrderRepo()).WithClock(fixedClock{t: at})
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, OrderStatusConfirmed, resp.Status)
	assert.Equal(t, "1197.00", resp.SubTotal.StringFixed(2))
	assert.Equal(t, "1292.76", resp.Total.StringFixed(2))
	assert.Equal(t, at, resp.CreatedAt)
	assert.Equal(t, "1772366400000", resp.Number)

	order, err := svc.GetOrder(ctx, "s1", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, order.ItemCount)
	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "98.00", order.OrderItems[1].LineTotal.StringFixed(2))
	assert.Equal(t, resp.ID, order.OrderItems[0].OrderID)
	assert.Equal(t, "4242", order.CardLast4)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewService(memory.NewOrderRepo())
	ctx := context.Background()

	cases := map[string]func(r *domain.CreateOrderRequest){
		"missing session": func(r *domain.CreateOrderRequest) { r.SessionID = " " },
		"no items":        func(r *domain.CreateOrderRequest) { r.Items = nil },
		"negative tax":    func(r *domain.CreateOrderRequest) { r.Tax = dec("-1") },
		"zero quantity":   func(r *domain.CreateOrderRequest) { r.Items[0].Quantity = 0 },
		"negative price":  func(r *domain.CreateOrderRequest) { r.Items[1].UnitPrice = dec("-0.01") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(&req)
			_, err := svc.CreateOrder(ctx, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetOrderIsScopedToSession(t *testing.T) {
	svc := NewService(memory.NewOrderRepo())
	ctx := context.Background()

	resp, err := svc.CreateOrder(ctx, validRequest())
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, "intruder", resp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrder(ctx, "s1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetOrder(ctx, "", resp.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
