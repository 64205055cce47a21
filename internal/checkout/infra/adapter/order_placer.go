package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
	orderapp "github.com/dwikikusuma/techhub-store/internal/order/app"
	orderdomain "github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type OrderServicePlacer struct {
	svc *orderapp.Service
}

func NewOrderServicePlacer(svc *orderapp.Service) *OrderServicePlacer {
	return &OrderServicePlacer{svc: svc}
}

func (p *OrderServicePlacer) PlaceOrder(ctx context.Context, req checkoutapp.PlaceOrderRequest) (checkoutapp.PlacedOrder, error) {
	items := make([]orderdomain.OrderItemRequest, 0, len(req.Lines))
	for _, l := range req.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	resp, err := p.svc.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		SessionID: req.SessionID,
		Customer: orderdomain.Customer{
			Email:     req.Contact.Email,
			FirstName: req.Contact.FirstName,
			LastName:  req.Contact.LastName,
		},
		Shipping: orderdomain.Address{
			Street:  req.Shipping.Address,
			City:    req.Shipping.City,
			State:   req.Shipping.State,
			ZipCode: req.Shipping.ZipCode,
		},
		PaymentRef: req.PaymentRef,
		CardLast4:  req.CardLast4,
		Tax:        req.Tax,
		Items:      items,
	})
	if err != nil {
		return checkoutapp.PlacedOrder{}, err
	}

	return checkoutapp.PlacedOrder{
		ID:        resp.ID,
		Number:    resp.Number,
		Status:    resp.Status,
		Subtotal:  resp.SubTotal,
		Total:     resp.Total,
		CreatedAt: resp.CreatedAt,
	}, nil
}
