package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/techhub-store/internal/order/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	// OrderStatusConfirmed marks an order whose payment was authorized.
	OrderStatusConfirmed = "CONFIRMED"
)

type Service struct {
	repo  OrderRepo
	clock Clock
	newID func() string
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo, clock: systemClock{}, newID: uuid.NewString}
}

// WithClock replaces the time source used for order numbers and timestamps.
func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return domain.OrderResponse{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if req.Tax.IsNegative() {
		return domain.OrderResponse{}, fmt.Errorf("%w: tax cannot be negative, got %s", ErrInvalidInput, req.Tax)
	}

	now := s.clock.Now()
	orderID := s.newID()

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	subTotal := decimal.Zero
	count := 0

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return domain.OrderResponse{}, fmt.Errorf("%w: item %d: unit price cannot be negative, got %s", ErrInvalidInput, i, item.UnitPrice)
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		orderItems = append(orderItems, domain.OrderItem{
			ID:        s.newID(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})

		subTotal = subTotal.Add(lineTotal)
		count += item.Quantity
	}

	order := domain.Order{
		ID:         orderID,
		Number:     strconv.FormatInt(now.UnixMilli(), 10),
		SessionID:  sessionID,
		Status:     OrderStatusConfirmed,
		Customer:   req.Customer,
		Shipping:   req.Shipping,
		PaymentRef: req.PaymentRef,
		CardLast4:  req.CardLast4,
		SubTotal:   subTotal,
		Tax:        req.Tax.Round(2),
		Total:      subTotal.Add(req.Tax).Round(2),
		ItemCount:  count,
		OrderItems: orderItems,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	createdOrder, err := s.repo.CreateOrderTx(ctx, order)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.OrderResponse{
		ID:        createdOrder.ID,
		Number:    createdOrder.Number,
		Status:    createdOrder.Status,
		SubTotal:  createdOrder.SubTotal,
		Total:     createdOrder.Total,
		CreatedAt: createdOrder.CreatedAt,
	}, nil
}

// GetOrder returns the order only to the session that placed it; any other
// caller gets ErrNotFound.
func (s *Service) GetOrder(ctx context.Context, sessionID, id string) (domain.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	id = strings.TrimSpace(id)
	if sessionID == "" {
		return domain.Order{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	if id == "" {
		return domain.Order{}, ErrNotFound
	}

	order, ok, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok || order.SessionID != sessionID {
		return domain.Order{}, ErrNotFound
	}
	return order, nil
}
