package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (order domain.Order, ok bool, err error)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
