package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dwikikusuma/techhub-store/internal/order/domain"
)

type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{orders: make(map[string]domain.Order)}
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.Order{}, fmt.Errorf("order %s already exists", order.ID)
	}
	order.OrderItems = slices.Clone(order.OrderItems)
	r.orders[order.ID] = order
	return order, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	order.OrderItems = slices.Clone(order.OrderItems)
	return order, true, nil
}
