package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

type sessionKey struct {
	sessionID string
	productID string
}

// CartRepo is a process-local cart store. One mutex guards items, the per
// session ordering and the (session, product) index together, so merges are atomic.
type CartRepo struct {
	mu        sync.RWMutex
	items     map[string]domain.CartItem
	bySession map[string][]string
	byProduct map[sessionKey]string
	newID     func() string
}

func NewCartRepo() *CartRepo {
	return &CartRepo{
		items:     make(map[string]domain.CartItem),
		bySession: make(map[string][]string),
		byProduct: make(map[sessionKey]string),
		newID:     uuid.NewString,
	}
}

func (r *CartRepo) AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if quantity > domain.MaxQuantity {
		return domain.CartItem{}, domain.ErrQuantityLimit
	}

	key := sessionKey{sessionID: sessionID, productID: productID}
	if id, ok := r.byProduct[key]; ok {
		item := r.items[id]
		if item.Quantity > domain.MaxQuantity-quantity {
			return domain.CartItem{}, domain.ErrQuantityLimit
		}
		item.Quantity += quantity
		r.items[id] = item
		return item, nil
	}

	item := domain.CartItem{
		ID:        r.newID(),
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
	r.items[item.ID] = item
	r.bySession[sessionID] = append(r.bySession[sessionID], item.ID)
	r.byProduct[key] = item.ID
	return item, nil
}

func (r *CartRepo) GetItem(ctx context.Context, itemID string) (domain.CartItem, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	return item, ok, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, itemID string, quantity int) (domain.CartItem, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return domain.CartItem{}, false, nil
	}
	item.Quantity = quantity
	r.items[itemID] = item
	return item, true, nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return false, nil
	}
	delete(r.items, itemID)
	delete(r.byProduct, sessionKey{sessionID: item.SessionID, productID: item.ProductID})

	ids := slices.DeleteFunc(r.bySession[item.SessionID], func(id string) bool { return id == itemID })
	if len(ids) == 0 {
		delete(r.bySession, item.SessionID)
	} else {
		r.bySession[item.SessionID] = ids
	}
	return true, nil
}

func (r *CartRepo) ClearSession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.bySession[sessionID] {
		item := r.items[id]
		delete(r.byProduct, sessionKey{sessionID: sessionID, productID: item.ProductID})
		delete(r.items, id)
	}
	delete(r.bySession, sessionID)
	return nil
}

func (r *CartRepo) ListItems(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[sessionID]
	out := make([]domain.CartItem, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}
