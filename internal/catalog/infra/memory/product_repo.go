package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dwikikusuma/techhub-store/internal/catalog/app"
	"github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

// ProductRepo keeps products in insertion order. Reads hand out clones so
// callers can never mutate stored products.
type ProductRepo struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{byID: make(map[string]domain.Product)}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return domain.Product{}, fmt.Errorf("%w: %q", app.ErrDuplicate, p.ID)
	}
	r.byID[p.ID] = p.Clone()
	r.order = append(r.order, p.ID)
	return p.Clone(), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, false, nil
	}
	return p.Clone(), true, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out, nil
}
