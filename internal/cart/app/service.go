package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/techhub-store/internal/cart/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownProduct rejects adds for ids the catalog does not know.
	ErrUnknownProduct = errors.New("product not found")
)

type Service struct {
	repo     CartRepo
	products ProductChecker
	locks    *keyedMutex
}

func NewService(repo CartRepo, products ProductChecker) *Service {
	return &Service{
		repo:     repo,
		products: products,
		locks:    newKeyedMutex(),
	}
}

// AddItem puts quantity units of productID into the session's cart, merging
// with an existing line for the same product.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (domain.CartItem, error) {
	sessionID, err := requireSession(sessionID)
	if err != nil {
		return domain.CartItem{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.CartItem{}, fmt.Errorf("%w: productId is required", ErrInvalidInput)
	}
	if err := checkQuantity(quantity); err != nil {
		return domain.CartItem{}, err
	}

	exists, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !exists {
		return domain.CartItem{}, fmt.Errorf("%w: %q", ErrUnknownProduct, productID)
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	item, err := s.repo.AddItem(ctx, sessionID, productID, quantity)
	if errors.Is(err, domain.ErrQuantityLimit) {
		return domain.CartItem{}, fmt.Errorf("%w: quantity in cart cannot exceed %d", ErrInvalidInput, domain.MaxQuantity)
	}
	return item, err
}

// UpdateQuantity sets an item's quantity. Items of other sessions are reported
// absent. Removal goes through RemoveItem, so quantity must be at least 1.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (domain.CartItem, bool, error) {
	sessionID, err := requireSession(sessionID)
	if err != nil {
		return domain.CartItem{}, false, err
	}
	if err := checkQuantity(quantity); err != nil {
		return domain.CartItem{}, false, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if ok, err := s.owned(ctx, sessionID, itemID); !ok || err != nil {
		return domain.CartItem{}, false, err
	}
	return s.repo.SetQuantity(ctx, strings.TrimSpace(itemID), quantity)
}

// RemoveItem deletes an item of the session. It reports false when the item
// is absent or belongs to another session.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (bool, error) {
	sessionID, err := requireSession(sessionID)
	if err != nil {
		return false, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if ok, err := s.owned(ctx, sessionID, itemID); !ok || err != nil {
		return false, err
	}
	return s.repo.RemoveItem(ctx, strings.TrimSpace(itemID))
}

func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	sessionID, err := requireSession(sessionID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	return s.repo.ClearSession(ctx, sessionID)
}

func (s *Service) ListItems(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	sessionID, err := requireSession(sessionID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListItems(ctx, sessionID)
}

func (s *Service) owned(ctx context.Context, sessionID, itemID string) (bool, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return false, nil
	}
	item, ok, err := s.repo.GetItem(ctx, itemID)
	if err != nil || !ok {
		return false, err
	}
	return item.SessionID == sessionID, nil
}

func checkQuantity(quantity int) error {
	switch {
	case quantity < 1:
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	case quantity > domain.MaxQuantity:
		return fmt.Errorf("%w: quantity must be at most %d", ErrInvalidInput, domain.MaxQuantity)
	}
	return nil
}

func requireSession(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}
	return sessionID, nil
}
