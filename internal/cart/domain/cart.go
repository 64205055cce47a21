package domain

import "errors"

// CartItem is one line of a session's cart. A session holds at most one item
// per product, and Quantity is always between 1 and MaxQuantity.
type CartItem struct {
	ID        string
	SessionID string
	ProductID string
	Quantity  int
}

const (
	// DefaultQuantity applies when an add request omits the quantity.
	DefaultQuantity = 1
	// MaxQuantity caps a single line, including after merges.
	MaxQuantity = 9999
)

// ErrQuantityLimit is returned by stores when a merge would push a line past MaxQuantity.
var ErrQuantityLimit = errors.New("quantity limit exceeded")
