package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/dwikikusuma/techhub-store/internal/catalog/domain"
)

// TaxRate is the flat sales tax applied to every cart.
var TaxRate = decimal.RequireFromString("0.08")

// RoundMoney rounds to cents, half away from zero: 2.345 -> 2.35, -2.345 -> -2.35.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line is a cart item joined with its catalog product.
type Line struct {
	ItemID    string
	SessionID string
	Quantity  int
	Product   catalogdomain.Product
	LineTotal decimal.Decimal
}

// Summary is the derived, never-stored view of a session's cart.
type Summary struct {
	SessionID string
	Lines     []Line
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// NewSummary computes the money fields for lines:
// subtotal = round(sum(price*qty)), tax = round(subtotal*rate), total = round(subtotal+tax).
func NewSummary(sessionID string, lines []Line) Summary {
	if lines == nil {
		lines = []Line{}
	}

	subtotal := decimal.Zero
	count := 0
	for i := range lines {
		lines[i].LineTotal = RoundMoney(lines[i].Product.Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
		subtotal = subtotal.Add(lines[i].Product.Price.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
		count += lines[i].Quantity
	}
	subtotal = RoundMoney(subtotal)
	tax := RoundMoney(subtotal.Mul(TaxRate))

	return Summary{
		SessionID: sessionID,
		Lines:     lines,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     RoundMoney(subtotal.Add(tax)),
		ItemCount: count,
	}
}

func (s Summary) Empty() bool { return len(s.Lines) == 0 }

type Contact struct {
	Email     string
	FirstName string
	LastName  string
}

type Shipping struct {
	Address string
	City    string
	State   string
	ZipCode string
}

type Card struct {
	Number     string
	Expiry     string
	CVV        string
	NameOnCard string
}

type Request struct {
	SessionID string
	Contact   Contact
	Shipping  Shipping
	Card      Card
}

// Confirmation is returned once an order is placed and the cart cleared.
type Confirmation struct {
	OrderID     string
	OrderNumber string
	Status      string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	ItemCount   int
	CardLast4   string
	CreatedAt   time.Time
}
