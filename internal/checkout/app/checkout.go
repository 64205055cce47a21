package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dwikikusuma/techhub-store/internal/checkout/domain"
	"github.com/dwikikusuma/techhub-store/pkg/logger"
)

// Checkout pays for the session's cart, records the order and empties the cart.
func (s *Service) Checkout(ctx context.Context, req domain.Request) (domain.Confirmation, error) {
	req = normalize(req)
	if err := validateRequest(req); err != nil {
		return domain.Confirmation{}, err
	}

	ctx, span := s.tracer.Start(ctx, "checkout.Checkout")
	defer span.End()

	summary, err := s.Summarize(ctx, req.SessionID)
	if err != nil {
		return domain.Confirmation{}, err
	}
	if summary.Empty() {
		return domain.Confirmation{}, ErrEmptyCart
	}

	receipt, err := s.Payments.Authorize(ctx, PaymentRequest{Amount: summary.Total, Card: req.Card})
	if err != nil {
		span.RecordError(err)
		return domain.Confirmation{}, err
	}

	lines := make([]OrderLine, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		lines = append(lines, OrderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
		})
	}

	order, err := s.Orders.PlaceOrder(ctx, PlaceOrderRequest{
		SessionID:  req.SessionID,
		Contact:    req.Contact,
		Shipping:   req.Shipping,
		Lines:      lines,
		Tax:        summary.Tax,
		PaymentRef: receipt.Reference,
		CardLast4:  receipt.CardLast4,
	})
	if err != nil {
		span.RecordError(err)
		return domain.Confirmation{}, err
	}
	span.SetAttributes(attribute.String("order.id", order.ID))

	// Clearing is best effort once the order exists.
	if err := s.Cart.ClearSession(ctx, req.SessionID); err != nil {
		s.log.Warn("cart not cleared after checkout",
			zap.String("order_id", order.ID),
			logger.SessionID(req.SessionID),
			zap.Error(err),
		)
	}

	return domain.Confirmation{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Status:      order.Status,
		Subtotal:    summary.Subtotal,
		Tax:         summary.Tax,
		Total:       order.Total,
		ItemCount:   summary.ItemCount,
		CardLast4:   receipt.CardLast4,
		CreatedAt:   order.CreatedAt,
	}, nil
}

func normalize(req domain.Request) domain.Request {
	trim := strings.TrimSpace
	req.SessionID = trim(req.SessionID)
	req.Contact.Email = trim(req.Contact.Email)
	req.Contact.FirstName = trim(req.Contact.FirstName)
	req.Contact.LastName = trim(req.Contact.LastName)
	req.Shipping.Address = trim(req.Shipping.Address)
	req.Shipping.City = trim(req.Shipping.City)
	req.Shipping.State = trim(req.Shipping.State)
	req.Shipping.ZipCode = trim(req.Shipping.ZipCode)
	req.Card.Number = CardDigits(req.Card.Number)
	req.Card.Expiry = trim(req.Card.Expiry)
	req.Card.CVV = trim(req.Card.CVV)
	req.Card.NameOnCard = trim(req.Card.NameOnCard)
	return req
}

var fieldValidator = validator.New()

// Card numbers need at least MinCardDigits digits and no more than
// MaxCardDigits, the longest primary account number ISO/IEC 7812 allows.
const (
	MinCardDigits = 16
	MaxCardDigits = 19
)

func validateRequest(req domain.Request) error {
	invalid := func(field, msg string) error {
		return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, msg)
	}

	if req.SessionID == "" {
		return invalid("sessionId", "is required")
	}
	if err := fieldValidator.Var(req.Contact.Email, "required,email"); err != nil {
		return invalid("email", "must be a valid email address")
	}
	for _, f := range []struct {
		name, value string
		min         int
	}{
		{"firstName", req.Contact.FirstName, 2},
		{"lastName", req.Contact.LastName, 2},
		{"address", req.Shipping.Address, 5},
		{"city", req.Shipping.City, 2},
		{"state", req.Shipping.State, 2},
		{"zipCode", req.Shipping.ZipCode, 5},
		{"nameOnCard", req.Card.NameOnCard, 2},
		{"cvv", req.Card.CVV, 3},
	} {
		if len([]rune(f.value)) < f.min {
			return invalid(f.name, fmt.Sprintf("must be at least %d characters", f.min))
		}
	}
	if n := len(req.Card.Number); n < MinCardDigits || n > MaxCardDigits {
		return invalid("cardNumber", fmt.Sprintf("must have %d to %d digits", MinCardDigits, MaxCardDigits))
	}
	if !ValidExpiry(req.Card.Expiry) {
		return invalid("expiryDate", "must be MM/YY")
	}
	return nil
}

// CardDigits strips the spaces and dashes people type into card numbers. Any
// other non-digit makes the result unusable and yields "".
func CardDigits(number string) string {
	var b strings.Builder
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-':
		default:
			return ""
		}
	}
	return b.String()
}

// ValidExpiry accepts MM/YY with a month between 01 and 12.
func ValidExpiry(s string) bool {
	if len(s) != 5 || s[2] != '/' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	month, _ := strconv.Atoi(s[:2])
	return month >= 1 && month <= 12
}
