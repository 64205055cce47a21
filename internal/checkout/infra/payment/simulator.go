// Package payment authorizes card payments against a simulated processor.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
)

// Simulator approves every well-formed payment after an optional delay.
// Card data other than the last four digits is dropped here.
type Simulator struct {
	delay time.Duration
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

func (s *Simulator) Authorize(ctx context.Context, req checkoutapp.PaymentRequest) (checkoutapp.PaymentReceipt, error) {
	digits := checkoutapp.CardDigits(req.Card.Number)
	if len(digits) < 4 {
		return checkoutapp.PaymentReceipt{}, fmt.Errorf("%w: unreadable card number", checkoutapp.ErrPaymentDeclined)
	}
	if !req.Amount.IsPositive() {
		return checkoutapp.PaymentReceipt{}, fmt.Errorf("%w: amount must be positive", checkoutapp.ErrPaymentDeclined)
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return checkoutapp.PaymentReceipt{}, ctx.Err()
		case <-t.C:
		}
	}

	return checkoutapp.PaymentReceipt{
		Reference: "pay_" + uuid.NewString(),
		CardLast4: digits[len(digits)-4:],
	}, nil
}
