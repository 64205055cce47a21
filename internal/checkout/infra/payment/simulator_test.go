package payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutapp "github.com/dwikikusuma/techhub-store/internal/checkout/app"
	"github.com/dwikikusuma/techhub-store/internal/checkout/domain"
)

func request(number string, amount string) checkoutapp.PaymentRequest {
	return checkoutapp.PaymentRequest{
		Amount: decimal.RequireFromString(amount),
		Card:   domain.Card{Number: number, Expiry: "12/30", CVV: "123", NameOnCard: "Ada Lovelace"},
	}
}

func TestSimulatorApproves(t *testing.T) {
	receipt, err := NewSimulator(0).Authorize(context.Background(), request("4242 4242 4242 4242", "1186.92"))
	require.NoError(t, err)

	assert.Equal(t, "4242", receipt.CardLast4)
	assert.Contains(t, receipt.Reference, "pay_")
}

func TestSimulatorDeclines(t *testing.T) {
	sim := NewSimulator(0)

	_, err := sim.Authorize(context.Background(), request("abc", "10"))
	assert.ErrorIs(t, err, checkoutapp.ErrPaymentDeclined)

	_, err = sim.Authorize(context.Background(), request("4242424242424242", "0"))
	assert.ErrorIs(t, err, checkoutapp.ErrPaymentDeclined)
}

func TestSimulatorHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := NewSimulator(time.Minute).Authorize(ctx, request("4242424242424242", "10"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
