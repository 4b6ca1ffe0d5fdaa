package payment

import (
	"fmt"
	"math"
)

// StripeClient simulates a provider that charges in cents with an
// upper-case currency code.
type StripeClient struct{}

// CreateCharge returns a transaction reference.
func (StripeClient) CreateCharge(amountCents int64, currency string) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("stripe: %w: amount must be > 0", ErrInvalidAmount)
	}
	return fmt.Sprintf("stripe_tx_%d_%s", amountCents, currency), nil
}

// PaypalClient simulates a provider that takes whole totals and a
// lower-case currency code.
type PaypalClient struct{}

// MakePayment returns a transaction reference. The total is rounded.
func (PaypalClient) MakePayment(total float64, currency string) (string, error) {
	if total <= 0 {
		return "", fmt.Errorf("paypal: %w: total must be > 0", ErrInvalidAmount)
	}
	return fmt.Sprintf("paypal_tx_%d_%s", int64(math.Round(total)), currency), nil
}

// BankClient simulates a USD-only wire transfer API.
type BankClient struct{}

// TransferUSD returns a bank reference built from the amount in cents.
func (BankClient) TransferUSD(amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("bank: %w: amount must be > 0", ErrInvalidAmount)
	}
	return fmt.Sprintf("bank_ref_%d", toCents(amount)), nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
