// Package payment puts simulated third-party payment clients behind one
// Gateway interface.
package payment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors returned by gateways.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrUnknownProvider     = errors.New("unknown provider")
)

// Gateway charges an amount in a currency and returns a reference.
type Gateway interface {
	Pay(amount float64, currency string) (string, error)
}

// StripeAdapter converts to cents and an upper-case currency.
type StripeAdapter struct {
	Client StripeClient
}

// Pay implements Gateway.
func (a StripeAdapter) Pay(amount float64, currency string) (string, error) {
	return a.Client.CreateCharge(toCents(amount), strings.ToUpper(currency))
}

var paypalCurrencies = map[string]bool{"usd": true, "eur": true, "gbp": true}

// PaypalAdapter accepts only usd, eur and gbp.
type PaypalAdapter struct {
	Client PaypalClient
}

// Pay implements Gateway.
func (a PaypalAdapter) Pay(amount float64, currency string) (string, error) {
	curr := strings.ToLower(currency)
	if !paypalCurrencies[curr] {
		return "", fmt.Errorf("paypal: %w: %s", ErrUnsupportedCurrency, currency)
	}
	return a.Client.MakePayment(amount, curr)
}

// BankAdapter accepts only USD.
type BankAdapter struct {
	Client BankClient
}

// Pay implements Gateway.
func (a BankAdapter) Pay(amount float64, currency string) (string, error) {
	if !strings.EqualFold(currency, "USD") {
		return "", fmt.Errorf("bank: %w: only USD, got %s", ErrUnsupportedCurrency, currency)
	}
	return a.Client.TransferUSD(amount)
}

var providers = map[string]func() Gateway{
	"stripe": func() Gateway { return StripeAdapter{} },
	"paypal": func() Gateway { return PaypalAdapter{} },
	"bank":   func() Gateway { return BankAdapter{} },
}

// Get returns the gateway for a provider name (case-insensitive).
func Get(name string) (Gateway, error) {
	mk, ok := providers[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return mk(), nil
}

// Providers returns the known provider names, sorted.
func Providers() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
