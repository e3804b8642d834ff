package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount validates a request amount for the given currency. The amount
// must be strictly positive and carry no more fractional digits than the
// currency supports. Arithmetic downstream stays in decimal; binary floats
// never touch money.
func ParseAmount(raw string, currency Currency) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	if amount.Exponent() < -currency.Scale() {
		return decimal.Zero, fmt.Errorf("%w: %s supports at most %d decimal places", ErrInvalidAmount, currency, currency.Scale())
	}
	return amount, nil
}

// FormatAmount renders a balance or amount at the currency's scale.
func FormatAmount(amount decimal.Decimal, currency Currency) string {
	return amount.StringFixed(currency.Scale())
}
