package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// RequireText rejects values that are empty once surrounding whitespace is trimmed.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return nil
}

// ValidateBalance rejects negative balances. Zero is allowed.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrNegativeBalance, balance)
	}
	return nil
}

// ValidateAmount validates a transaction or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	return nil
}

// ValidatePaymentMethod validates a receipt payment method.
func ValidatePaymentMethod(m PaymentMethod) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, string(m))
	}
	return nil
}

// ValidateReceiptDate requires a set, real calendar date. The zero date has
// no PostgreSQL representation and would not survive a round trip.
func ValidateReceiptDate(d civil.Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date", ErrEmptyField)
	}
	if !d.IsValid() {
		return fmt.Errorf("%w: date %s", ErrInvalidDateTime, d)
	}
	return nil
}

// ValidateReceiptTime rejects out-of-range clock times. Midnight is valid.
func ValidateReceiptTime(t civil.Time) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: time %s", ErrInvalidDateTime, t)
	}
	return nil
}

// ParsePaymentMethod normalizes user input such as "Credit Card" or
// "wire-transfer" into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	m := PaymentMethod(normalized)
	if err := ValidatePaymentMethod(m); err != nil {
		return "", err
	}
	return m, nil
}
