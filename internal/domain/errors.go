package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps one of these so callers can
// branch with errors.Is without knowing the concrete entity.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

var (
	// Lookup errors
	ErrPartyNotFound       = fmt.Errorf("party %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrReceiptNotFound     = fmt.Errorf("receipt %w", ErrNotFound)

	// Input errors
	ErrEmptyField           = fmt.Errorf("%w: required field is empty", ErrValidation)
	ErrNegativeBalance      = fmt.Errorf("%w: balance must not be negative", ErrValidation)
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrSameParty            = fmt.Errorf("%w: from and to party must differ", ErrValidation)
	ErrSameAccount          = fmt.Errorf("%w: cannot transfer to same account", ErrValidation)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unknown payment method", ErrValidation)
	ErrInvalidDateTime      = fmt.Errorf("%w: date or time out of range", ErrValidation)
	ErrInsufficientFunds    = fmt.Errorf("%w: insufficient funds", ErrValidation)
)
