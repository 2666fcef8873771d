package domain

import (
	"cloud.google.com/go/civil"
)

// PaymentMethod is how a receipt was paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentCheck        PaymentMethod = "check"
	PaymentWireTransfer PaymentMethod = "wire_transfer"
)

// PaymentMethods lists the closed set of accepted methods.
var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentCreditCard,
	PaymentDebitCard,
	PaymentCheck,
	PaymentWireTransfer,
}

// Valid reports whether m belongs to the closed set.
func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// NewReceipt is the construction input for a Receipt.
type NewReceipt struct {
	PaymentMethod PaymentMethod
	PartyID       int64
	Date          civil.Date
	Time          civil.Time
	Items         []string
}

// Validate validates the receipt input.
func (r NewReceipt) Validate() error {
	if err := ValidatePaymentMethod(r.PaymentMethod); err != nil {
		return err
	}
	if err := ValidateReceiptDate(r.Date); err != nil {
		return err
	}
	return ValidateReceiptTime(r.Time)
}

// Receipt records a payment event with its itemized detail.
type Receipt struct {
	ID            int64
	PaymentMethod PaymentMethod
	PartyID       int64
	Date          civil.Date
	Time          civil.Time
	Items         []string
}
