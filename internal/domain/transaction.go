package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewTransaction is the construction input for a Transaction.
type NewTransaction struct {
	Amount      decimal.Decimal
	FromPartyID int64
	ToPartyID   int64
	OccurredAt  time.Time
}

// Validate validates the journal entry.
func (t NewTransaction) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}

	if t.FromPartyID == t.ToPartyID {
		return ErrSameParty
	}

	return nil
}

// Transaction is an immutable journal record of a directed movement of money
// between two parties. Recording one does not change any account balance.
type Transaction struct {
	ID          int64
	Amount      decimal.Decimal
	FromPartyID int64
	ToPartyID   int64
	OccurredAt  time.Time
}
