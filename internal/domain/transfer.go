package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves money between two accounts. It is recorded as one
// Transaction between the owning parties plus a debit and a credit on the
// two account balances, all in the same store transaction.
type Transfer struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	OccurredAt    time.Time
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	return ValidateAmount(t.Amount)
}
