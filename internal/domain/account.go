package domain

import (
	"github.com/shopspring/decimal"
)

// NewAccount is the construction input for an Account.
type NewAccount struct {
	PartyID        int64
	InitialBalance decimal.Decimal
}

// Validate checks the opening balance.
func (a NewAccount) Validate() error {
	return ValidateBalance(a.InitialBalance)
}

// Account represents a balance-bearing ledger line owned by one party.
type Account struct {
	ID      int64
	PartyID int64
	Balance decimal.Decimal
}

// ValidateDebit checks if account can be debited by amount without going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
