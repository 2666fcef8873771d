package dto

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
)

// CreatePartyRequest represents a request to create a party.
type CreatePartyRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	EBAN      string `json:"eban"`
	AddressID int64  `json:"address_id"`
}

// ToDomain converts to the domain construction input.
func (r *CreatePartyRequest) ToDomain() domain.NewParty {
	return domain.NewParty{
		Name:      r.Name,
		Phone:     r.Phone,
		EBAN:      r.EBAN,
		AddressID: r.AddressID,
	}
}

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	PartyID        int64           `json:"party_id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToDomain converts to the domain construction input.
func (r *CreateAccountRequest) ToDomain() domain.NewAccount {
	return domain.NewAccount{
		PartyID:        r.PartyID,
		InitialBalance: r.InitialBalance,
	}
}

// UpdateBalanceRequest overwrites an account balance.
type UpdateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance"`
}

// CreateTransactionRequest journals a movement of value between parties.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	FromPartyID int64           `json:"from_party_id"`
	ToPartyID   int64           `json:"to_party_id"`
	OccurredAt  *time.Time      `json:"occurred_at,omitempty"`
}

// ToDomain converts to the domain construction input.
func (r *CreateTransactionRequest) ToDomain() domain.NewTransaction {
	in := domain.NewTransaction{
		Amount:      r.Amount,
		FromPartyID: r.FromPartyID,
		ToPartyID:   r.ToPartyID,
	}
	if r.OccurredAt != nil {
		in.OccurredAt = *r.OccurredAt
	}
	return in
}

// CreateReceiptRequest represents a request to record a receipt.
// Date is YYYY-MM-DD and time is HH:MM:SS; both are required.
type CreateReceiptRequest struct {
	PaymentMethod string      `json:"payment_method"`
	PartyID       int64       `json:"party_id"`
	Date          *civil.Date `json:"date"`
	Time          *civil.Time `json:"time"`
	Items         []string    `json:"items"`
}

// ToDomain converts to the domain construction input. The payment method
// is normalized, so "Credit Card" and "credit-card" both work.
func (r *CreateReceiptRequest) ToDomain() (domain.NewReceipt, error) {
	method, err := domain.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return domain.NewReceipt{}, err
	}
	if r.Date == nil {
		return domain.NewReceipt{}, fmt.Errorf("%w: date", domain.ErrEmptyField)
	}
	if r.Time == nil {
		return domain.NewReceipt{}, fmt.Errorf("%w: time", domain.ErrEmptyField)
	}

	return domain.NewReceipt{
		PaymentMethod: method,
		PartyID:       r.PartyID,
		Date:          *r.Date,
		Time:          *r.Time,
		Items:         r.Items,
	}, nil
}

// CreateTransferRequest represents a request to move money between accounts.
type CreateTransferRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    *time.Time      `json:"occurred_at,omitempty"`
}

// ToDomain converts to the domain transfer command.
func (r *CreateTransferRequest) ToDomain() domain.Transfer {
	in := domain.Transfer{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
	}
	if r.OccurredAt != nil {
		in.OccurredAt = *r.OccurredAt
	}
	return in
}
