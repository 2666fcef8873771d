package dto

import (
	"time"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// PartyResponse represents a party in API responses.
type PartyResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	EBAN      string `json:"eban"`
	AddressID int64  `json:"address_id"`
}

// PartyFromDomain converts domain party to response.
func PartyFromDomain(p *domain.Party) *PartyResponse {
	return &PartyResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		EBAN:      p.EBAN,
		AddressID: p.AddressID,
	}
}

// PartyReferencesResponse lists rows that still name a party.
type PartyReferencesResponse struct {
	Accounts     int64 `json:"accounts"`
	Transactions int64 `json:"transactions"`
	Receipts     int64 `json:"receipts"`
	Total        int64 `json:"total"`
}

// PartyReferencesFromDomain converts domain reference counts to response.
func PartyReferencesFromDomain(r domain.PartyReferences) *PartyReferencesResponse {
	return &PartyReferencesResponse{
		Accounts:     r.Accounts,
		Transactions: r.Transactions,
		Receipts:     r.Receipts,
		Total:        r.Total(),
	}
}

// PartyBalanceResponse is the exact sum of a party's account balances.
type PartyBalanceResponse struct {
	PartyID int64  `json:"party_id"`
	Balance string `json:"balance"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID      int64  `json:"id"`
	PartyID int64  `json:"party_id"`
	Balance string `json:"balance"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:      a.ID,
		PartyID: a.PartyID,
		Balance: a.Balance.String(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a journal row in API responses.
type TransactionResponse struct {
	ID          int64     `json:"id"`
	Amount      string    `json:"amount"`
	FromPartyID int64     `json:"from_party_id"`
	ToPartyID   int64     `json:"to_party_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Amount:      t.Amount.String(),
		FromPartyID: t.FromPartyID,
		ToPartyID:   t.ToPartyID,
		OccurredAt:  t.OccurredAt,
	}
}

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID            int64    `json:"id"`
	PaymentMethod string   `json:"payment_method"`
	PartyID       int64    `json:"party_id"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Items         []string `json:"items"`
}

// ReceiptFromDomain converts domain receipt to response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	items := r.Items
	if items == nil {
		items = []string{}
	}
	return &ReceiptResponse{
		ID:            r.ID,
		PaymentMethod: string(r.PaymentMethod),
		PartyID:       r.PartyID,
		Date:          r.Date.String(),
		Time:          r.Time.String(),
		Items:         items,
	}
}

// TransferResponse carries the journal row and both updated accounts.
type TransferResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	From        *AccountResponse     `json:"from"`
	To          *AccountResponse     `json:"to"`
}

// TransferFromResult converts a transfer result to response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Transaction: TransactionFromDomain(r.Transaction),
		From:        AccountFromDomain(r.From),
		To:          AccountFromDomain(r.To),
	}
}

// DeleteResponse reports how many rows a delete removed.
type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// UpdateResponse reports how many rows an update touched.
type UpdateResponse struct {
	Updated int64 `json:"updated"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
