package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/adapter/http/dto"
	"github.com/iho/finwise/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, in domain.NewAccount) (*domain.Account, error)
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) (int64, error)
	TotalBalanceForParty(ctx context.Context, partyID int64) (decimal.Decimal, error)
	ListByParty(ctx context.Context, partyID int64) ([]*domain.Account, error)
	DeleteAccount(ctx context.Context, id int64) (int64, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a new account for an existing party.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// UpdateBalance overwrites an account balance.
func (h *AccountHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	var req dto.UpdateBalanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rows, err := h.accountUC.UpdateBalance(r.Context(), id, req.Balance)
	if err != nil {
		writeDomainError(w, "failed to update balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UpdateResponse{Updated: rows})
}

// Delete removes an account.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	rows, err := h.accountUC.DeleteAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to delete account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: rows})
}

// PartyBalance sums the balances of every account a party owns.
func (h *AccountHandler) PartyBalance(w http.ResponseWriter, r *http.Request) {
	partyID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	total, err := h.accountUC.TotalBalanceForParty(r.Context(), partyID)
	if err != nil {
		writeDomainError(w, "failed to sum balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyBalanceResponse{PartyID: partyID, Balance: total.String()})
}

// ListByParty lists the accounts a party owns.
func (h *AccountHandler) ListByParty(w http.ResponseWriter, r *http.Request) {
	partyID, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	accounts, err := h.accountUC.ListByParty(r.Context(), partyID)
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
