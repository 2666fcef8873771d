package handler

import (
	"context"
	"net/http"

	"github.com/iho/finwise/internal/adapter/http/dto"
	"github.com/iho/finwise/internal/domain"
)

// PartyService defines the behavior needed by PartyHandler.
type PartyService interface {
	CreateParty(ctx context.Context, in domain.NewParty) (*domain.Party, error)
	GetParty(ctx context.Context, id int64) (*domain.Party, error)
	DeleteParty(ctx context.Context, id int64) (int64, error)
	CountReferences(ctx context.Context, id int64) (domain.PartyReferences, error)
}

// PartyHandler handles party-related HTTP requests.
type PartyHandler struct {
	partyUC PartyService
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(partyUC PartyService) *PartyHandler {
	return &PartyHandler{partyUC: partyUC}
}

// Create creates a new party.
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePartyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	party, err := h.partyUC.CreateParty(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, "failed to create party", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PartyFromDomain(party))
}

// Get retrieves a party by ID.
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	party, err := h.partyUC.GetParty(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get party", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyFromDomain(party))
}

// Delete removes a party. Referencing rows are left in place; callers that
// care check References first.
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	rows, err := h.partyUC.DeleteParty(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to delete party", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: rows})
}

// References counts the rows that still name a party.
func (h *PartyHandler) References(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid party ID", err.Error())
		return
	}

	refs, err := h.partyUC.CountReferences(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to count references", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PartyReferencesFromDomain(refs))
}
