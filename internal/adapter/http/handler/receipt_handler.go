package handler

import (
	"context"
	"net/http"

	"github.com/iho/finwise/internal/adapter/http/dto"
	"github.com/iho/finwise/internal/domain"
)

// ReceiptService defines the behavior needed by ReceiptHandler.
type ReceiptService interface {
	CreateReceipt(ctx context.Context, in domain.NewReceipt) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, id int64) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, id int64) (int64, error)
}

// ReceiptHandler handles receipt-related HTTP requests.
type ReceiptHandler struct {
	receiptUC ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptUC ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptUC: receiptUC}
}

// Create records a receipt.
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceiptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	in, err := req.ToDomain()
	if err != nil {
		writeDomainError(w, "invalid receipt", err)
		return
	}

	receipt, err := h.receiptUC.CreateReceipt(r.Context(), in)
	if err != nil {
		writeDomainError(w, "failed to create receipt", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// Get retrieves a receipt by ID.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid receipt ID", err.Error())
		return
	}

	receipt, err := h.receiptUC.GetReceipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// Delete removes a receipt.
func (h *ReceiptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid receipt ID", err.Error())
		return
	}

	rows, err := h.receiptUC.DeleteReceipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to delete receipt", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DeleteResponse{Deleted: rows})
}
