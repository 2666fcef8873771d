package handler

import (
	"context"
	"net/http"

	"github.com/iho/finwise/internal/adapter/http/dto"
	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, in domain.Transfer) (*usecase.TransferResult, error)
}

// TransferHandler handles transfer HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	retrier    usecase.Retrier
}

// NewTransferHandler creates a new TransferHandler. A nil retrier runs each
// transfer once.
func NewTransferHandler(transferUC TransferService, retrier usecase.Retrier) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, retrier: retrier}
}

// Create moves money between two accounts of different parties.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var result *usecase.TransferResult
	run := func() error {
		var err error
		result, err = h.transferUC.Transfer(r.Context(), req.ToDomain())
		return err
	}

	var err error
	if h.retrier != nil {
		err = h.retrier.Retry(r.Context(), run)
	} else {
		err = run()
	}
	if err != nil {
		writeDomainError(w, "failed to create transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}
