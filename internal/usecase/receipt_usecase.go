package usecase

import (
	"context"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// ReceiptUseCase handles receipt business logic.
type ReceiptUseCase struct {
	txManager   TransactionManager
	receiptRepo ReceiptRepository
	partyRepo   PartyRepository
	metrics     *metrics.Metrics
}

// NewReceiptUseCase creates a new ReceiptUseCase. m may be nil.
func NewReceiptUseCase(
	txManager TransactionManager,
	receiptRepo ReceiptRepository,
	partyRepo PartyRepository,
	m *metrics.Metrics,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txManager:   txManager,
		receiptRepo: receiptRepo,
		partyRepo:   partyRepo,
		metrics:     m,
	}
}

// CreateReceipt stores a receipt for an existing party. Items keep their
// order; nil items are stored as an empty list.
func (uc *ReceiptUseCase) CreateReceipt(ctx context.Context, input domain.NewReceipt) (receipt *domain.Receipt, err error) {
	defer func() { uc.metrics.RecordOperation("receipt", "create", err) }()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Items == nil {
		input.Items = []string{}
	}

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		if err := uc.partyRepo.LockForKeyShare(ctx, tx, input.PartyID); err != nil {
			return err
		}

		var err error
		receipt, err = uc.receiptRepo.Create(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, id int64) (receipt *domain.Receipt, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		receipt, err = uc.receiptRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// DeleteReceipt removes a receipt and reports how many rows were deleted.
func (uc *ReceiptUseCase) DeleteReceipt(ctx context.Context, id int64) (deleted int64, err error) {
	defer func() { uc.metrics.RecordOperation("receipt", "delete", err) }()

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		deleted, err = uc.receiptRepo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
