package usecase

import (
	"context"
	"time"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// TransactionUseCase records journal entries between parties. It never
// touches account balances; see TransferUseCase for that.
type TransactionUseCase struct {
	txManager TransactionManager
	txnRepo   TransactionRepository
	partyRepo PartyRepository
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewTransactionUseCase creates a new TransactionUseCase. m may be nil.
func NewTransactionUseCase(
	txManager TransactionManager,
	txnRepo TransactionRepository,
	partyRepo PartyRepository,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager: txManager,
		txnRepo:   txnRepo,
		partyRepo: partyRepo,
		metrics:   m,
		now:       time.Now,
	}
}

// CreateTransaction validates and stores a journal entry. A zero
// OccurredAt is stamped with the current time.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input domain.NewTransaction) (txn *domain.Transaction, err error) {
	defer func() { uc.metrics.RecordOperation("transaction", "create", err) }()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.OccurredAt.IsZero() {
		input.OccurredAt = uc.now()
	}
	input.OccurredAt = input.OccurredAt.UTC()

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		if err := lockParties(ctx, uc.partyRepo, tx, input.FromPartyID, input.ToPartyID); err != nil {
			return err
		}

		var err error
		txn, err = uc.txnRepo.Create(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// GetTransaction retrieves a journal entry by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id int64) (txn *domain.Transaction, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		txn, err = uc.txnRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a journal entry. Balances are not adjusted.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id int64) (deleted int64, err error) {
	defer func() { uc.metrics.RecordOperation("transaction", "delete", err) }()

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		deleted, err = uc.txnRepo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
