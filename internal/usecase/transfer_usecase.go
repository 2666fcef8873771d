package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// TransferUseCase moves money between two accounts atomically.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	partyRepo   PartyRepository
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewTransferUseCase creates a new TransferUseCase. m may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	partyRepo PartyRepository,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		partyRepo:   partyRepo,
		metrics:     m,
		now:         time.Now,
	}
}

// TransferResult is the journal row plus both accounts after the move.
type TransferResult struct {
	Transaction *domain.Transaction
	From        *domain.Account
	To          *domain.Account
}

// Transfer debits one account, credits another and journals the movement
// between their owners, all in one store transaction. The debited balance
// may not drop below zero.
func (uc *TransferUseCase) Transfer(ctx context.Context, input domain.Transfer) (*TransferResult, error) {
	start := time.Now()

	result, err := uc.transfer(ctx, input)

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.TransferErrors.WithLabelValues(transferErrorType(err)).Inc()
		} else {
			uc.metrics.TransfersCreated.Inc()
			uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
			uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
		}
	}

	return result, err
}

func (uc *TransferUseCase) transfer(ctx context.Context, input domain.Transfer) (*TransferResult, error) {
	// 0. Validate before taking a connection
	if err := input.Validate(); err != nil {
		return nil, err
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = uc.now()
	}
	occurredAt = occurredAt.UTC()

	// 1. Sort account IDs (DEADLOCK PREVENTION)
	ids := []int64{input.FromAccountID, input.ToAccountID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}

	// 2. Begin transaction
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 3. Lock accounts in sorted order
	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	var from, to *domain.Account
	for _, acc := range accounts {
		switch acc.ID {
		case input.FromAccountID:
			from = acc
		case input.ToAccountID:
			to = acc
		}
	}
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if from.PartyID == to.PartyID {
		return nil, domain.ErrSameParty
	}

	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	if err := lockParties(ctx, uc.partyRepo, tx, from.PartyID, to.PartyID); err != nil {
		return nil, err
	}

	// 4. Journal the movement
	txn, err := uc.txnRepo.Create(ctx, tx, domain.NewTransaction{
		Amount:      input.Amount,
		FromPartyID: from.PartyID,
		ToPartyID:   to.PartyID,
		OccurredAt:  occurredAt,
	})
	if err != nil {
		return nil, err
	}

	// 5. Apply debit and credit
	fromBalance := from.ApplyDebit(input.Amount)
	toBalance := to.ApplyCredit(input.Amount)

	if err := uc.setBalance(ctx, tx, from.ID, fromBalance); err != nil {
		return nil, err
	}
	if err := uc.setBalance(ctx, tx, to.ID, toBalance); err != nil {
		return nil, err
	}

	// 6. Commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{
		Transaction: txn,
		From:        &domain.Account{ID: from.ID, PartyID: from.PartyID, Balance: fromBalance},
		To:          &domain.Account{ID: to.ID, PartyID: to.PartyID, Balance: toBalance},
	}, nil
}

func (uc *TransferUseCase) setBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal) error {
	updated, err := uc.accountRepo.UpdateBalance(ctx, tx, id, balance)
	if err != nil {
		return err
	}
	if updated == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func transferErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}
