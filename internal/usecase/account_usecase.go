package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	partyRepo   PartyRepository
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. m may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	partyRepo PartyRepository,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
		metrics:     m,
	}
}

// CreateAccount opens an account for an existing party.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input domain.NewAccount) (account *domain.Account, err error) {
	defer func() { uc.metrics.RecordOperation("account", "create", err) }()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		if err := uc.partyRepo.LockForKeyShare(ctx, tx, input.PartyID); err != nil {
			return err
		}

		var err error
		account, err = uc.accountRepo.Create(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (account *domain.Account, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		account, err = uc.accountRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateBalance overwrites an account's balance. Last write wins.
func (uc *AccountUseCase) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) (updated int64, err error) {
	defer func() { uc.metrics.RecordOperation("account", "update_balance", err) }()

	if err := domain.ValidateBalance(balance); err != nil {
		return 0, err
	}

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		updated, err = uc.accountRepo.UpdateBalance(ctx, tx, id, balance)
		if err != nil {
			return err
		}
		if updated == 0 {
			return domain.ErrAccountNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return updated, nil
}

// TotalBalanceForParty sums the balances of every account the party owns.
// A party with no accounts, or an unknown party, totals zero.
func (uc *AccountUseCase) TotalBalanceForParty(ctx context.Context, partyID int64) (total decimal.Decimal, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		total, err = uc.accountRepo.SumBalanceByParty(ctx, tx, partyID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ListByParty returns the party's accounts ordered by ID.
func (uc *AccountUseCase) ListByParty(ctx context.Context, partyID int64) (accounts []*domain.Account, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		accounts, err = uc.accountRepo.ListByParty(ctx, tx, partyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// DeleteAccount removes an account and reports how many rows were deleted.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id int64) (deleted int64, err error) {
	defer func() { uc.metrics.RecordOperation("account", "delete", err) }()

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		deleted, err = uc.accountRepo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
