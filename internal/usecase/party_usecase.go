package usecase

import (
	"context"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
)

// PartyUseCase handles party business logic.
type PartyUseCase struct {
	txManager TransactionManager
	partyRepo PartyRepository
	metrics   *metrics.Metrics
}

// NewPartyUseCase creates a new PartyUseCase. m may be nil.
func NewPartyUseCase(txManager TransactionManager, partyRepo PartyRepository, m *metrics.Metrics) *PartyUseCase {
	return &PartyUseCase{
		txManager: txManager,
		partyRepo: partyRepo,
		metrics:   m,
	}
}

// CreateParty validates and stores a new party.
func (uc *PartyUseCase) CreateParty(ctx context.Context, input domain.NewParty) (party *domain.Party, err error) {
	defer func() { uc.metrics.RecordOperation("party", "create", err) }()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		party, err = uc.partyRepo.Create(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return party, nil
}

// GetParty retrieves a party by ID.
func (uc *PartyUseCase) GetParty(ctx context.Context, id int64) (party *domain.Party, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		party, err = uc.partyRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return party, nil
}

// DeleteParty removes a party and reports how many rows were deleted.
// Accounts, transactions and receipts that reference it are left as they
// are; use CountReferences first if that matters.
func (uc *PartyUseCase) DeleteParty(ctx context.Context, id int64) (deleted int64, err error) {
	defer func() { uc.metrics.RecordOperation("party", "delete", err) }()

	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		deleted, err = uc.partyRepo.Delete(ctx, tx, id)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// CountReferences reports how many accounts, transactions and receipts
// point at the party.
func (uc *PartyUseCase) CountReferences(ctx context.Context, id int64) (refs domain.PartyReferences, err error) {
	err = inTx(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		refs, err = uc.partyRepo.CountReferences(ctx, tx, id)
		return err
	})
	return refs, err
}
