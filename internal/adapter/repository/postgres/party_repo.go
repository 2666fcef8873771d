package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// PartyRepository implements usecase.PartyRepository.
type PartyRepository struct{}

// NewPartyRepository creates a new PartyRepository.
func NewPartyRepository() *PartyRepository {
	return &PartyRepository{}
}

// Create inserts a party and returns it with the assigned ID.
func (r *PartyRepository) Create(ctx context.Context, tx usecase.Transaction, in domain.NewParty) (*domain.Party, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO parties (name, phone, eban, address_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	party := &domain.Party{Name: in.Name, Phone: in.Phone, EBAN: in.EBAN, AddressID: in.AddressID}
	if err := q.QueryRow(ctx, query, in.Name, in.Phone, in.EBAN, in.AddressID).Scan(&party.ID); err != nil {
		return nil, err
	}
	return party, nil
}

// GetByID retrieves a party by ID.
func (r *PartyRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Party, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, name, phone, eban, address_id FROM parties WHERE id = $1`

	var party domain.Party
	err = q.QueryRow(ctx, query, id).Scan(&party.ID, &party.Name, &party.Phone, &party.EBAN, &party.AddressID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPartyNotFound
		}
		return nil, err
	}
	return &party, nil
}

// LockForKeyShare takes a key-share lock on the party row. It blocks a
// concurrent delete of the party until the caller's transaction ends.
func (r *PartyRepository) LockForKeyShare(ctx context.Context, tx usecase.Transaction, id int64) error {
	q, err := pgxTx(tx)
	if err != nil {
		return err
	}

	var locked int64
	err = q.QueryRow(ctx, `SELECT id FROM parties WHERE id = $1 FOR KEY SHARE`, id).Scan(&locked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrPartyNotFound
	}
	return err
}

// Delete removes a party and reports the number of rows deleted.
func (r *PartyRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountReferences counts accounts, transactions and receipts naming the party.
func (r *PartyRepository) CountReferences(ctx context.Context, tx usecase.Transaction, id int64) (domain.PartyReferences, error) {
	var refs domain.PartyReferences

	q, err := pgxTx(tx)
	if err != nil {
		return refs, err
	}

	query := `
		SELECT
			(SELECT count(*) FROM accounts WHERE party_id = $1),
			(SELECT count(*) FROM transactions WHERE from_party_id = $1 OR to_party_id = $1),
			(SELECT count(*) FROM receipts WHERE party_id = $1)
	`
	err = q.QueryRow(ctx, query, id).Scan(&refs.Accounts, &refs.Transactions, &refs.Receipts)
	return refs, err
}
