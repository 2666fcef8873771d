package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Create journals a transfer of value between two parties.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, in domain.NewTransaction) (*domain.Transaction, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (amount, from_party_id, to_party_id, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, amount, from_party_id, to_party_id, occurred_at
	`
	txn, err := scanTransaction(q.QueryRow(ctx, query,
		decimalToNumeric(in.Amount), in.FromPartyID, in.ToPartyID, in.OccurredAt))
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return txn, nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Transaction, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, amount, from_party_id, to_party_id, occurred_at FROM transactions WHERE id = $1`
	txn, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn    domain.Transaction
		amount pgtype.Numeric
	)
	if err := row.Scan(&txn.ID, &amount, &txn.FromPartyID, &txn.ToPartyID, &txn.OccurredAt); err != nil {
		return nil, err
	}
	txn.Amount = numericToDecimal(amount)
	txn.OccurredAt = txn.OccurredAt.UTC()
	return &txn, nil
}
