package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct{}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Create inserts an account with its opening balance.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, in domain.NewAccount) (*domain.Account, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO accounts (party_id, balance)
		VALUES ($1, $2)
		RETURNING id, party_id, balance
	`
	account, err := scanAccount(q.QueryRow(ctx, query, in.PartyID, decimalToNumeric(in.InitialBalance)))
	if err != nil {
		return nil, mapConstraintError(err)
	}
	return account, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	account, err := scanAccount(q.QueryRow(ctx, `SELECT id, party_id, balance FROM accounts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByIDsForUpdate locks the given accounts in ascending ID order.
// Missing IDs are simply absent from the result.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, party_id, balance FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`
	return queryAccounts(ctx, q, query, ids)
}

// UpdateBalance overwrites the balance and reports the rows touched.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id int64, balance decimal.Decimal) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `UPDATE accounts SET balance = $2 WHERE id = $1`, id, decimalToNumeric(balance))
	if err != nil {
		return 0, mapConstraintError(err)
	}
	return tag.RowsAffected(), nil
}

// SumBalanceByParty returns the exact sum of the party's balances, zero if it has none.
func (r *AccountRepository) SumBalanceByParty(ctx context.Context, tx usecase.Transaction, partyID int64) (decimal.Decimal, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return decimal.Zero, err
	}

	var sum pgtype.Numeric
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE party_id = $1`
	if err := q.QueryRow(ctx, query, partyID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return numericToDecimal(sum), nil
}

// ListByParty lists a party's accounts by ID.
func (r *AccountRepository) ListByParty(ctx context.Context, tx usecase.Transaction, partyID int64) ([]*domain.Account, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	return queryAccounts(ctx, q, `SELECT id, party_id, balance FROM accounts WHERE party_id = $1 ORDER BY id`, partyID)
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) (int64, error) {
	q, err := pgxTx(tx)
	if err != nil {
		return 0, err
	}

	tag, err := q.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func queryAccounts(ctx context.Context, q pgx.Tx, query string, args ...any) ([]*domain.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		balance pgtype.Numeric
	)
	if err := row.Scan(&account.ID, &account.PartyID, &balance); err != nil {
		return nil, err
	}
	account.Balance = numericToDecimal(balance)
	return &account, nil
}
