package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/finwise/internal/infrastructure/postgres"
	"github.com/iho/finwise/internal/usecase"
)

var errForeignTx = errors.New("transaction was not started by this package")

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager on top of the bounded pool.
// Every transaction it hands out holds one pool checkout until it ends.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *postgres.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction. Rollback after a successful Commit is a no-op,
// so callers can always defer it.
type Tx struct {
	tx   pgx.Tx
	done bool
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

// pgxTx unwraps a transaction begun by TxManager. Repositories only accept
// their own transactions.
func pgxTx(tx usecase.Transaction) (pgx.Tx, error) {
	t, ok := tx.(interface{ PgxTx() pgx.Tx })
	if !ok {
		return nil, errForeignTx
	}
	return t.PgxTx(), nil
}
