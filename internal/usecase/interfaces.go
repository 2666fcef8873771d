package usecase

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
)

// PartyRepository defines data access for parties.
type PartyRepository interface {
	Create(ctx context.Context, tx Transaction, party domain.NewParty) (*domain.Party, error)
	GetByID(ctx context.Context, tx Transaction, id int64) (*domain.Party, error)
	// LockForKeyShare fails with domain.ErrPartyNotFound if the party does
	// not exist, and otherwise keeps it from being deleted until tx ends.
	LockForKeyShare(ctx context.Context, tx Transaction, id int64) error
	Delete(ctx context.Context, tx Transaction, id int64) (int64, error)
	CountReferences(ctx context.Context, tx Transaction, id int64) (domain.PartyReferences, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account domain.NewAccount) (*domain.Account, error)
	GetByID(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	// GetByIDsForUpdate locks the rows in ascending id order.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id int64, balance decimal.Decimal) (int64, error)
	SumBalanceByParty(ctx context.Context, tx Transaction, partyID int64) (decimal.Decimal, error)
	ListByParty(ctx context.Context, tx Transaction, partyID int64) ([]*domain.Account, error)
	Delete(ctx context.Context, tx Transaction, id int64) (int64, error)
}

// TransactionRepository defines data access for journal transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn domain.NewTransaction) (*domain.Transaction, error)
	GetByID(ctx context.Context, tx Transaction, id int64) (*domain.Transaction, error)
	Delete(ctx context.Context, tx Transaction, id int64) (int64, error)
}

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, tx Transaction, receipt domain.NewReceipt) (*domain.Receipt, error)
	GetByID(ctx context.Context, tx Transaction, id int64) (*domain.Receipt, error)
	Delete(ctx context.Context, tx Transaction, id int64) (int64, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle. Each Begin holds one
// pooled connection until the transaction ends.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient store conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyRecord is what an idempotency key maps to.
type IdempotencyRecord struct {
	Pending    bool
	StatusCode int
	Body       []byte
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// Reserve claims key. When the key is already taken it returns the
	// stored record and false.
	Reserve(ctx context.Context, key string, ttl time.Duration) (*IdempotencyRecord, bool, error)
	// Complete stores the final response for key.
	Complete(ctx context.Context, key string, rec IdempotencyRecord, ttl time.Duration) error
	// Release drops a reservation after a failed request.
	Release(ctx context.Context, key string) error
}
