package usecase

import (
	"context"
	"slices"
)

// inTx runs fn inside one store transaction and commits only if fn
// succeeds. The deferred rollback is a no-op after commit.
func inTx(ctx context.Context, txManager TransactionManager, fn func(tx Transaction) error) error {
	tx, err := txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockParties takes key-share locks on every distinct party in ascending
// id order so concurrent writers cannot deadlock on each other.
func lockParties(ctx context.Context, repo PartyRepository, tx Transaction, ids ...int64) error {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	for _, id := range sorted {
		if err := repo.LockForKeyShare(ctx, tx, id); err != nil {
			return err
		}
	}
	return nil
}
