package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/finwise/internal/domain"
)

// mapConstraintError turns schema CHECK violations into the matching domain
// validation error. Anything else passes through untouched.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.CheckViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "accounts_balance_check":
		return fmt.Errorf("%w (%s)", domain.ErrNegativeBalance, pgErr.ConstraintName)
	case "transactions_amount_check":
		return fmt.Errorf("%w (%s)", domain.ErrInvalidAmount, pgErr.ConstraintName)
	case "transactions_distinct_parties_check":
		return fmt.Errorf("%w (%s)", domain.ErrSameParty, pgErr.ConstraintName)
	case "receipts_payment_method_check":
		return fmt.Errorf("%w (%s)", domain.ErrInvalidPaymentMethod, pgErr.ConstraintName)
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
}
