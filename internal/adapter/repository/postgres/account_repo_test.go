package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/finwise/internal/domain"
)

var accountColumns = []string{"id", "party_id", "balance"}

func TestAccountRepositoryCreate(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`INSERT INTO accounts`).
		WithArgs(int64(1), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(accountColumns).AddRow(int64(10), int64(1), "100.50"))

	account, err := NewAccountRepository().Create(context.Background(), tx, domain.NewAccount{
		PartyID:        1,
		InitialBalance: decimal.RequireFromString("100.50"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 10 || !account.Balance.Equal(decimal.RequireFromString("100.5")) {
		t.Fatalf("unexpected account: %+v", account)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`FROM accounts WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(accountColumns))

	_, err := NewAccountRepository().GetByID(context.Background(), tx, 4)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDsForUpdate(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`WHERE id = ANY\(\$1\)\s+ORDER BY id\s+FOR UPDATE`).
		WithArgs([]int64{1, 2}).
		WillReturnRows(pgxmock.NewRows(accountColumns).
			AddRow(int64(1), int64(5), "10").
			AddRow(int64(2), int64(6), "0.01"))

	accounts, err := NewAccountRepository().GetByIDsForUpdate(context.Background(), tx, []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID != 1 || accounts[1].PartyID != 6 {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}
	if !accounts[1].Balance.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("expected exact balance 0.01, got %s", accounts[1].Balance)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateBalance(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectExec(`UPDATE accounts SET balance`).
		WithArgs(int64(3), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	rows, err := NewAccountRepository().UpdateBalance(context.Background(), tx, 3, decimal.NewFromInt(50))
	if err != nil || rows != 1 {
		t.Fatalf("expected 1 row, got rows=%d err=%v", rows, err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateBalanceCheckViolation(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectExec(`UPDATE accounts SET balance`).
		WithArgs(int64(3), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "accounts_balance_check"})

	_, err := NewAccountRepository().UpdateBalance(context.Background(), tx, 3, decimal.NewFromInt(-1))
	if !errors.Is(err, domain.ErrNegativeBalance) {
		t.Fatalf("expected negative balance error, got %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositorySumBalanceByParty(t *testing.T) {
	tests := []struct {
		name string
		sum  string
		want decimal.Decimal
	}{
		{"no accounts", "0", decimal.Zero},
		{"exact decimal sum", "0.3", decimal.RequireFromString("0.3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool, tx := beginMockTx(t)
			mockPool.ExpectQuery(`COALESCE\(SUM\(balance\), 0\)`).
				WithArgs(int64(8)).
				WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(tt.sum))

			got, err := NewAccountRepository().SumBalanceByParty(context.Background(), tx, 8)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			assertExpectations(t, mockPool)
		})
	}
}

func TestAccountRepositoryListByPartyEmpty(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`WHERE party_id = \$1 ORDER BY id`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(accountColumns))

	accounts, err := NewAccountRepository().ListByParty(context.Background(), tx, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", accounts)
	}
	assertExpectations(t, mockPool)
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "100.50", "123456789012345678.987654321"} {
		d := decimal.RequireFromString(s)
		if got := numericToDecimal(decimalToNumeric(d)); !got.Equal(d) {
			t.Fatalf("round trip of %s gave %s", s, got)
		}
	}
}
