package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/finwise/internal/domain"
)

func TestPartyRepositoryCreate(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`INSERT INTO parties`).
		WithArgs("Acme", "555-0100", "EB001", int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	party, err := NewPartyRepository().Create(context.Background(), tx, domain.NewParty{
		Name: "Acme", Phone: "555-0100", EBAN: "EB001", AddressID: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if party.ID != 1 || party.Name != "Acme" || party.AddressID != 7 {
		t.Fatalf("unexpected party: %+v", party)
	}
	assertExpectations(t, mockPool)
}

func TestPartyRepositoryGetByID(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`SELECT id, name, phone, eban, address_id FROM parties`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "phone", "eban", "address_id"}).
			AddRow(int64(3), "Bob", "1", "EB3", int64(0)))

	party, err := NewPartyRepository().GetByID(context.Background(), tx, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if party.ID != 3 || party.EBAN != "EB3" {
		t.Fatalf("unexpected party: %+v", party)
	}
	assertExpectations(t, mockPool)
}

func TestPartyRepositoryGetByIDNotFound(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`FROM parties`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "phone", "eban", "address_id"}))

	_, err := NewPartyRepository().GetByID(context.Background(), tx, 9)
	if !errors.Is(err, domain.ErrPartyNotFound) {
		t.Fatalf("expected party not found, got %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestPartyRepositoryLockForKeyShare(t *testing.T) {
	tests := []struct {
		name    string
		rows    *pgxmock.Rows
		wantErr error
	}{
		{"locks existing party", pgxmock.NewRows([]string{"id"}).AddRow(int64(4)), nil},
		{"missing party", pgxmock.NewRows([]string{"id"}), domain.ErrPartyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool, tx := beginMockTx(t)
			mockPool.ExpectQuery(`FOR KEY SHARE`).WithArgs(int64(4)).WillReturnRows(tt.rows)

			err := NewPartyRepository().LockForKeyShare(context.Background(), tx, 4)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			assertExpectations(t, mockPool)
		})
	}
}

func TestPartyRepositoryDelete(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectExec(`DELETE FROM parties`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	rows, err := NewPartyRepository().Delete(context.Background(), tx, 5)
	if err != nil || rows != 0 {
		t.Fatalf("expected 0 rows and no error, got rows=%d err=%v", rows, err)
	}
	assertExpectations(t, mockPool)
}

func TestPartyRepositoryCountReferences(t *testing.T) {
	mockPool, tx := beginMockTx(t)
	mockPool.ExpectQuery(`SELECT count`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"accounts", "transactions", "receipts"}).
			AddRow(int64(1), int64(2), int64(3)))

	refs, err := NewPartyRepository().CountReferences(context.Background(), tx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refs.Accounts != 1 || refs.Transactions != 2 || refs.Receipts != 3 {
		t.Fatalf("unexpected references: %+v", refs)
	}
	assertExpectations(t, mockPool)
}
