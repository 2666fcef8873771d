package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/infrastructure/metrics"
	"github.com/iho/finwise/internal/usecase"
	"github.com/iho/finwise/internal/usecase/mocks"
)

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name       string
		input      domain.Transfer
		accounts   []*domain.Account
		expectTx   bool
		wantErr    error
		wantFrom   string
		wantTo     string
		wantCommit bool
	}{
		{
			name:       "successful transfer",
			input:      domain.Transfer{FromAccountID: 20, ToAccountID: 10, Amount: decimal.RequireFromString("30.25")},
			accounts:   []*domain.Account{{ID: 10, PartyID: 1, Balance: decimal.NewFromInt(5)}, {ID: 20, PartyID: 2, Balance: decimal.NewFromInt(100)}},
			expectTx:   true,
			wantCommit: true,
			wantFrom:   "69.75",
			wantTo:     "35.25",
		},
		{
			name:       "drains to exactly zero",
			input:      domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(100)},
			accounts:   []*domain.Account{{ID: 1, PartyID: 1, Balance: decimal.NewFromInt(100)}, {ID: 2, PartyID: 2, Balance: decimal.Zero}},
			expectTx:   true,
			wantCommit: true,
			wantFrom:   "0",
			wantTo:     "100",
		},
		{
			name:    "reject same account transfer",
			input:   domain.Transfer{FromAccountID: 1, ToAccountID: 1, Amount: decimal.NewFromInt(1)},
			wantErr: domain.ErrSameAccount,
		},
		{
			name:    "reject non-positive amount",
			input:   domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.Zero},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:     "reject accounts of same party",
			input:    domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(1)},
			accounts: []*domain.Account{{ID: 1, PartyID: 7, Balance: decimal.NewFromInt(10)}, {ID: 2, PartyID: 7}},
			expectTx: true,
			wantErr:  domain.ErrSameParty,
		},
		{
			name:     "reject overdraft",
			input:    domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.RequireFromString("10.01")},
			accounts: []*domain.Account{{ID: 1, PartyID: 1, Balance: decimal.NewFromInt(10)}, {ID: 2, PartyID: 2}},
			expectTx: true,
			wantErr:  domain.ErrInsufficientFunds,
		},
		{
			name:     "missing account",
			input:    domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(1)},
			accounts: []*domain.Account{{ID: 1, PartyID: 1, Balance: decimal.NewFromInt(10)}},
			expectTx: true,
			wantErr:  domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newController(t)
			txm := mocks.NewMockTransactionManager(ctrl)
			accounts := mocks.NewMockAccountRepository(ctrl)
			txns := mocks.NewMockTransactionRepository(ctrl)
			parties := mocks.NewMockPartyRepository(ctrl)

			if tt.expectTx {
				var tx *mocks.MockTransaction
				if tt.wantCommit {
					tx = expectCommittedTx(ctrl, txm)
				} else {
					tx = expectRolledBackTx(ctrl, txm)
				}

				accounts.EXPECT().GetByIDsForUpdate(gomock.Any(), tx, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ usecase.Transaction, ids []int64) ([]*domain.Account, error) {
						if len(ids) != 2 || ids[0] > ids[1] {
							t.Fatalf("expected ascending lock order, got %v", ids)
						}
						return tt.accounts, nil
					})

				if tt.wantCommit {
					parties.EXPECT().LockForKeyShare(gomock.Any(), tx, gomock.Any()).Return(nil).Times(2)
					txns.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
						func(_ context.Context, _ usecase.Transaction, in domain.NewTransaction) (*domain.Transaction, error) {
							return &domain.Transaction{ID: 77, Amount: in.Amount, FromPartyID: in.FromPartyID, ToPartyID: in.ToPartyID, OccurredAt: in.OccurredAt}, nil
						})
					accounts.EXPECT().UpdateBalance(gomock.Any(), tx, tt.input.FromAccountID, gomock.Any()).Return(int64(1), nil)
					accounts.EXPECT().UpdateBalance(gomock.Any(), tx, tt.input.ToAccountID, gomock.Any()).Return(int64(1), nil)
				}
			}

			uc := usecase.NewTransferUseCase(txm, accounts, txns, parties, nil)
			result, err := uc.Transfer(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Transaction.ID != 77 || result.Transaction.OccurredAt.IsZero() {
				t.Fatalf("unexpected journal row: %+v", result.Transaction)
			}
			if result.From.Balance.String() != tt.wantFrom || result.To.Balance.String() != tt.wantTo {
				t.Fatalf("expected balances %s/%s, got %s/%s", tt.wantFrom, tt.wantTo, result.From.Balance, result.To.Balance)
			}
		})
	}
}

func TestTransferUseCase_JournalsOwningParties(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	accounts := mocks.NewMockAccountRepository(ctrl)
	txns := mocks.NewMockTransactionRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)
	tx := expectCommittedTx(ctrl, txm)

	accounts.EXPECT().GetByIDsForUpdate(gomock.Any(), tx, []int64{1, 2}).Return([]*domain.Account{
		{ID: 1, PartyID: 30, Balance: decimal.NewFromInt(50)},
		{ID: 2, PartyID: 40},
	}, nil)

	gomock.InOrder(
		parties.EXPECT().LockForKeyShare(gomock.Any(), tx, int64(30)).Return(nil),
		parties.EXPECT().LockForKeyShare(gomock.Any(), tx, int64(40)).Return(nil),
	)

	txns.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ usecase.Transaction, in domain.NewTransaction) (*domain.Transaction, error) {
			if in.FromPartyID != 30 || in.ToPartyID != 40 {
				t.Fatalf("expected journal from 30 to 40, got %d to %d", in.FromPartyID, in.ToPartyID)
			}
			return &domain.Transaction{ID: 1}, nil
		})

	accounts.EXPECT().UpdateBalance(gomock.Any(), tx, int64(1), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ usecase.Transaction, _ int64, balance decimal.Decimal) (int64, error) {
			if !balance.Equal(decimal.NewFromInt(40)) {
				t.Fatalf("expected debited balance 40, got %s", balance)
			}
			return 1, nil
		})
	accounts.EXPECT().UpdateBalance(gomock.Any(), tx, int64(2), gomock.Any()).Return(int64(1), nil)

	uc := usecase.NewTransferUseCase(txm, accounts, txns, parties, nil)
	if _, err := uc.Transfer(context.Background(), domain.Transfer{
		FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransferUseCase_RecordsMetrics(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	accounts := mocks.NewMockAccountRepository(ctrl)
	txns := mocks.NewMockTransactionRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)
	m := metrics.New(prometheus.NewRegistry())

	tx := expectRolledBackTx(ctrl, txm)
	accounts.EXPECT().GetByIDsForUpdate(gomock.Any(), tx, gomock.Any()).Return([]*domain.Account{
		{ID: 1, PartyID: 1, Balance: decimal.NewFromInt(1)},
		{ID: 2, PartyID: 2},
	}, nil)

	uc := usecase.NewTransferUseCase(txm, accounts, txns, parties, m)
	_, err := uc.Transfer(context.Background(), domain.Transfer{FromAccountID: 1, ToAccountID: 2, Amount: decimal.NewFromInt(5)})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	if got := testutil.ToFloat64(m.TransferErrors.WithLabelValues("insufficient_funds")); got != 1 {
		t.Fatalf("expected one insufficient_funds error, got %v", got)
	}
}
