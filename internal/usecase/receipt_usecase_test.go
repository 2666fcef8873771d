package usecase_test

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"go.uber.org/mock/gomock"

	"github.com/iho/finwise/internal/domain"
	"github.com/iho/finwise/internal/usecase"
	"github.com/iho/finwise/internal/usecase/mocks"
)

func TestReceiptUseCase_CreateReceipt(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)
	tx := expectCommittedTx(ctrl, txm)

	input := domain.NewReceipt{
		PaymentMethod: domain.PaymentCreditCard,
		PartyID:       4,
		Date:          civil.Date{Year: 2024, Month: 5, Day: 17},
		Time:          civil.Time{Hour: 14, Minute: 30, Second: 5},
		Items:         []string{"coffee", "bagel"},
	}

	parties.EXPECT().LockForKeyShare(gomock.Any(), tx, int64(4)).Return(nil)
	receipts.EXPECT().Create(gomock.Any(), tx, input).Return(&domain.Receipt{
		ID:            1,
		PaymentMethod: input.PaymentMethod,
		PartyID:       4,
		Date:          input.Date,
		Time:          input.Time,
		Items:         input.Items,
	}, nil)

	uc := usecase.NewReceiptUseCase(txm, receipts, parties, nil)
	receipt, err := uc.CreateReceipt(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Items[0] != "coffee" || receipt.Items[1] != "bagel" {
		t.Fatalf("expected item order preserved, got %v", receipt.Items)
	}
}

func TestReceiptUseCase_CreateReceiptNilItemsBecomeEmpty(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)
	tx := expectCommittedTx(ctrl, txm)

	parties.EXPECT().LockForKeyShare(gomock.Any(), tx, int64(1)).Return(nil)
	receipts.EXPECT().Create(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ usecase.Transaction, in domain.NewReceipt) (*domain.Receipt, error) {
			if in.Items == nil {
				t.Fatalf("expected non-nil items")
			}
			return &domain.Receipt{ID: 1, Items: in.Items}, nil
		})

	uc := usecase.NewReceiptUseCase(txm, receipts, parties, nil)
	if _, err := uc.CreateReceipt(context.Background(), domain.NewReceipt{
		PaymentMethod: domain.PaymentCash,
		PartyID:       1,
		Date:          civil.Date{Year: 2024, Month: 1, Day: 1},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReceiptUseCase_CreateReceiptInvalidMethod(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)

	uc := usecase.NewReceiptUseCase(txm, receipts, parties, nil)
	_, err := uc.CreateReceipt(context.Background(), domain.NewReceipt{PaymentMethod: "barter", PartyID: 1})
	if !errors.Is(err, domain.ErrInvalidPaymentMethod) {
		t.Fatalf("expected invalid payment method, got %v", err)
	}
}

func TestReceiptUseCase_CreateReceiptRequiresValidDateAndTime(t *testing.T) {
	tests := []struct {
		name    string
		date    civil.Date
		time    civil.Time
		wantErr error
	}{
		{"missing date", civil.Date{}, civil.Time{Hour: 8}, domain.ErrEmptyField},
		{"invalid date", civil.Date{Year: 2024, Month: 13, Day: 1}, civil.Time{Hour: 8}, domain.ErrInvalidDateTime},
		{"invalid time", civil.Date{Year: 2024, Month: 1, Day: 1}, civil.Time{Hour: 24}, domain.ErrInvalidDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newController(t)
			// no Begin expected: nothing may reach the store
			txm := mocks.NewMockTransactionManager(ctrl)
			receipts := mocks.NewMockReceiptRepository(ctrl)
			parties := mocks.NewMockPartyRepository(ctrl)

			uc := usecase.NewReceiptUseCase(txm, receipts, parties, nil)
			_, err := uc.CreateReceipt(context.Background(), domain.NewReceipt{
				PaymentMethod: domain.PaymentCash,
				PartyID:       1,
				Date:          tt.date,
				Time:          tt.time,
			})
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestReceiptUseCase_GetAndDelete(t *testing.T) {
	ctrl := newController(t)
	txm := mocks.NewMockTransactionManager(ctrl)
	receipts := mocks.NewMockReceiptRepository(ctrl)
	parties := mocks.NewMockPartyRepository(ctrl)
	uc := usecase.NewReceiptUseCase(txm, receipts, parties, nil)

	tx := expectCommittedTx(ctrl, txm)
	receipts.EXPECT().GetByID(gomock.Any(), tx, int64(3)).Return(&domain.Receipt{ID: 3, Items: []string{}}, nil)

	receipt, err := uc.GetReceipt(context.Background(), 3)
	if err != nil || receipt.ID != 3 {
		t.Fatalf("unexpected result: receipt=%+v err=%v", receipt, err)
	}

	tx2 := expectCommittedTx(ctrl, txm)
	receipts.EXPECT().Delete(gomock.Any(), tx2, int64(3)).Return(int64(1), nil)

	if rows, err := uc.DeleteReceipt(context.Background(), 3); err != nil || rows != 1 {
		t.Fatalf("expected 1 row, got rows=%d err=%v", rows, err)
	}
}
