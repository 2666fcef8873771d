package domain

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func TestRequireText(t *testing.T) {
	t.Parallel()

	t.Run("non-empty accepted", func(t *testing.T) {
		if err := RequireText("name", "Alice"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("whitespace rejected", func(t *testing.T) {
		err := RequireText("name", "   ")
		if !errors.Is(err, ErrEmptyField) {
			t.Fatalf("expected ErrEmptyField, got %v", err)
		}
	})
}

func TestNewParty_Validate(t *testing.T) {
	t.Parallel()

	valid := NewParty{Name: "Alice", Phone: "+1 555 0100", EBAN: "DE89370400440532013000", AddressID: 7}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid party, got %v", err)
	}

	for _, mutate := range []func(*NewParty){
		func(p *NewParty) { p.Name = "" },
		func(p *NewParty) { p.Phone = " " },
		func(p *NewParty) { p.EBAN = "\t" },
	} {
		p := valid
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", p, err)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.RequireFromString("0.0001")); err != nil {
		t.Fatalf("expected tiny positive amount to pass, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  PaymentMethod
	}{
		{"cash", PaymentCash},
		{"Credit Card", PaymentCreditCard},
		{"debit-card", PaymentDebitCard},
		{" CHECK ", PaymentCheck},
		{"wire_transfer", PaymentWireTransfer},
	}

	for _, tt := range tests {
		got, err := ParsePaymentMethod(tt.input)
		if err != nil {
			t.Fatalf("ParsePaymentMethod(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParsePaymentMethod(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := ParsePaymentMethod("bitcoin"); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestNewReceipt_Validate(t *testing.T) {
	t.Parallel()

	date := civil.Date{Year: 2024, Month: 5, Day: 17}
	clock := civil.Time{Hour: 9, Minute: 15}

	tests := []struct {
		name    string
		input   NewReceipt
		wantErr error
	}{
		{"no items", NewReceipt{PaymentMethod: PaymentCash, PartyID: 1, Date: date, Time: clock}, nil},
		{"midnight", NewReceipt{PaymentMethod: PaymentCash, PartyID: 1, Date: date}, nil},
		{"unknown method", NewReceipt{PaymentMethod: "iou", PartyID: 1, Date: date, Time: clock}, ErrInvalidPaymentMethod},
		{"missing date", NewReceipt{PaymentMethod: PaymentCash, PartyID: 1, Time: clock}, ErrEmptyField},
		{"impossible date", NewReceipt{PaymentMethod: PaymentCash, PartyID: 1, Date: civil.Date{Year: 2023, Month: 2, Day: 29}, Time: clock}, ErrInvalidDateTime},
		{"out of range time", NewReceipt{PaymentMethod: PaymentCash, PartyID: 1, Date: date, Time: civil.Time{Hour: 25}}, ErrInvalidDateTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected valid receipt, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrValidation) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
