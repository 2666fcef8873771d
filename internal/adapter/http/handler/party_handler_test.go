package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/finwise/internal/adapter/http/dto"
	"github.com/iho/finwise/internal/domain"
)

type partyServiceStub struct {
	createFn func(ctx context.Context, in domain.NewParty) (*domain.Party, error)
	getFn    func(ctx context.Context, id int64) (*domain.Party, error)
	deleteFn func(ctx context.Context, id int64) (int64, error)
	refsFn   func(ctx context.Context, id int64) (domain.PartyReferences, error)
}

func (s *partyServiceStub) CreateParty(ctx context.Context, in domain.NewParty) (*domain.Party, error) {
	return s.createFn(ctx, in)
}

func (s *partyServiceStub) GetParty(ctx context.Context, id int64) (*domain.Party, error) {
	return s.getFn(ctx, id)
}

func (s *partyServiceStub) DeleteParty(ctx context.Context, id int64) (int64, error) {
	return s.deleteFn(ctx, id)
}

func (s *partyServiceStub) CountReferences(ctx context.Context, id int64) (domain.PartyReferences, error) {
	return s.refsFn(ctx, id)
}

func TestPartyHandler_Create(t *testing.T) {
	handler := NewPartyHandler(&partyServiceStub{
		createFn: func(ctx context.Context, in domain.NewParty) (*domain.Party, error) {
			return &domain.Party{ID: 1, Name: in.Name, Phone: in.Phone, EBAN: in.EBAN, AddressID: in.AddressID}, nil
		},
	})

	body := `{"name":"Acme","phone":"555-0100","eban":"EB001","address_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/parties", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.PartyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != 1 || resp.EBAN != "EB001" || resp.AddressID != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPartyHandler_Create_Validation(t *testing.T) {
	handler := NewPartyHandler(&partyServiceStub{
		createFn: func(ctx context.Context, in domain.NewParty) (*domain.Party, error) {
			return nil, domain.ErrEmptyField
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/parties", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPartyHandler_Get_NotFound(t *testing.T) {
	handler := NewPartyHandler(&partyServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Party, error) {
			return nil, domain.ErrPartyNotFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/parties/3", nil), "id", "3")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPartyHandler_DeleteAndReferences(t *testing.T) {
	handler := NewPartyHandler(&partyServiceStub{
		deleteFn: func(ctx context.Context, id int64) (int64, error) { return 1, nil },
		refsFn: func(ctx context.Context, id int64) (domain.PartyReferences, error) {
			return domain.PartyReferences{Accounts: 2, Receipts: 1}, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/parties/3/references", nil), "id", "3")
	rec := httptest.NewRecorder()
	handler.References(rec, req)

	var refs dto.PartyReferencesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if refs.Total != 3 {
		t.Fatalf("expected 3 references, got %+v", refs)
	}

	req = setChiURLParam(httptest.NewRequest(http.MethodDelete, "/parties/3", nil), "id", "3")
	rec = httptest.NewRecorder()
	handler.Delete(rec, req)

	var del dto.DeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &del); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if del.Deleted != 1 {
		t.Fatalf("expected 1 deleted, got %+v", del)
	}
}
