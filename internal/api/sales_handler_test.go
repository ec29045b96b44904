package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kangactor123/ssalon-de-api/internal/domain/sales"
	"github.com/kangactor123/ssalon-de-api/internal/form"
)

type mockSaleStore struct {
	createFunc func(s *sales.Sale) (*sales.Sale, error)
	updateFunc func(s *sales.Sale) (*sales.Sale, error)
	getFunc    func(id int64) (*sales.Sale, error)
	listFunc   func(from, to time.Time) ([]*sales.Sale, error)
	deleteFunc func(id int64) (bool, error)
}

func (m *mockSaleStore) Create(_ context.Context, s *sales.Sale) (*sales.Sale, error) {
	if m.createFunc != nil {
		return m.createFunc(s)
	}
	s.ID = 1
	return s, nil
}

func (m *mockSaleStore) Update(_ context.Context, s *sales.Sale) (*sales.Sale, error) {
	if m.updateFunc != nil {
		return m.updateFunc(s)
	}
	return s, nil
}

func (m *mockSaleStore) GetByID(_ context.Context, id int64) (*sales.Sale, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return nil, nil
}

func (m *mockSaleStore) ListByPeriod(_ context.Context, from, to time.Time) ([]*sales.Sale, error) {
	if m.listFunc != nil {
		return m.listFunc(from, to)
	}
	return nil, nil
}

func (m *mockSaleStore) Delete(_ context.Context, id int64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(id)
	}
	return false, nil
}

type mockReferenceStore struct {
	items   []ReferenceType
	listErr error
}

func (m *mockReferenceStore) List(context.Context) ([]ReferenceType, error) {
	return m.items, m.listErr
}

func (m *mockReferenceStore) Create(_ context.Context, name string) (*ReferenceType, error) {
	return &ReferenceType{ID: 1, Name: name}, nil
}

func (m *mockReferenceStore) UpdateName(_ context.Context, id int64, name string) (*ReferenceType, error) {
	return &ReferenceType{ID: id, Name: name}, nil
}

func (m *mockReferenceStore) Delete(context.Context, int64) (bool, error) { return true, nil }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newSalesHandler(store *mockSaleStore, refs *mockReferenceStore) *SalesHandler {
	return NewSalesHandler(store, refs, nil, testLogger())
}

const validSaleBody = `{
	"date": "2024-01-02T10:30:00Z",
	"gender": "M",
	"payments": [{"typeId": 1, "name": "Cash", "amount": 10000}],
	"services": [5]
}`

func TestSalesCreateSuccess(t *testing.T) {
	var captured *sales.Sale
	store := &mockSaleStore{
		createFunc: func(s *sales.Sale) (*sales.Sale, error) {
			captured = s
			s.ID = 7
			return s, nil
		},
	}
	refs := &mockReferenceStore{items: []ReferenceType{{ID: 5, Name: "Стрижка"}}}
	h := newSalesHandler(store, refs)

	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(validSaleBody))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if captured.Amount != 10000 {
		t.Errorf("amount must be derived from payments, got %d", captured.Amount)
	}
	if len(captured.Services) != 1 || captured.Services[0] != 5 {
		t.Errorf("unexpected services: %v", captured.Services)
	}
	var dto saleDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.ID != 7 {
		t.Errorf("expected id 7, got %d", dto.ID)
	}
}

func TestSalesCreateDropsStaleServiceIDs(t *testing.T) {
	var captured *sales.Sale
	store := &mockSaleStore{
		createFunc: func(s *sales.Sale) (*sales.Sale, error) {
			captured = s
			return s, nil
		},
	}
	refs := &mockReferenceStore{items: []ReferenceType{{ID: 5, Name: "Стрижка"}}}
	h := newSalesHandler(store, refs)

	body := `{
		"date": "2024-01-02T10:30:00Z",
		"gender": "F",
		"payments": [{"typeId": 1, "name": "Cash", "amount": 100}],
		"services": [5, 99]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if len(captured.Services) != 1 || captured.Services[0] != 5 {
		t.Errorf("stale id must be dropped, got %v", captured.Services)
	}
}

func TestSalesCreateNoPaymentsFailsValidation(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	body := `{"date": "2024-01-02T10:30:00Z", "gender": "M", "payments": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != form.MsgAmountRequired {
		t.Errorf("expected %q, got %q", form.MsgAmountRequired, resp["error"])
	}
}

func TestSalesCreateZeroAmountFailsValidation(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	body := `{
		"date": "2024-01-02T10:30:00Z",
		"gender": "M",
		"payments": [{"typeId": 1, "name": "Cash", "amount": 0}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d — body: %s", rec.Code, rec.Body.String())
	}
}

func TestSalesCreateUndatedRecordPasses(t *testing.T) {
	store := &mockSaleStore{}
	h := newSalesHandler(store, &mockReferenceStore{})

	body := `{"gender": "M", "payments": [{"typeId": 1, "name": "Cash", "amount": 500}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("undated record must pass, got %d — body: %s", rec.Code, rec.Body.String())
	}
}

func TestSalesCreateInvalidGender(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	body := `{"gender": "X", "payments": [{"typeId": 1, "name": "Cash", "amount": 500}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSalesCreateInvalidJSON(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{bad`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSalesGetNotFound(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sales/42", nil)
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSalesGetSuccess(t *testing.T) {
	date := time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC)
	store := &mockSaleStore{
		getFunc: func(id int64) (*sales.Sale, error) {
			return &sales.Sale{
				ID: id, Date: &date, Amount: 15000, Gender: sales.GenderFemale,
				Payments: []sales.Payment{{TypeID: 1, Name: "Cash", Amount: 15000}},
				Services: []int64{5},
			}, nil
		},
	}
	h := newSalesHandler(store, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sales/3", nil)
	req.SetPathValue("id", "3")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	var dto saleDTO
	if err := json.NewDecoder(rec.Body).Decode(&dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Date != "2024-01-02T10:30:00Z" {
		t.Errorf("unexpected date: %q", dto.Date)
	}
	if len(dto.Payments) != 1 || dto.Payments[0].Amount != 15000 {
		t.Errorf("unexpected payments: %+v", dto.Payments)
	}
}

func TestSalesListRequiresMonth(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without month, got %d", rec.Code)
	}
}

func TestSalesListPassesMonthBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	store := &mockSaleStore{
		listFunc: func(from, to time.Time) ([]*sales.Sale, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	h := newSalesHandler(store, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/sales?month=2024-02", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotFrom.Format("2006-01-02") != "2024-02-01" || gotTo.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("unexpected bounds: %s .. %s", gotFrom, gotTo)
	}
	var resp struct {
		Sales []saleDTO `json:"sales"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Sales == nil {
		t.Error("expected empty array, got null")
	}
}

func TestSalesDeleteNotFound(t *testing.T) {
	h := newSalesHandler(&mockSaleStore{}, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodDelete, "/api/sales/9", nil)
	req.SetPathValue("id", "9")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestSalesUpdateStoreError(t *testing.T) {
	store := &mockSaleStore{
		updateFunc: func(*sales.Sale) (*sales.Sale, error) { return nil, errors.New("db down") },
	}
	h := newSalesHandler(store, &mockReferenceStore{})

	req := httptest.NewRequest(http.MethodPut, "/api/sales/1", strings.NewReader(validSaleBody))
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestSalesExportReturnsWorkbook(t *testing.T) {
	date := time.Date(2024, 2, 10, 13, 0, 0, 0, time.UTC)
	store := &mockSaleStore{
		listFunc: func(from, to time.Time) ([]*sales.Sale, error) {
			return []*sales.Sale{{
				ID: 1, Date: &date, Amount: 15000, Gender: sales.GenderMale,
				Payments: []sales.Payment{{TypeID: 1, Name: "Cash", Amount: 15000}},
				Services: []int64{5},
			}}, nil
		},
	}
	refs := &mockReferenceStore{items: []ReferenceType{{ID: 5, Name: "Стрижка"}}}
	h := newSalesHandler(store, refs)

	req := httptest.NewRequest(http.MethodGet, "/api/sales/export?month=2024-02", nil)
	rec := httptest.NewRecorder()
	h.Export(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "sales_2024-02.xlsx") {
		t.Errorf("unexpected disposition: %q", got)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty workbook")
	}
}
