package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dummy-bank/portfolio-api/internal/logger"
	"github.com/dummy-bank/portfolio-api/internal/model"
	"github.com/dummy-bank/portfolio-api/internal/portfolio"
)

type mockStore struct {
	customers    map[string]model.Customer
	accounts     []model.CashAccount
	spending     []model.SpendingRecord
	institutions map[int64]model.Institution

	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		customers:    make(map[string]model.Customer),
		institutions: make(map[int64]model.Institution),
	}
}

func (m *mockStore) GetCustomer(ctx context.Context, customerOID string) (model.Customer, bool, error) {
	c, ok := m.customers[customerOID]
	return c, ok, nil
}

func (m *mockStore) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockStore) ListHoldings(ctx context.Context, customerOID string) ([]model.Holding, error) {
	return nil, nil
}

func (m *mockStore) ListCashAccounts(ctx context.Context, customerOID string) ([]model.CashAccount, error) {
	return m.accounts, nil
}

func (m *mockStore) ListLedgerEntries(ctx context.Context, customerOID string) ([]model.LedgerEntry, error) {
	return nil, nil
}

func (m *mockStore) ListSpending(ctx context.Context, customerOID string) ([]model.SpendingRecord, error) {
	return m.spending, nil
}

func (m *mockStore) ListDerivatives(ctx context.Context, customerOID string) ([]model.DerivativePosition, error) {
	return nil, nil
}

func (m *mockStore) GetInstitutions(ctx context.Context, ids []int64) (map[int64]model.Institution, error) {
	out := make(map[int64]model.Institution, len(ids))
	for _, id := range ids {
		if inst, ok := m.institutions[id]; ok {
			out[id] = inst
		}
	}
	return out, nil
}

func (m *mockStore) InsertCustomer(ctx context.Context, customerOID, name string) error {
	m.customers[customerOID] = model.Customer{CustomerOID: customerOID, Name: name}
	return nil
}

func (m *mockStore) DeleteCustomerData(ctx context.Context, customerOID string) error {
	delete(m.customers, customerOID)
	return nil
}

const _oid = "11111111-1111-1111-1111-111111111111"

func newTestRouter(st *mockStore) http.Handler {
	svc := portfolio.NewService(st, logger.NewNop())
	return New(svc, logger.NewNop()).Router()
}

func doRequest(t *testing.T, router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(newMockStore()), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("body = %v", body)
	}
}

func TestPortfolioStatusMapping(t *testing.T) {
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "John Doe"}
	router := newTestRouter(st)

	for _, tc := range []struct {
		name   string
		target string
		want   int
	}{
		{"known customer", "/user-portfolio/" + _oid, http.StatusOK},
		{"unknown customer", "/user-portfolio/22222222-2222-2222-2222-222222222222", http.StatusNotFound},
		{"malformed oid", "/user-portfolio/lowercase-oid", http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tc.target, nil)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestPortfolioBody(t *testing.T) {
	iban := "US1234"
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "John Doe"}
	st.institutions[1] = model.Institution{ID: 1, Name: "Global Bank", Type: "bank", InternalCode: "GB001"}
	st.accounts = []model.CashAccount{
		{ID: 1, CustomerOID: _oid, InstitutionID: 1, Balance: 100, Currency: "USD", IBAN: &iban},
		{ID: 2, CustomerOID: _oid, InstitutionID: 2, Balance: 50, Currency: "EUR"},
	}
	st.spending = []model.SpendingRecord{
		{ID: 1, CustomerOID: _oid, Category: "groceries", Amount: 100, Month: "2025-01"},
		{ID: 2, CustomerOID: _oid, Category: "groceries", Amount: 50, Month: "2025-02"},
	}

	rec := doRequest(t, newTestRouter(st), http.MethodGet, "/user-portfolio/"+_oid, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		CustomerOID  string `json:"customer_oid"`
		BankAccounts []struct {
			InstitutionID int64                  `json:"institution_id"`
			Institution   *struct{ Name string } `json:"institution"`
		} `json:"bank_accounts"`
		Summary struct {
			TotalCashBalance        float64 `json:"total_cash_balance"`
			TotalSpending           float64 `json:"total_spending"`
			TotalSpendingCategories int     `json:"total_spending_categories"`
			HasData                 struct {
				Accounts bool `json:"accounts"`
				Spending bool `json:"spending"`
				Holdings bool `json:"holdings"`
			} `json:"has_data"`
		} `json:"portfolio_summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.CustomerOID != _oid {
		t.Errorf("customer_oid = %q", body.CustomerOID)
	}
	if body.Summary.TotalSpending != 150 || body.Summary.TotalSpendingCategories != 1 {
		t.Errorf("spending summary = %+v", body.Summary)
	}
	if body.Summary.TotalCashBalance != 150 {
		t.Errorf("total_cash_balance = %v", body.Summary.TotalCashBalance)
	}
	if len(body.BankAccounts) != 2 {
		t.Fatalf("bank_accounts = %d", len(body.BankAccounts))
	}
	if body.BankAccounts[0].Institution == nil || body.BankAccounts[0].Institution.Name != "Global Bank" {
		t.Errorf("account 1 institution = %+v", body.BankAccounts[0].Institution)
	}
	if body.BankAccounts[1].Institution != nil {
		t.Errorf("account 2 institution = %+v, want null", body.BankAccounts[1].Institution)
	}
	if !body.Summary.HasData.Accounts || !body.Summary.HasData.Spending || body.Summary.HasData.Holdings {
		t.Errorf("has_data = %+v", body.Summary.HasData)
	}
}

func TestPortfolioEmptyCollectionsEncodeAsArrays(t *testing.T) {
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "John Doe"}

	rec := doRequest(t, newTestRouter(st), http.MethodGet, "/user-portfolio/"+_oid, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	for _, key := range []string{"holdings", "bank_accounts", "transactions", "spending", "derivatives"} {
		if strings.Contains(body, `"`+key+`":null`) {
			t.Errorf("%s encoded as null, want []: %s", key, body)
		}
		if !strings.Contains(body, `"`+key+`":[]`) {
			t.Errorf("%s not encoded as empty array: %s", key, body)
		}
	}
}

func TestRegister(t *testing.T) {
	router := newTestRouter(newMockStore())

	rec := doRequest(t, router, http.MethodPost, "/register-customer",
		[]byte(`{"name":"Alice Johnson"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		CustomerOID string `json:"customer_oid"`
		Name        string `json:"name"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.CustomerOID == "" || body.Name != "Alice Johnson" || body.Message == "" {
		t.Errorf("body = %+v", body)
	}
}

func TestRegisterErrors(t *testing.T) {
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "Taken"}
	router := newTestRouter(st)

	for _, tc := range []struct {
		name string
		body string
		want int
	}{
		{"duplicate oid", `{"name":"Bob","customer_oid":"` + _oid + `"}`, http.StatusConflict},
		{"invalid oid", `{"name":"Bob","customer_oid":"not valid"}`, http.StatusBadRequest},
		{"short name", `{"name":"B"}`, http.StatusBadRequest},
		{"bad json", `{"name":`, http.StatusBadRequest},
	} {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/register-customer", []byte(tc.body))
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestExists(t *testing.T) {
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "John"}
	router := newTestRouter(st)

	rec := doRequest(t, router, http.MethodGet, "/customer/"+_oid+"/exists", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Exists bool    `json:"exists"`
		Name   *string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Exists || body.Name == nil || *body.Name != "John" {
		t.Errorf("body = %+v", body)
	}

	rec = doRequest(t, router, http.MethodGet, "/customer/CUST9999/exists", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Exists || body.Name != nil {
		t.Errorf("body = %+v, want exists=false, name=null", body)
	}

	rec = doRequest(t, router, http.MethodGet, "/customer/bad!/exists", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDelete(t *testing.T) {
	st := newMockStore()
	st.customers[_oid] = model.Customer{CustomerOID: _oid, Name: "John"}
	router := newTestRouter(st)

	rec := doRequest(t, router, http.MethodDelete, "/customer/"+_oid, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := st.customers[_oid]; ok {
		t.Error("customer still present after delete")
	}

	rec = doRequest(t, router, http.MethodDelete, "/customer/"+_oid, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestListCustomersInternalError(t *testing.T) {
	st := newMockStore()
	st.listErr = errors.New("connection reset")
	rec := doRequest(t, newTestRouter(st), http.MethodGet, "/customers", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Detail != "internal server error" {
		t.Errorf("detail = %q, want generic message", body.Detail)
	}
}
