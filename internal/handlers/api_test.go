package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/demo"
)

func newAPI(t *testing.T) *APIHandlers {
	return NewAPIHandlers(newTestServices(t, fakeBackend(), nil), testPageSize, testLogger())
}

func TestAPIHandlers_HandleHealth(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	resp := decodeResponse(t, w.Body)
	var data map[string]string
	json.Unmarshal(resp.Data, &data)
	if data["status"] != "healthy" {
		t.Errorf("status = %q, want healthy", data["status"])
	}
}

func TestAPIHandlers_HandleCommissions(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/commissions?status=approved", nil)
	w := httptest.NewRecorder()
	h.HandleCommissions(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != "private, no-store" {
		t.Errorf("cache-control = %q", cc)
	}

	resp := decodeResponse(t, w.Body)
	var dash struct {
		Page struct {
			TotalItems int `json:"totalItems"`
			Items      []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"page"`
		Summary struct {
			TotalEarned float64 `json:"totalEarned"`
		} `json:"summary"`
		PayableIDs []string `json:"payableIds"`
	}
	if err := json.Unmarshal(resp.Data, &dash); err != nil {
		t.Fatal(err)
	}
	if dash.Page.TotalItems != 1 || dash.Page.Items[0].ID != "C2" {
		t.Errorf("page = %+v", dash.Page)
	}
	if dash.Summary.TotalEarned != 4500 {
		t.Errorf("total earned = %v, want 4500", dash.Summary.TotalEarned)
	}
	if len(dash.PayableIDs) != 1 {
		t.Errorf("payable = %v", dash.PayableIDs)
	}
}

func TestAPIHandlers_HandlePayout(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"approved commission", `{"commissionIds":["C2"]}`, http.StatusOK, ""},
		{"nothing selected", `{"commissionIds":[]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"pending commission", `{"commissionIds":["C1"]}`, http.StatusConflict, "CONFLICT"},
		{"malformed body", `{"commissionIds":`, http.StatusBadRequest, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAPI(t)
			req := httptest.NewRequest(http.MethodPost, "/api/commissions/payout", jsonBody(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			h.HandlePayout(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			resp := decodeResponse(t, w.Body)
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestAPIHandlers_HandleOrders(t *testing.T) {
	h := newAPI(t)

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		w := httptest.NewRecorder()
		h.HandleOrders(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("signed in", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req = req.WithContext(auth.WithUser(req.Context(), &auth.User{ID: "B1"}))
		w := httptest.NewRecorder()
		h.HandleOrders(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), `"totalSpent":4500`) {
			t.Errorf("body = %s", w.Body.String())
		}
	})
}

func TestAPIHandlers_HandleLoanQuote(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/loans/quote?amount=100000&term=12&monthlyIncome=50000", nil)
	w := httptest.NewRecorder()
	h.HandleLoanQuote(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	resp := decodeResponse(t, w.Body)
	var est struct {
		Tier       string  `json:"tier"`
		AnnualRate float64 `json:"annualRate"`
	}
	json.Unmarshal(resp.Data, &est)
	if est.Tier != "excellent" || est.AnnualRate != 0.12 {
		t.Errorf("estimate = %+v", est)
	}

}

func TestAPIHandlers_HandleLoanQuote_RejectsBadNumbers(t *testing.T) {
	h := newAPI(t)

	tests := []struct {
		query string
		field string
	}{
		{"amount=lots", "amount"},
		{"amount=NaN&term=12", "amount"},
		{"amount=1000&term=12&monthlyIncome=Inf", "monthlyIncome"},
		{"amount=1000&term=12&existingLoans=-Inf", "existingLoans"},
		{"amount=1000&term=NaN", "term"},
		{"amount=1e400&term=12", "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleLoanQuote(w, httptest.NewRequest(http.MethodGet, "/api/loans/quote?"+tt.query, nil))
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
			if resp := decodeResponse(t, w.Body); resp.Error.Fields[tt.field] != tt.field+" must be a number" {
				t.Errorf("fields = %v", resp.Error.Fields)
			}
		})
	}
}

func TestAPIHandlers_HandleApplyLoan(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/loans", jsonBody(`{"amount":100000,"term":12,"purpose":"Fertiliser for the wet season","monthlyIncome":50000}`))
	w := httptest.NewRecorder()
	h.HandleApplyLoan(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/loans", jsonBody(`{"amount":100000,"term":12,"purpose":"seed"}`))
	w = httptest.NewRecorder()
	h.HandleApplyLoan(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	resp := decodeResponse(t, w.Body)
	for _, field := range []string{"purpose", "monthlyIncome"} {
		if resp.Error.Fields[field] == "" {
			t.Errorf("missing field message for %s: %v", field, resp.Error.Fields)
		}
	}
}

func TestAPIHandlers_HandleCreditScore(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/credit-score/U1", nil)
	req.SetPathValue("userID", "U1")
	w := httptest.NewRecorder()
	h.HandleCreditScore(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"label":"Fair"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestAPIHandlers_Harvests(t *testing.T) {
	h := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/harvests", jsonBody(`{"cropType":"maize","quantity":500,"unit":"kg","location":"Kaduna","harvestDate":"2024-03-01T00:00:00Z"}`))
	w := httptest.NewRecorder()
	h.HandleCreateHarvest(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "GC-BATCH-1") {
		t.Errorf("body = %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/harvests/verify/GC-BATCH-1", nil)
	req.SetPathValue("batchID", "GC-BATCH-1")
	w = httptest.NewRecorder()
	h.HandleVerifyHarvest(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"verified":true`) {
		t.Errorf("verify = %d %s", w.Code, w.Body.String())
	}
}

func TestAPIHandlers_WriteEndpoints(t *testing.T) {
	h := newAPI(t)

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		body       string
		wantStatus int
	}{
		{"payment", h.HandleInitiatePayment, `{"orderId":"O1","amount":4500,"method":"card"}`, http.StatusCreated},
		{"payment bad method", h.HandleInitiatePayment, `{"orderId":"O1","amount":4500,"method":"cash"}`, http.StatusBadRequest},
		{"loan referral", h.HandleLoanReferral, `{"farmerId":"F1","amount":20000,"purpose":"inputs"}`, http.StatusCreated},
		{"notification", h.HandleNotify, `{"userId":"U1","title":"Payout","message":"Your payout is on its way"}`, http.StatusOK},
		{"notification missing title", h.HandleNotify, `{"userId":"U1","message":"hi"}`, http.StatusBadRequest},
		{"wrong content type", h.HandleNotify, `userId=U1`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", jsonBody(tt.body))
			if tt.name == "wrong content type" {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			w := httptest.NewRecorder()
			tt.handler(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestAPIHandlers_BackendDown(t *testing.T) {
	strict := NewAPIHandlers(newTestServices(t, downBackend(), demo.Strict{}), testPageSize, testLogger())
	req := httptest.NewRequest(http.MethodGet, "/api/farmers", nil)
	w := httptest.NewRecorder()
	strict.HandleFarmers(w, req)
	if w.Code != http.StatusBadGateway {
		t.Errorf("strict status = %d, want %d", w.Code, http.StatusBadGateway)
	}

	canned := NewAPIHandlers(newTestServices(t, downBackend(), demo.NewCanned(testLogger())), testPageSize, testLogger())
	w = httptest.NewRecorder()
	canned.HandleFarmers(w, req.Clone(context.Background()))
	if w.Code != http.StatusOK {
		t.Fatalf("canned status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"demo":true`) {
		t.Errorf("canned response should be flagged demo: %s", w.Body.String())
	}
}

func TestAPIHandlers_HandleMarketplace_CacheControl(t *testing.T) {
	tests := []struct {
		name     string
		backend  http.Handler
		provider demo.Provider
		want     string
	}{
		{"live listings", fakeBackend(), nil, "private, max-age=60"},
		{"demo listings", downBackend(), demo.NewCanned(testLogger()), "private, no-store"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAPIHandlers(newTestServices(t, tt.backend, tt.provider), testPageSize, testLogger())
			w := httptest.NewRecorder()
			h.HandleMarketplace(w, httptest.NewRequest(http.MethodGet, "/api/marketplace", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body.String())
			}
			if got := w.Header().Get("Cache-Control"); got != tt.want {
				t.Errorf("Cache-Control = %q, want %q", got, tt.want)
			}
		})
	}
}
