package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"grochain-dashboard/internal/apiclient"
	"grochain-dashboard/internal/config"
	"grochain-dashboard/internal/demo"
	"grochain-dashboard/internal/services"
)

const testPageSize = 10

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type noToken struct{}

func (noToken) Token() string { return "" }

func envelope(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": status < 300, "data": data})
}

// fakeBackend answers the GroChain endpoints the handlers reach.
func fakeBackend() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/commissions", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[
			{"id":"C1","farmer":{"_id":"F1","name":"Amina Bello"},"order":"O1","amount":1000,"rate":0.05,"status":"pending","orderAmount":20000,"orderDate":"2024-03-01T00:00:00Z"},
			{"id":"C2","farmer":{"_id":"F2","name":"Chinedu Okafor"},"order":"O2","amount":1500,"rate":0.05,"status":"approved","orderAmount":30000,"orderDate":"2024-03-02T00:00:00Z"},
			{"id":"C3","farmer":"F3","order":"O3","amount":2000,"rate":0.05,"status":"paid","orderAmount":40000,"orderDate":"2024-03-03T00:00:00Z","withdrawalId":"W1"}
		]}`)
	})
	mux.HandleFunc("POST /api/commissions/payout", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CommissionIDs []string `json:"commissionIds"`
			Amount        float64  `json:"amount"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		envelope(w, http.StatusOK, map[string]any{"withdrawalId": "W9", "amount": req.Amount, "status": "processing"})
	})
	mux.HandleFunc("GET /api/farmers", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[
			{"id":"F1","name":"Amina Bello","email":"amina@farm.ng","phone":"0803","status":"active"},
			{"id":"F2","name":"Chinedu Okafor","email":"chinedu@farm.ng","phone":"0805","status":"inactive"}
		]}`)
	})
	mux.HandleFunc("GET /api/referrals", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[
			{"id":"R1","farmer":{"_id":"F1","name":"Amina Bello"},"commissionRate":0.05,"status":"active"},
			{"id":"R2","farmer":{"_id":"F2","name":"Chinedu Okafor"},"commissionRate":0.05,"status":"completed","commission":2500}
		]}`)
	})
	mux.HandleFunc("POST /api/referrals/{farmerID}/complete", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"id": "R1", "farmer": r.PathValue("farmerID"), "status": "completed"})
	})
	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[
			{"id":"O1","orderNumber":"GC-1","status":"delivered","paymentStatus":"paid","totalAmount":4500,"seller":{"_id":"F1","name":"Amina Bello"}}
		]}`)
	})
	mux.HandleFunc("GET /api/marketplace/listings", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[
			{"id":"L1","name":"Yellow Maize","price":450,"unit":"kg","category":"grains","location":"Kaduna","farmer":"F1"},
			{"id":"L2","name":"Ofada Rice","price":1200,"unit":"kg","category":"grains","location":"Ogun","farmer":"F2"}
		]}`)
	})
	mux.HandleFunc("GET /api/marketplace/search/suggestions", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, []map[string]any{{"text": "maize"}, {"text": "maize flour"}})
	})
	mux.HandleFunc("GET /api/marketplace/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "L2" {
			envelope(w, http.StatusNotFound, nil)
			return
		}
		io.WriteString(w, `{"success":true,"data":{"id":"L2","name":"Ofada Rice","price":1200,"unit":"kg","category":"grains","farmer":"F2"}}`)
	})
	mux.HandleFunc("POST /api/loans", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusCreated, map[string]any{"id": "LA1", "status": "pending"})
	})
	mux.HandleFunc("GET /api/fintech/credit-score/{userID}", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"score": 680, "history": []any{}})
	})
	mux.HandleFunc("POST /api/fintech/loan-referrals", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusCreated, map[string]any{"id": "LR1", "status": "submitted"})
	})
	mux.HandleFunc("POST /api/harvests", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		body["batchId"] = "GC-BATCH-1"
		envelope(w, http.StatusCreated, body)
	})
	mux.HandleFunc("GET /api/harvests/verify/{batchID}", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"verified": true, "harvest": map[string]any{"batchId": r.PathValue("batchID"), "cropType": "maize"}})
	})
	mux.HandleFunc("POST /api/payments/initiate", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		envelope(w, http.StatusCreated, map[string]any{"reference": body["reference"], "authorizationUrl": "https://pay.example/x", "status": "pending"})
	})
	mux.HandleFunc("GET /api/websocket/status", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"connected": true, "connectedUsers": 4})
	})
	mux.HandleFunc("POST /api/websocket/notify-user", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"delivered": true})
	})
	return mux
}

// newTestServices wires the real client and services against backend.
func newTestServices(t *testing.T, backend http.Handler, provider demo.Provider) *Services {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := testLogger()
	client, err := apiclient.New(config.APIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, noToken{}, logger)
	if err != nil {
		t.Fatalf("apiclient.New() error = %v", err)
	}
	if provider == nil {
		provider = demo.Strict{}
	}

	commissions := services.NewCommissions(client, provider, logger)
	referrals := services.NewReferrals(client, provider, logger)
	farmers := services.NewFarmers(client, provider, logger)
	return &Services{
		Commissions:   commissions,
		Farmers:       farmers,
		Referrals:     referrals,
		Orders:        services.NewOrders(client, provider, logger),
		Marketplace:   services.NewMarketplace(client, provider, logger),
		Loans:         services.NewLoans(client, config.LoanConfig{ApplicationRate: 0.15, CalculatorRate: 0.12}, logger),
		Fintech:       services.NewFintech(client, provider, logger),
		Harvests:      services.NewHarvests(client, provider, logger),
		Payments:      services.NewPayments(client, logger),
		Notifications: services.NewNotifications(client, logger),
		Overview:      services.NewOverview(commissions, referrals, farmers),
	}
}

// downBackend fails every call as if the API were unreachable.
func downBackend() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeResponse(t *testing.T, body io.Reader) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
