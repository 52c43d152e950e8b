package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(config.APIConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, staticToken("tok-123"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestListCommissions_DecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/commissions" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("status"); got != "approved" {
			t.Errorf("status query = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("authorization = %q", got)
		}
		io.WriteString(w, `{"success":true,"data":[
			{"id":"C1","farmer":{"_id":"F1","name":"Amina"},"order":"O1","amount":1500,"rate":0.05,"status":"approved","orderAmount":30000,"orderDate":"2024-03-01T00:00:00Z"},
			{"id":"C2","farmer":"F2","order":"O2","amount":500,"rate":0.05,"status":"approved","orderAmount":10000,"orderDate":"2024-03-02T00:00:00Z"}
		]}`)
	})

	got, err := c.ListCommissions(context.Background(), CommissionFilter{Status: "approved"})
	if err != nil {
		t.Fatalf("ListCommissions() error = %v", err)
	}

	want := []models.Party{{ID: "F1", Name: "Amina"}, {ID: "F2"}}
	var farmers []models.Party
	for _, cm := range got {
		farmers = append(farmers, cm.Farmer)
	}
	if diff := cmp.Diff(want, farmers); diff != "" {
		t.Errorf("farmer refs mismatch (-want +got):\n%s", diff)
	}
	if got[0].Status != models.CommissionApproved || got[0].Amount != 1500 {
		t.Errorf("first commission = %+v", got[0])
	}
}

func TestCall_SuccessFalseIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "Insufficient approved balance"})
	})

	_, err := c.RequestPayout(context.Background(), models.PayoutRequest{CommissionIDs: []string{"C1"}, Amount: 10})
	if !apperrors.IsCode(err, apperrors.CodeUpstreamRejected) {
		t.Fatalf("err = %v, want UPSTREAM_REJECTED", err)
	}

	var appErr *apperrors.AppError
	errors.As(err, &appErr)
	if appErr.Message != "Insufficient approved balance" {
		t.Errorf("message = %q", appErr.Message)
	}
}

func TestCall_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.ErrorCode
	}{
		{"unauthorized", http.StatusUnauthorized, `{"success":false,"error":"token expired"}`, apperrors.CodeUnauthorized},
		{"not found", http.StatusNotFound, `{"success":false,"message":"no such batch"}`, apperrors.CodeNotFound},
		{"validation", http.StatusBadRequest, `{"success":false,"error":"amount required"}`, apperrors.CodeUpstreamRejected},
		{"server error html", http.StatusBadGateway, `<html>bad gateway</html>`, apperrors.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := c.VerifyHarvest(context.Background(), "B-1")
			if got := apperrors.CodeOf(err); got != tt.want {
				t.Errorf("code = %s, want %s (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCall_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})

	_, err := c.ListFarmers(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeUpstream) {
		t.Errorf("err = %v, want UPSTREAM_ERROR", err)
	}
}

func TestCall_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchSuggestions(ctx, "mai")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled in chain", err)
	}
}

func TestPostEndpoints_SendJSONBody(t *testing.T) {
	var gotPath string
	var gotBody models.LoanReferral
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q", ct)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": map[string]string{"id": "LR1", "status": "submitted"}})
	})

	in := models.LoanReferral{FarmerID: "F1", Amount: 250000, Purpose: "Irrigation pump"}
	res, err := c.SubmitLoanReferral(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitLoanReferral() error = %v", err)
	}
	if gotPath != "/api/fintech/loan-referrals" {
		t.Errorf("path = %q", gotPath)
	}
	if diff := cmp.Diff(in, gotBody); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if res.ID != "LR1" {
		t.Errorf("result = %+v", res)
	}
}

func TestPathParamsAreEscaped(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": "R1", "status": "completed"}})
	})

	if _, err := c.CompleteReferral(context.Background(), "F 1/x"); err != nil {
		t.Fatalf("CompleteReferral() error = %v", err)
	}
	if gotPath != "/api/referrals/F%201%2Fx/complete" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestOrdersQueryAndNoTokenHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("anonymous client should not send Authorization")
		}
		if got := r.URL.Query().Get("buyerId"); got != "B7" {
			t.Errorf("buyerId = %q", got)
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": []any{}})
	}))
	defer srv.Close()

	c, err := New(config.APIConfig{BaseURL: srv.URL + "/", Timeout: time.Second}, staticToken(""), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	orders, err := c.ListOrders(context.Background(), "B7")
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("orders = %v", orders)
	}
}

func TestClient_TokenFromContext(t *testing.T) {
	tests := []struct {
		name   string
		tokens TokenSource
		ctx    context.Context
		want   string
	}{
		{"context token", nil, auth.WithToken(context.Background(), "alice"), "Bearer alice"},
		{"context wins over source", staticToken("cli"), auth.WithToken(context.Background(), "alice"), "Bearer alice"},
		{"source fallback", staticToken("cli"), context.Background(), "Bearer cli"},
		{"anonymous", nil, context.Background(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				io.WriteString(w, `{"success":true,"data":[]}`)
			}))
			t.Cleanup(srv.Close)

			c, err := New(config.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, tt.tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if _, err := c.ListFarmers(tt.ctx); err != nil {
				t.Fatalf("ListFarmers() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Authorization = %q, want %q", got, tt.want)
			}
		})
	}
}
