package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"grochain-dashboard/internal/apiclient"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errBackendDown = apperrors.Upstream(io.ErrUnexpectedEOF, "GroChain API is unreachable")

// fakeAPI is an in-memory backend. A non-nil err is returned by every call.
type fakeAPI struct {
	mu sync.Mutex

	err         error
	commissions []models.Commission
	farmers     []models.Farmer
	referrals   []models.Referral
	orders      []models.Order
	listings    []models.Listing
	suggestions []models.SearchSuggestion
	credit      models.CreditScore
	harvest     models.HarvestVerification

	payouts      []models.PayoutRequest
	completed    []string
	loans        []models.LoanApplication
	loanRefs     []models.LoanReferral
	harvests     []models.Harvest
	payments     []models.PaymentInitiation
	notified     []models.Notification
	listingQuery apiclient.ListingQuery
}

func (f *fakeAPI) ListCommissions(_ context.Context, _ apiclient.CommissionFilter) ([]models.Commission, error) {
	return f.commissions, f.err
}

func (f *fakeAPI) RequestPayout(_ context.Context, req models.PayoutRequest) (models.PayoutReceipt, error) {
	if f.err != nil {
		return models.PayoutReceipt{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payouts = append(f.payouts, req)
	return models.PayoutReceipt{WithdrawalID: "W100", Amount: req.Amount, Status: "processing"}, nil
}

func (f *fakeAPI) ListFarmers(_ context.Context) ([]models.Farmer, error) {
	return f.farmers, f.err
}

func (f *fakeAPI) ListReferrals(_ context.Context) ([]models.Referral, error) {
	return f.referrals, f.err
}

func (f *fakeAPI) CompleteReferral(_ context.Context, farmerID string) (models.Referral, error) {
	if f.err != nil {
		return models.Referral{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = append(f.completed, farmerID)
	for _, r := range f.referrals {
		if r.Farmer.ID == farmerID {
			r.Status = models.ReferralCompleted
			return r, nil
		}
	}
	return models.Referral{}, apperrors.NotFound("referral not found")
}

func (f *fakeAPI) ListOrders(_ context.Context, _ string) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeAPI) ListListings(_ context.Context, q apiclient.ListingQuery) ([]models.Listing, error) {
	f.mu.Lock()
	f.listingQuery = q
	f.mu.Unlock()
	return f.listings, f.err
}

func (f *fakeAPI) SearchSuggestions(ctx context.Context, _ string) ([]models.SearchSuggestion, error) {
	if ctx.Err() != nil {
		return nil, apperrors.Upstream(ctx.Err(), "GroChain API is unreachable")
	}
	return f.suggestions, f.err
}

func (f *fakeAPI) GetProduct(_ context.Context, id string) (models.Listing, error) {
	if f.err != nil {
		return models.Listing{}, f.err
	}
	for _, l := range f.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, apperrors.NotFound("Product not found")
}

func (f *fakeAPI) CreateLoanApplication(_ context.Context, app models.LoanApplication) (models.LoanApplicationResult, error) {
	if f.err != nil {
		return models.LoanApplicationResult{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loans = append(f.loans, app)
	return models.LoanApplicationResult{ID: "LA001", Status: "pending"}, nil
}

func (f *fakeAPI) GetCreditScore(_ context.Context, _ string) (models.CreditScore, error) {
	return f.credit, f.err
}

func (f *fakeAPI) SubmitLoanReferral(_ context.Context, r models.LoanReferral) (models.LoanReferralResult, error) {
	if f.err != nil {
		return models.LoanReferralResult{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loanRefs = append(f.loanRefs, r)
	return models.LoanReferralResult{ID: "LR001", Status: "submitted"}, nil
}

func (f *fakeAPI) CreateHarvest(_ context.Context, h models.Harvest) (models.Harvest, error) {
	if f.err != nil {
		return models.Harvest{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.harvests = append(f.harvests, h)
	h.BatchID = "GC-BATCH-100"
	return h, nil
}

func (f *fakeAPI) VerifyHarvest(_ context.Context, _ string) (models.HarvestVerification, error) {
	return f.harvest, f.err
}

func (f *fakeAPI) InitiatePayment(_ context.Context, p models.PaymentInitiation) (models.PaymentSession, error) {
	if f.err != nil {
		return models.PaymentSession{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, p)
	return models.PaymentSession{Reference: p.Reference, AuthorizationURL: "https://pay.example/" + p.Reference, Status: "pending"}, nil
}

func (f *fakeAPI) WebsocketStatus(_ context.Context) (models.WebsocketStatus, error) {
	return models.WebsocketStatus{Connected: f.err == nil, ConnectedUsers: 3}, f.err
}

func (f *fakeAPI) NotifyUser(_ context.Context, n models.Notification) (models.NotificationResult, error) {
	if f.err != nil {
		return models.NotificationResult{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, n)
	return models.NotificationResult{Delivered: true}, nil
}
