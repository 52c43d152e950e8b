package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"grochain-dashboard/internal/models"
)

// CommissionFilter narrows GET /api/commissions server-side.
type CommissionFilter struct {
	Status  string
	Partner string
}

func (c *Client) ListCommissions(ctx context.Context, f CommissionFilter) ([]models.Commission, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Partner != "" {
		q.Set("partner", f.Partner)
	}
	return call[[]models.Commission](ctx, c, http.MethodGet, "/api/commissions", q, nil)
}

func (c *Client) RequestPayout(ctx context.Context, req models.PayoutRequest) (models.PayoutReceipt, error) {
	return call[models.PayoutReceipt](ctx, c, http.MethodPost, "/api/commissions/payout", nil, req)
}

func (c *Client) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	return call[[]models.Farmer](ctx, c, http.MethodGet, "/api/farmers", nil, nil)
}

func (c *Client) CreateLoanApplication(ctx context.Context, app models.LoanApplication) (models.LoanApplicationResult, error) {
	return call[models.LoanApplicationResult](ctx, c, http.MethodPost, "/api/loans", nil, app)
}

func (c *Client) ListReferrals(ctx context.Context) ([]models.Referral, error) {
	return call[[]models.Referral](ctx, c, http.MethodGet, "/api/referrals", nil, nil)
}

func (c *Client) CompleteReferral(ctx context.Context, farmerID string) (models.Referral, error) {
	return call[models.Referral](ctx, c, http.MethodPost, "/api/referrals/"+url.PathEscape(farmerID)+"/complete", nil, struct{}{})
}

// ListingQuery narrows GET /api/marketplace/listings.
type ListingQuery struct {
	Search   string
	Category string
}

func (c *Client) ListListings(ctx context.Context, lq ListingQuery) ([]models.Listing, error) {
	q := url.Values{}
	if lq.Search != "" {
		q.Set("search", lq.Search)
	}
	if lq.Category != "" {
		q.Set("category", lq.Category)
	}
	return call[[]models.Listing](ctx, c, http.MethodGet, "/api/marketplace/listings", q, nil)
}

func (c *Client) SearchSuggestions(ctx context.Context, term string) ([]models.SearchSuggestion, error) {
	q := url.Values{"q": {term}}
	return call[[]models.SearchSuggestion](ctx, c, http.MethodGet, "/api/marketplace/search/suggestions", q, nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (models.Listing, error) {
	return call[models.Listing](ctx, c, http.MethodGet, "/api/marketplace/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListOrders(ctx context.Context, buyerID string) ([]models.Order, error) {
	q := url.Values{}
	if buyerID != "" {
		q.Set("buyerId", buyerID)
	}
	return call[[]models.Order](ctx, c, http.MethodGet, "/api/orders", q, nil)
}

func (c *Client) InitiatePayment(ctx context.Context, p models.PaymentInitiation) (models.PaymentSession, error) {
	return call[models.PaymentSession](ctx, c, http.MethodPost, "/api/payments/initiate", nil, p)
}

func (c *Client) CreateHarvest(ctx context.Context, h models.Harvest) (models.Harvest, error) {
	return call[models.Harvest](ctx, c, http.MethodPost, "/api/harvests", nil, h)
}

func (c *Client) VerifyHarvest(ctx context.Context, batchID string) (models.HarvestVerification, error) {
	return call[models.HarvestVerification](ctx, c, http.MethodGet, "/api/harvests/verify/"+url.PathEscape(batchID), nil, nil)
}

func (c *Client) GetCreditScore(ctx context.Context, userID string) (models.CreditScore, error) {
	return call[models.CreditScore](ctx, c, http.MethodGet, "/api/fintech/credit-score/"+url.PathEscape(userID), nil, nil)
}

func (c *Client) SubmitLoanReferral(ctx context.Context, r models.LoanReferral) (models.LoanReferralResult, error) {
	return call[models.LoanReferralResult](ctx, c, http.MethodPost, "/api/fintech/loan-referrals", nil, r)
}

func (c *Client) WebsocketStatus(ctx context.Context) (models.WebsocketStatus, error) {
	return call[models.WebsocketStatus](ctx, c, http.MethodGet, "/api/websocket/status", nil, nil)
}

func (c *Client) NotifyUser(ctx context.Context, n models.Notification) (models.NotificationResult, error) {
	return call[models.NotificationResult](ctx, c, http.MethodPost, "/api/websocket/notify-user", nil, n)
}
