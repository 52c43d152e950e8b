// Package services turns GroChain API data into page view models: filtered,
// paginated lists, derived subsets and summaries. Services are stateless and
// safe for concurrent use.
package services

import (
	"context"
	"errors"

	"grochain-dashboard/internal/apiclient"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
)

// The interfaces below are the slices of *apiclient.Client each service uses.

type CommissionAPI interface {
	ListCommissions(ctx context.Context, f apiclient.CommissionFilter) ([]models.Commission, error)
	RequestPayout(ctx context.Context, req models.PayoutRequest) (models.PayoutReceipt, error)
}

type FarmerAPI interface {
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
}

type ReferralAPI interface {
	ListReferrals(ctx context.Context) ([]models.Referral, error)
	CompleteReferral(ctx context.Context, farmerID string) (models.Referral, error)
}

type OrderAPI interface {
	ListOrders(ctx context.Context, buyerID string) ([]models.Order, error)
}

type MarketplaceAPI interface {
	ListListings(ctx context.Context, q apiclient.ListingQuery) ([]models.Listing, error)
	SearchSuggestions(ctx context.Context, term string) ([]models.SearchSuggestion, error)
	GetProduct(ctx context.Context, id string) (models.Listing, error)
}

type LoanAPI interface {
	CreateLoanApplication(ctx context.Context, app models.LoanApplication) (models.LoanApplicationResult, error)
}

type FintechAPI interface {
	GetCreditScore(ctx context.Context, userID string) (models.CreditScore, error)
	SubmitLoanReferral(ctx context.Context, r models.LoanReferral) (models.LoanReferralResult, error)
}

type HarvestAPI interface {
	CreateHarvest(ctx context.Context, h models.Harvest) (models.Harvest, error)
	VerifyHarvest(ctx context.Context, batchID string) (models.HarvestVerification, error)
}

type PaymentAPI interface {
	InitiatePayment(ctx context.Context, p models.PaymentInitiation) (models.PaymentSession, error)
}

type NotificationAPI interface {
	WebsocketStatus(ctx context.Context) (models.WebsocketStatus, error)
	NotifyUser(ctx context.Context, n models.Notification) (models.NotificationResult, error)
}

var _ interface {
	CommissionAPI
	FarmerAPI
	ReferralAPI
	OrderAPI
	MarketplaceAPI
	LoanAPI
	FintechAPI
	HarvestAPI
	PaymentAPI
	NotificationAPI
} = (*apiclient.Client)(nil)

// canFallBack reports whether a failed read may be replaced by the demo
// provider. Answers the backend gave on purpose (not found, auth) and
// cancelled requests are never masked.
func canFallBack(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNotFound, apperrors.CodeUnauthorized, apperrors.CodeForbidden, apperrors.CodeValidation:
		return false
	}
	return true
}

// load runs fetch and, when it fails in a way that may fall back, asks
// fallback for a substitute. fromDemo reports whether the substitute was used.
func load[T any](ctx context.Context, fetch func(context.Context) (T, error), fallback func(context.Context, error) (T, error)) (data T, fromDemo bool, err error) {
	data, err = fetch(ctx)
	if err == nil {
		return data, false, nil
	}
	if !canFallBack(ctx, err) {
		return data, false, err
	}
	data, err = fallback(ctx, err)
	if err != nil {
		return data, false, err
	}
	return data, true, nil
}
