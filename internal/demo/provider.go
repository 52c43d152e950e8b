// Package demo decides what a page shows when the GroChain API fails: either
// the failure itself (Strict) or canned showcase data (Canned).
package demo

import (
	"context"
	"errors"
	"log/slog"

	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/models"
)

// Provider is consulted only after a backend call has failed with cause.
type Provider interface {
	Name() string
	Commissions(ctx context.Context, cause error) ([]models.Commission, error)
	Farmers(ctx context.Context, cause error) ([]models.Farmer, error)
	Referrals(ctx context.Context, cause error) ([]models.Referral, error)
	Listings(ctx context.Context, cause error) ([]models.Listing, error)
	Product(ctx context.Context, id string, cause error) (models.Listing, error)
	Orders(ctx context.Context, buyerID string, cause error) ([]models.Order, error)
	CreditScore(ctx context.Context, userID string, cause error) (models.CreditScore, error)
	Harvest(ctx context.Context, batchID string, cause error) (models.HarvestVerification, error)
}

// New returns Canned when enabled, Strict otherwise.
func New(enabled bool, logger *slog.Logger) Provider {
	if enabled {
		return NewCanned(logger)
	}
	return Strict{}
}

// Strict fails loudly: every fallback returns the original failure.
type Strict struct{}

func (Strict) Name() string { return "strict" }

func (Strict) Commissions(_ context.Context, cause error) ([]models.Commission, error) {
	return nil, surface(cause, "Failed to load commissions")
}

func (Strict) Farmers(_ context.Context, cause error) ([]models.Farmer, error) {
	return nil, surface(cause, "Failed to load farmers")
}

func (Strict) Referrals(_ context.Context, cause error) ([]models.Referral, error) {
	return nil, surface(cause, "Failed to load referrals")
}

func (Strict) Listings(_ context.Context, cause error) ([]models.Listing, error) {
	return nil, surface(cause, "Failed to load marketplace listings")
}

func (Strict) Product(_ context.Context, _ string, cause error) (models.Listing, error) {
	return models.Listing{}, surface(cause, "Failed to load product")
}

func (Strict) Orders(_ context.Context, _ string, cause error) ([]models.Order, error) {
	return nil, surface(cause, "Failed to load orders")
}

func (Strict) CreditScore(_ context.Context, _ string, cause error) (models.CreditScore, error) {
	return models.CreditScore{}, surface(cause, "Failed to load credit score")
}

func (Strict) Harvest(_ context.Context, _ string, cause error) (models.HarvestVerification, error) {
	return models.HarvestVerification{}, surface(cause, "Failed to verify harvest")
}

// surface keeps an existing AppError (and its code) and marks anything else
// as an upstream failure.
func surface(cause error, message string) error {
	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) {
		return cause
	}
	return apperrors.Upstream(cause, message)
}

// Canned substitutes fixture data so pages stay navigable while the backend
// is down. Cancelled requests are still reported as errors.
type Canned struct {
	logger *slog.Logger
}

func NewCanned(logger *slog.Logger) *Canned {
	return &Canned{logger: logger}
}

func (c *Canned) Name() string { return "canned" }

func (c *Canned) fallback(ctx context.Context, dataset string, cause error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.logger.WarnContext(ctx, "serving demo data", "dataset", dataset, "cause", cause)
	return nil
}

func (c *Canned) Commissions(ctx context.Context, cause error) ([]models.Commission, error) {
	if err := c.fallback(ctx, "commissions", cause); err != nil {
		return nil, err
	}
	return commissions(), nil
}

func (c *Canned) Farmers(ctx context.Context, cause error) ([]models.Farmer, error) {
	if err := c.fallback(ctx, "farmers", cause); err != nil {
		return nil, err
	}
	return farmers(), nil
}

func (c *Canned) Referrals(ctx context.Context, cause error) ([]models.Referral, error) {
	if err := c.fallback(ctx, "referrals", cause); err != nil {
		return nil, err
	}
	return referrals(), nil
}

func (c *Canned) Listings(ctx context.Context, cause error) ([]models.Listing, error) {
	if err := c.fallback(ctx, "listings", cause); err != nil {
		return nil, err
	}
	return listings(), nil
}

func (c *Canned) Product(ctx context.Context, id string, cause error) (models.Listing, error) {
	if err := c.fallback(ctx, "product", cause); err != nil {
		return models.Listing{}, err
	}
	for _, l := range listings() {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, apperrors.NotFound("Product not found")
}

func (c *Canned) Orders(ctx context.Context, buyerID string, cause error) ([]models.Order, error) {
	if err := c.fallback(ctx, "orders", cause); err != nil {
		return nil, err
	}
	out := orders()
	for i := range out {
		if buyerID != "" {
			out[i].Buyer.ID = buyerID
		}
	}
	return out, nil
}

func (c *Canned) CreditScore(ctx context.Context, _ string, cause error) (models.CreditScore, error) {
	if err := c.fallback(ctx, "credit_score", cause); err != nil {
		return models.CreditScore{}, err
	}
	return creditScore(), nil
}

func (c *Canned) Harvest(ctx context.Context, batchID string, cause error) (models.HarvestVerification, error) {
	if err := c.fallback(ctx, "harvest", cause); err != nil {
		return models.HarvestVerification{}, err
	}
	h := harvest()
	h.BatchID = batchID
	return models.HarvestVerification{Verified: true, Harvest: h}, nil
}
