package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"grochain-dashboard/internal/apiclient"
	"grochain-dashboard/internal/demo"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

type CommissionSummary struct {
	TotalEarned    float64 `json:"totalEarned"`
	Pending        float64 `json:"pending"`
	Approved       float64 `json:"approved"`
	Paid           float64 `json:"paid"`
	PendingCount   int     `json:"pendingCount"`
	ApprovedCount  int     `json:"approvedCount"`
	PaidCount      int     `json:"paidCount"`
	CancelledCount int     `json:"cancelledCount"`
}

type CommissionDashboard struct {
	State              listing.State                   `json:"state"`
	Page               listing.Page[models.Commission] `json:"page"`
	Summary            CommissionSummary               `json:"summary"`
	PendingCommissions []models.Commission             `json:"pendingCommissions"`
	PayableIDs         []string                        `json:"payableIds"`
	Demo               bool                            `json:"demo"`
}

type Commissions struct {
	api    CommissionAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewCommissions(api CommissionAPI, provider demo.Provider, logger *slog.Logger) *Commissions {
	return &Commissions{api: api, demo: provider, logger: logger}
}

func (s *Commissions) load(ctx context.Context) ([]models.Commission, bool, error) {
	return load(ctx,
		func(ctx context.Context) ([]models.Commission, error) {
			return s.api.ListCommissions(ctx, apiclient.CommissionFilter{})
		},
		s.demo.Commissions,
	)
}

// Dashboard loads every commission, summarises them and returns the page
// selected by st.
func (s *Commissions) Dashboard(ctx context.Context, st listing.State) (*CommissionDashboard, error) {
	all, fromDemo, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	page := listing.Apply(st, all, func(c models.Commission) bool {
		return listing.MatchStatus(st.Status, string(c.Status)) &&
			listing.MatchAny(st.Search, c.ID, c.Order, c.Farmer.Name, c.Farmer.ID, c.WithdrawalID)
	})

	approved := listing.Filter(all, isStatus(models.CommissionApproved))
	payable := make([]string, len(approved))
	for i, c := range approved {
		payable[i] = c.ID
	}

	return &CommissionDashboard{
		State:              st,
		Page:               page,
		Summary:            Summarize(all),
		PendingCommissions: listing.Filter(all, isStatus(models.CommissionPending)),
		PayableIDs:         payable,
		Demo:               fromDemo,
	}, nil
}

func isStatus(status models.CommissionStatus) func(models.Commission) bool {
	return func(c models.Commission) bool { return c.Status == status }
}

// Summarize totals commissions by status. Cancelled commissions count
// towards nothing but CancelledCount.
func Summarize(cs []models.Commission) CommissionSummary {
	var sum CommissionSummary
	for _, c := range cs {
		switch c.Status {
		case models.CommissionPending:
			sum.Pending += c.Amount
			sum.PendingCount++
		case models.CommissionApproved:
			sum.Approved += c.Amount
			sum.ApprovedCount++
		case models.CommissionPaid:
			sum.Paid += c.Amount
			sum.PaidCount++
		case models.CommissionCancelled:
			sum.CancelledCount++
			continue
		}
		sum.TotalEarned += c.Amount
	}
	return sum
}

// RequestPayout asks for the given approved commissions to be paid out and
// then reloads the dashboard. The commission list is re-read from the
// backend first, so a commission approved or paid in another tab is judged
// on its current status.
func (s *Commissions) RequestPayout(ctx context.Context, ids []string, st listing.State) (models.PayoutReceipt, *CommissionDashboard, error) {
	if len(ids) == 0 {
		return models.PayoutReceipt{}, nil, apperrors.ValidationFields(map[string]string{"commissionIds": "select at least one commission"})
	}

	current, err := s.api.ListCommissions(ctx, apiclient.CommissionFilter{})
	if err != nil {
		return models.PayoutReceipt{}, nil, err
	}
	byID := make(map[string]models.Commission, len(current))
	for _, c := range current {
		byID[c.ID] = c
	}

	req := models.PayoutRequest{}
	for _, id := range ids {
		if slices.Contains(req.CommissionIDs, id) {
			continue
		}
		c, ok := byID[id]
		if !ok {
			return models.PayoutReceipt{}, nil, apperrors.NotFound(fmt.Sprintf("Commission %s not found", id))
		}
		if c.Status != models.CommissionApproved {
			return models.PayoutReceipt{}, nil, apperrors.Conflict(fmt.Sprintf("Commission %s is %s; only approved commissions can be paid out", id, c.Status))
		}
		req.CommissionIDs = append(req.CommissionIDs, id)
		req.Amount += c.Amount
	}

	receipt, err := s.api.RequestPayout(ctx, req)
	if err != nil {
		return models.PayoutReceipt{}, nil, err
	}
	s.logger.InfoContext(ctx, "payout requested",
		"withdrawal_id", receipt.WithdrawalID,
		"commissions", len(req.CommissionIDs),
		"amount", req.Amount,
	)

	dash, err := s.Dashboard(ctx, st)
	if err != nil {
		return receipt, nil, err
	}
	return receipt, dash, nil
}
