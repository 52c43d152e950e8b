package services

import (
	"context"
	"fmt"
	"log/slog"

	"grochain-dashboard/internal/demo"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
)

type ReferralDashboard struct {
	State            listing.State                 `json:"state"`
	Page             listing.Page[models.Referral] `json:"page"`
	ActiveReferrals  []models.Referral             `json:"activeReferrals"`
	PendingReferrals []models.Referral             `json:"pendingReferrals"`
	CompletedCount   int                           `json:"completedCount"`
	TotalCommission  float64                       `json:"totalCommission"`
	Demo             bool                          `json:"demo"`
}

type Referrals struct {
	api    ReferralAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewReferrals(api ReferralAPI, provider demo.Provider, logger *slog.Logger) *Referrals {
	return &Referrals{api: api, demo: provider, logger: logger}
}

func (s *Referrals) load(ctx context.Context) ([]models.Referral, bool, error) {
	return load(ctx, s.api.ListReferrals, s.demo.Referrals)
}

func (s *Referrals) Dashboard(ctx context.Context, st listing.State) (*ReferralDashboard, error) {
	all, fromDemo, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dash := &ReferralDashboard{
		State: st,
		Page: listing.Apply(st, all, func(r models.Referral) bool {
			return listing.MatchStatus(st.Status, string(r.Status)) &&
				listing.MatchAny(st.Search, r.Farmer.Name, r.Farmer.Email, r.Farmer.ID, r.Notes)
		}),
		ActiveReferrals:  listing.Filter(all, referralStatus(models.ReferralActive)),
		PendingReferrals: listing.Filter(all, referralStatus(models.ReferralPending)),
		Demo:             fromDemo,
	}
	for _, r := range all {
		if r.Status == models.ReferralCompleted {
			dash.CompletedCount++
		}
		if r.Commission != nil {
			dash.TotalCommission += *r.Commission
		}
	}
	return dash, nil
}

func referralStatus(status models.ReferralStatus) func(models.Referral) bool {
	return func(r models.Referral) bool { return r.Status == status }
}

// Complete marks the farmer's referral completed and reloads the dashboard.
func (s *Referrals) Complete(ctx context.Context, farmerID string, st listing.State) (models.Referral, *ReferralDashboard, error) {
	if farmerID == "" {
		return models.Referral{}, nil, apperrors.ValidationFields(map[string]string{"farmerId": "farmerId is required"})
	}

	current, err := s.api.ListReferrals(ctx)
	if err != nil {
		return models.Referral{}, nil, err
	}

	// A farmer may have been referred more than once; any open referral can
	// be completed.
	referred, open := false, false
	for _, r := range current {
		if r.Farmer.ID != farmerID {
			continue
		}
		referred = true
		if r.Status != models.ReferralCompleted {
			open = true
			break
		}
	}
	if !referred {
		return models.Referral{}, nil, apperrors.NotFound(fmt.Sprintf("No referral for farmer %s", farmerID))
	}
	if !open {
		return models.Referral{}, nil, apperrors.Conflict(fmt.Sprintf("Referral for farmer %s is already completed", farmerID))
	}

	updated, err := s.api.CompleteReferral(ctx, farmerID)
	if err != nil {
		return models.Referral{}, nil, err
	}
	s.logger.InfoContext(ctx, "referral completed", "farmer_id", farmerID, "referral_id", updated.ID)

	dash, err := s.Dashboard(ctx, st)
	if err != nil {
		return updated, nil, err
	}
	return updated, dash, nil
}
