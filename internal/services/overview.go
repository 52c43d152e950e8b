package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"grochain-dashboard/internal/models"
)

// OverviewSummary is the partner home page: one number per dashboard.
type OverviewSummary struct {
	Commissions      CommissionSummary `json:"commissions"`
	ActiveReferrals  int               `json:"activeReferrals"`
	PendingReferrals int               `json:"pendingReferrals"`
	TotalFarmers     int               `json:"totalFarmers"`
	ActiveFarmers    int               `json:"activeFarmers"`
	Demo             bool              `json:"demo"`
}

type Overview struct {
	commissions *Commissions
	referrals   *Referrals
	farmers     *Farmers
}

func NewOverview(commissions *Commissions, referrals *Referrals, farmers *Farmers) *Overview {
	return &Overview{commissions: commissions, referrals: referrals, farmers: farmers}
}

// Summary loads commissions, referrals and farmers concurrently. The first
// failure cancels the other loads.
func (o *Overview) Summary(ctx context.Context) (*OverviewSummary, error) {
	var (
		cs                     []models.Commission
		rs                     []models.Referral
		fs                     []models.Farmer
		csDemo, rsDemo, fsDemo bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cs, csDemo, err = o.commissions.load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rs, rsDemo, err = o.referrals.load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		fs, fsDemo, err = o.farmers.load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &OverviewSummary{
		Commissions:  Summarize(cs),
		TotalFarmers: len(fs),
		Demo:         csDemo || rsDemo || fsDemo,
	}
	for _, r := range rs {
		switch r.Status {
		case models.ReferralActive:
			sum.ActiveReferrals++
		case models.ReferralPending:
			sum.PendingReferrals++
		}
	}
	for _, f := range fs {
		if f.Status == models.FarmerActive {
			sum.ActiveFarmers++
		}
	}
	return sum, nil
}
