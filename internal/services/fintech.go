package services

import (
	"context"
	"log/slog"
	"strings"

	"grochain-dashboard/internal/demo"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/finance"
	"grochain-dashboard/internal/models"
)

type CreditReport struct {
	Score  models.CreditScore `json:"score"`
	Rating finance.Rating     `json:"rating"`
	Demo   bool               `json:"demo"`
}

type Fintech struct {
	api    FintechAPI
	demo   demo.Provider
	logger *slog.Logger
}

func NewFintech(api FintechAPI, provider demo.Provider, logger *slog.Logger) *Fintech {
	return &Fintech{api: api, demo: provider, logger: logger}
}

func (s *Fintech) CreditScore(ctx context.Context, userID string) (*CreditReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.BadRequest("User id is required")
	}
	score, fromDemo, err := load(ctx,
		func(ctx context.Context) (models.CreditScore, error) { return s.api.GetCreditScore(ctx, userID) },
		func(ctx context.Context, cause error) (models.CreditScore, error) {
			return s.demo.CreditScore(ctx, userID, cause)
		},
	)
	if err != nil {
		return nil, err
	}
	return &CreditReport{Score: score, Rating: finance.CreditRating(score.Score), Demo: fromDemo}, nil
}

func (s *Fintech) ReferLoan(ctx context.Context, r models.LoanReferral) (models.LoanReferralResult, error) {
	if err := validateForm(r); err != nil {
		return models.LoanReferralResult{}, err
	}
	res, err := s.api.SubmitLoanReferral(ctx, r)
	if err != nil {
		return models.LoanReferralResult{}, err
	}
	s.logger.InfoContext(ctx, "loan referral submitted", "referral_id", res.ID, "farmer_id", r.FarmerID)
	return res, nil
}
