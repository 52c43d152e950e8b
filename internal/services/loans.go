package services

import (
	"context"
	"log/slog"

	"grochain-dashboard/internal/config"
	"grochain-dashboard/internal/finance"
	"grochain-dashboard/internal/models"
)

// QuoteRequest is the affordability calculator's input.
type QuoteRequest struct {
	Amount        float64 `json:"amount"`
	Term          int     `json:"term"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	ExistingLoans float64 `json:"existingLoans"`
}

type LoanOutcome struct {
	Application models.LoanApplicationResult `json:"application"`
	Estimate    finance.Estimate             `json:"estimate"`
}

type Loans struct {
	api    LoanAPI
	rates  config.LoanConfig
	logger *slog.Logger
}

func NewLoans(api LoanAPI, rates config.LoanConfig, logger *slog.Logger) *Loans {
	return &Loans{api: api, rates: rates, logger: logger}
}

// Quote runs the standalone affordability calculator at the calculator rate.
func (s *Loans) Quote(q QuoteRequest) finance.Estimate {
	return finance.Calculate(finance.Quote{
		Amount:        q.Amount,
		TermMonths:    q.Term,
		AnnualRate:    s.rates.CalculatorRate,
		MonthlyIncome: q.MonthlyIncome,
		ExistingLoans: q.ExistingLoans,
	})
}

// Apply validates the application, prices it at the application rate and
// submits it. The estimate is returned alongside the backend's answer.
func (s *Loans) Apply(ctx context.Context, app models.LoanApplication) (*LoanOutcome, error) {
	if err := validateForm(app); err != nil {
		return nil, err
	}

	est := finance.Calculate(finance.Quote{
		Amount:        app.Amount,
		TermMonths:    app.Term,
		AnnualRate:    s.rates.ApplicationRate,
		MonthlyIncome: app.MonthlyIncome,
		ExistingLoans: app.ExistingLoans,
	})
	app.Rate = s.rates.ApplicationRate
	app.MonthlyRepay = est.MonthlyPayment.Round(2).InexactFloat64()

	res, err := s.api.CreateLoanApplication(ctx, app)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "loan application submitted",
		"application_id", res.ID,
		"amount", app.Amount,
		"term", app.Term,
		"tier", est.Tier,
	)
	return &LoanOutcome{Application: res, Estimate: est}, nil
}
