// Package finance holds the loan and credit arithmetic shown on the fintech pages.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// Tier is the affordability band derived from the debt-to-income ratio.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
	TierUnknown   Tier = "unknown"
)

var (
	twelve         = decimal.NewFromInt(12)
	excellentRatio = decimal.RequireFromString("0.30")
	goodRatio      = decimal.RequireFromString("0.40")
	fairRatio      = decimal.RequireFromString("0.50")
)

// MonthlyPayment spreads flat (non-amortised) interest evenly over the term:
// (amount + amount*rate*(term/12)) / term. A zero, negative or non-finite
// amount or rate, or a term below one month, yields zero.
func MonthlyPayment(amount float64, termMonths int, annualRate float64) decimal.Decimal {
	if !finite(amount, annualRate) || amount <= 0 || termMonths <= 0 {
		return decimal.Zero
	}
	return monthlyPayment(decimal.NewFromFloat(amount), decimal.NewFromInt(int64(termMonths)), decimal.NewFromFloat(annualRate))
}

func monthlyPayment(amount, term, rate decimal.Decimal) decimal.Decimal {
	interest := amount.Mul(rate).Mul(term.Div(twelve))
	return amount.Add(interest).Div(term)
}

// DebtToIncome returns (monthlyPayment + existingLoans) / monthlyIncome.
// ok is false when income is not positive.
func DebtToIncome(monthlyPayment, existingLoans, monthlyIncome decimal.Decimal) (ratio decimal.Decimal, ok bool) {
	if !monthlyIncome.IsPositive() {
		return decimal.Zero, false
	}
	return monthlyPayment.Add(existingLoans).Div(monthlyIncome), true
}

// TierForRatio maps a debt-to-income ratio onto a tier. Bounds are inclusive.
func TierForRatio(ratio decimal.Decimal) Tier {
	switch {
	case ratio.LessThanOrEqual(excellentRatio):
		return TierExcellent
	case ratio.LessThanOrEqual(goodRatio):
		return TierGood
	case ratio.LessThanOrEqual(fairRatio):
		return TierFair
	default:
		return TierPoor
	}
}

// Eligibility classifies a requested loan against the borrower's income.
// Missing income or amount gives TierUnknown.
func Eligibility(amount float64, termMonths int, annualRate, monthlyIncome, existingLoans float64) Tier {
	return Calculate(Quote{
		Amount:        amount,
		TermMonths:    termMonths,
		AnnualRate:    annualRate,
		MonthlyIncome: monthlyIncome,
		ExistingLoans: existingLoans,
	}).Tier
}

// Quote is the input of the affordability calculator.
type Quote struct {
	Amount        float64
	TermMonths    int
	AnnualRate    float64
	MonthlyIncome float64
	ExistingLoans float64
}

// Estimate is the calculator's full answer.
type Estimate struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalRepayable decimal.Decimal `json:"totalRepayable"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	Ratio          decimal.Decimal `json:"debtToIncome"`
	Tier           Tier            `json:"tier"`
	AnnualRate     float64         `json:"annualRate"`
}

// Calculate computes payment, totals and tier for q. Any NaN or infinite input
// gives a zero estimate with TierUnknown.
func Calculate(q Quote) Estimate {
	if !finite(q.Amount, q.AnnualRate, q.MonthlyIncome, q.ExistingLoans) {
		return Estimate{Tier: TierUnknown}
	}
	est := Estimate{
		MonthlyPayment: MonthlyPayment(q.Amount, q.TermMonths, q.AnnualRate),
		Tier:           TierUnknown,
		AnnualRate:     q.AnnualRate,
	}
	if q.TermMonths > 0 {
		est.TotalRepayable = est.MonthlyPayment.Mul(decimal.NewFromInt(int64(q.TermMonths)))
	}
	if q.Amount > 0 {
		est.TotalInterest = est.TotalRepayable.Sub(decimal.NewFromFloat(q.Amount))
	}

	if q.Amount <= 0 || q.MonthlyIncome <= 0 {
		return est
	}

	ratio, ok := DebtToIncome(est.MonthlyPayment, decimal.NewFromFloat(q.ExistingLoans), decimal.NewFromFloat(q.MonthlyIncome))
	if !ok {
		return est
	}
	est.Ratio = ratio
	est.Tier = TierForRatio(ratio)
	return est
}

// finite reports whether every v is neither NaN nor infinite. decimal
// cannot represent either.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
