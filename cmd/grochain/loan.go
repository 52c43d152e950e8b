package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"grochain-dashboard/internal/finance"
)

var hundred = decimal.NewFromInt(100)

type loanFlags struct {
	amount   float64
	term     int
	rate     float64
	income   float64
	existing float64
}

func (a *app) loanCmd() *cobra.Command {
	loan := &cobra.Command{
		Use:   "loan",
		Short: "Loan calculator",
	}

	var f loanFlags
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Estimate monthly repayment and eligibility",
		Long: `Estimate a flat-interest loan the way the dashboard calculator does.

When --rate is omitted the configured calculator rate is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLoanQuote(cmd, f)
		},
	}
	quote.Flags().Float64Var(&f.amount, "amount", 0, "principal in naira")
	quote.Flags().IntVar(&f.term, "term", 12, "term in months")
	quote.Flags().Float64Var(&f.rate, "rate", 0, "annual interest rate, e.g. 0.12")
	quote.Flags().Float64Var(&f.income, "income", 0, "monthly income in naira")
	quote.Flags().Float64Var(&f.existing, "existing", 0, "existing monthly loan repayments in naira")
	_ = quote.MarkFlagRequired("amount")

	loan.AddCommand(quote)
	return loan
}

func (a *app) runLoanQuote(cmd *cobra.Command, f loanFlags) error {
	for _, v := range []struct {
		flag  string
		value float64
	}{{"amount", f.amount}, {"rate", f.rate}, {"income", f.income}, {"existing", f.existing}} {
		if math.IsNaN(v.value) || math.IsInf(v.value, 0) {
			return fmt.Errorf("--%s must be a finite number", v.flag)
		}
	}
	if f.amount <= 0 {
		return fmt.Errorf("--amount must be positive")
	}
	if f.term < 1 {
		return fmt.Errorf("--term must be at least 1 month")
	}

	rate := f.rate
	if !cmd.Flags().Changed("rate") {
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		rate = cfg.Loans.CalculatorRate
	}
	if rate < 0 || rate > 1 {
		return fmt.Errorf("--rate must be within [0, 1]")
	}

	est := finance.Calculate(finance.Quote{
		Amount:        f.amount,
		TermMonths:    f.term,
		AnnualRate:    rate,
		MonthlyIncome: f.income,
		ExistingLoans: f.existing,
	})

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Monthly payment\t%s\n", est.MonthlyPayment.StringFixed(2))
	fmt.Fprintf(tw, "Total repayable\t%s\n", est.TotalRepayable.StringFixed(2))
	fmt.Fprintf(tw, "Total interest\t%s\n", est.TotalInterest.StringFixed(2))
	fmt.Fprintf(tw, "Annual rate\t%.2f%%\n", rate*100)
	if est.Tier != finance.TierUnknown {
		fmt.Fprintf(tw, "Debt-to-income\t%s%%\n", est.Ratio.Mul(hundred).StringFixed(1))
	}
	fmt.Fprintf(tw, "Eligibility\t%s\n", est.Tier)
	return tw.Flush()
}
