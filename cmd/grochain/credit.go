package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grochain-dashboard/internal/finance"
)

func (a *app) creditCmd() *cobra.Command {
	credit := &cobra.Command{
		Use:   "credit",
		Short: "Credit score helpers",
	}

	credit.AddCommand(&cobra.Command{
		Use:   "rating <score>",
		Short: "Show the rating label and band for a credit score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be a whole number: %q", args[0])
			}
			if score < 300 || score > 850 {
				return fmt.Errorf("score must be between 300 and 850, got %d", score)
			}
			r := finance.CreditRating(score)
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s (%s)\n", score, r.Label, r.Band)
			return nil
		},
	})
	return credit
}
