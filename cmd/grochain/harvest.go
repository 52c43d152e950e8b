package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) harvestCmd() *cobra.Command {
	harvest := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest traceability",
	}

	harvest.AddCommand(&cobra.Command{
		Use:   "verify <batchID>",
		Short: "Check a harvest batch against GroChain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batchID := strings.TrimSpace(args[0])
			if batchID == "" {
				return fmt.Errorf("batch id is required")
			}

			api, err := a.connect(cmd)
			if err != nil {
				return err
			}
			v, err := api.VerifyHarvest(cmd.Context(), batchID)
			if err != nil {
				return fmt.Errorf("verify %s: %w", batchID, err)
			}

			out := cmd.OutOrStdout()
			if !v.Verified {
				fmt.Fprintf(out, "Batch %s is not verified.\n", batchID)
				return nil
			}
			h := v.Harvest
			fmt.Fprintf(out, "Batch %s is verified.\n", batchID)
			fmt.Fprintf(out, "  %s, %g %s, harvested %s in %s\n",
				h.CropType, h.Quantity, h.Unit, h.HarvestDate.Format("2 Jan 2006"), h.Location)
			if h.Farmer.Name != "" {
				fmt.Fprintf(out, "  Farmer: %s\n", h.Farmer.Name)
			}
			return nil
		},
	})
	return harvest
}

func (a *app) connect(cmd *cobra.Command) (backend, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	return a.newBackend(cfg, a.logger(cmd, cfg))
}
