// Command grochain is a terminal companion to the dashboard: loan and credit
// arithmetic offline, harvest and notification checks against the API.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"grochain-dashboard/internal/apiclient"
	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
	"grochain-dashboard/internal/models"
	"grochain-dashboard/internal/observability"
)

// backend is the part of the API client the CLI calls.
type backend interface {
	VerifyHarvest(ctx context.Context, batchID string) (models.HarvestVerification, error)
	WebsocketStatus(ctx context.Context) (models.WebsocketStatus, error)
}

type app struct {
	loadConfig func() (*config.Config, error)
	newBackend func(cfg *config.Config, logger *slog.Logger) (backend, error)
	verbose    bool
}

func newApp() *app {
	return &app{
		loadConfig: config.Load,
		newBackend: dialBackend,
	}
}

// dialBackend builds a client that authenticates with the token the web
// dashboard persisted, if any.
func dialBackend(cfg *config.Config, logger *slog.Logger) (backend, error) {
	session := auth.NewSession(auth.NewFileStore(cfg.Auth.TokenFile), logger)
	if err := session.Init(context.Background()); err != nil {
		return nil, err
	}
	client, err := apiclient.New(cfg.API, session, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (a *app) logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	if !a.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	lc := cfg.Logger
	lc.Format = "text"
	lc.Level = "debug"
	return observability.NewLoggerTo(cmd.ErrOrStderr(), lc)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "grochain",
		Short: "GroChain marketplace companion CLI",
		Long: `Work with GroChain from the terminal.

Available subcommands:
  loan quote     - Estimate a loan repayment and eligibility tier
  credit rating  - Show the rating label for a credit score
  harvest verify - Look up a harvest batch on the API
  status         - Report the real-time notification service status`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(a.loanCmd(), a.creditCmd(), a.harvestCmd(), a.statusCmd())
	return root
}

func main() {
	if err := newApp().rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
