package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"grochain-dashboard/internal/apiclient"
	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
	"grochain-dashboard/internal/demo"
	"grochain-dashboard/internal/handlers"
	"grochain-dashboard/internal/middleware"
	"grochain-dashboard/internal/observability"
	"grochain-dashboard/internal/server"
	"grochain-dashboard/internal/services"
)

func newServices(cfg *config.Config, client *apiclient.Client, provider demo.Provider, logger *slog.Logger) *handlers.Services {
	commissions := services.NewCommissions(client, provider, logger)
	referrals := services.NewReferrals(client, provider, logger)
	farmers := services.NewFarmers(client, provider, logger)

	return &handlers.Services{
		Commissions:   commissions,
		Farmers:       farmers,
		Referrals:     referrals,
		Orders:        services.NewOrders(client, provider, logger),
		Marketplace:   services.NewMarketplace(client, provider, logger),
		Loans:         services.NewLoans(client, cfg.Loans, logger),
		Fintech:       services.NewFintech(client, provider, logger),
		Harvests:      services.NewHarvests(client, provider, logger),
		Payments:      services.NewPayments(client, logger),
		Notifications: services.NewNotifications(client, logger),
		Overview:      services.NewOverview(commissions, referrals, farmers),
	}
}

// newHandler wires the routes behind the middleware chain.
func newHandler(cfg *config.Config, svc *handlers.Services, sessions *auth.Sessions, logger *slog.Logger) http.Handler {
	srv := server.NewServer(svc, sessions, cfg.Listing.PageSize, cfg.Auth, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.SameOrigin(cfg.Security, logger),
		middleware.Timeout(cfg.Server.WriteTimeout),
		middleware.Session(sessions),
	)

	return middlewareChain(srv)
}

// pruneSessions drops expired browser sessions every interval until ctx ends.
func pruneSessions(ctx context.Context, sessions *auth.Sessions, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(); n > 0 {
				logger.Debug("pruned expired sessions", "count", n)
			}
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"api_base_url", cfg.API.BaseURL,
		"demo_mode", cfg.Demo.Enabled,
	)

	sessions := auth.NewSessions(logger)

	// Each request carries its browser's token in the context.
	client, err := apiclient.New(cfg.API, nil, logger)
	if err != nil {
		logger.Error("failed to create API client", "error", err)
		os.Exit(1)
	}

	provider := demo.New(cfg.Demo.Enabled, logger)
	svc := newServices(cfg, client, provider, logger)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, svc, sessions, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	pruneCtx, stopPrune := context.WithCancel(context.Background())
	go pruneSessions(pruneCtx, sessions, cfg.Auth.PruneInterval, logger)
	gracefulServer.RegisterShutdownHook("sessions", func(ctx context.Context) error {
		stopPrune()
		logger.InfoContext(ctx, "dropping browser sessions", "count", sessions.Len())
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
