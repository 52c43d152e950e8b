package server

import (
	"log/slog"
	"net/http"

	"grochain-dashboard/internal/config"
	"grochain-dashboard/internal/handlers"
	"grochain-dashboard/internal/ui/static"
)

type Server struct {
	mux             *http.ServeMux
	logger          *slog.Logger
	pageHandlers    *handlers.PageHandlers
	apiHandlers     *handlers.APIHandlers
	sseHandlers     *handlers.SSEHandlers
	sessionHandlers *handlers.SessionHandlers
}

func NewServer(svc *handlers.Services, sessions handlers.SessionManager, pageSize int, authCfg config.AuthConfig, logger *slog.Logger) *Server {
	s := &Server{
		mux:             http.NewServeMux(),
		logger:          logger,
		pageHandlers:    handlers.NewPageHandlers(svc, pageSize, logger),
		apiHandlers:     handlers.NewAPIHandlers(svc, pageSize, logger),
		sseHandlers:     handlers.NewSSEHandlers(svc, pageSize, logger),
		sessionHandlers: handlers.NewSessionHandlers(sessions, authCfg, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Pages
	s.mux.HandleFunc("GET /", s.pageHandlers.HandleOverview)
	s.mux.HandleFunc("GET /commissions", s.pageHandlers.HandleCommissions)
	s.mux.HandleFunc("GET /farmers", s.pageHandlers.HandleFarmers)
	s.mux.HandleFunc("GET /referrals", s.pageHandlers.HandleReferrals)
	s.mux.HandleFunc("GET /orders", s.pageHandlers.HandleOrders)
	s.mux.HandleFunc("GET /marketplace", s.pageHandlers.HandleMarketplace)
	s.mux.HandleFunc("GET /marketplace/{id}", s.pageHandlers.HandleProduct)
	s.mux.HandleFunc("GET /marketplace/{id}/{slug}", s.pageHandlers.HandleProduct)
	s.mux.HandleFunc("GET /loans", s.pageHandlers.HandleLoans)
	s.mux.HandleFunc("GET /credit-score", s.pageHandlers.HandleCreditScore)
	s.mux.HandleFunc("GET /harvests/verify/{batchID}", s.pageHandlers.HandleVerifyHarvest)

	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static.Files)))

	// Session
	s.mux.HandleFunc("POST /auth/session", s.sessionHandlers.HandleLogin)
	s.mux.HandleFunc("DELETE /auth/session", s.sessionHandlers.HandleLogout)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/commissions", s.apiHandlers.HandleCommissions)
	s.mux.HandleFunc("POST /api/commissions/payout", s.apiHandlers.HandlePayout)
	s.mux.HandleFunc("GET /api/farmers", s.apiHandlers.HandleFarmers)
	s.mux.HandleFunc("GET /api/referrals", s.apiHandlers.HandleReferrals)
	s.mux.HandleFunc("POST /api/referrals/{farmerID}/complete", s.apiHandlers.HandleCompleteReferral)
	s.mux.HandleFunc("GET /api/orders", s.apiHandlers.HandleOrders)
	s.mux.HandleFunc("GET /api/marketplace", s.apiHandlers.HandleMarketplace)
	s.mux.HandleFunc("GET /api/marketplace/{id}", s.apiHandlers.HandleProduct)
	s.mux.HandleFunc("GET /api/loans/quote", s.apiHandlers.HandleLoanQuote)
	s.mux.HandleFunc("POST /api/loans", s.apiHandlers.HandleApplyLoan)
	s.mux.HandleFunc("GET /api/credit-score/{userID}", s.apiHandlers.HandleCreditScore)
	s.mux.HandleFunc("POST /api/fintech/loan-referrals", s.apiHandlers.HandleLoanReferral)
	s.mux.HandleFunc("POST /api/harvests", s.apiHandlers.HandleCreateHarvest)
	s.mux.HandleFunc("GET /api/harvests/verify/{batchID}", s.apiHandlers.HandleVerifyHarvest)
	s.mux.HandleFunc("POST /api/payments/initiate", s.apiHandlers.HandleInitiatePayment)
	s.mux.HandleFunc("GET /api/notifications/status", s.apiHandlers.HandleNotificationStatus)
	s.mux.HandleFunc("POST /api/notifications", s.apiHandlers.HandleNotify)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/commissions", s.sseHandlers.HandleCommissions)
	s.mux.HandleFunc("POST /sse/commissions/payout", s.sseHandlers.HandlePayout)
	s.mux.HandleFunc("GET /sse/farmers", s.sseHandlers.HandleFarmers)
	s.mux.HandleFunc("GET /sse/referrals", s.sseHandlers.HandleReferrals)
	s.mux.HandleFunc("POST /sse/referrals/{farmerID}/complete", s.sseHandlers.HandleCompleteReferral)
	s.mux.HandleFunc("GET /sse/orders", s.sseHandlers.HandleOrders)
	s.mux.HandleFunc("GET /sse/marketplace", s.sseHandlers.HandleMarketplace)
	s.mux.HandleFunc("GET /sse/marketplace/suggest", s.sseHandlers.HandleSuggest)
	s.mux.HandleFunc("GET /sse/loans/quote", s.sseHandlers.HandleLoanQuote)
	s.mux.HandleFunc("POST /sse/loans/apply", s.sseHandlers.HandleLoanApply)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
