package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"grochain-dashboard/internal/auth"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/observability"
	"grochain-dashboard/internal/services"
	"grochain-dashboard/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

// PageHandlers render full pages for first load. Later updates arrive as
// SSE fragments.
type PageHandlers struct {
	svc      *Services
	pageSize int
	logger   *slog.Logger
}

func NewPageHandlers(svc *Services, pageSize int, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{
		svc:      svc,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, status int, title, active string, content templ.Component) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(status)
	if err := templates.Layout(title, active, auth.UserFrom(ctx), content).Render(ctx, w); err != nil {
		observability.LoggerFrom(ctx, h.logger).Error("render page", "page", title, "error", err)
	}
}

func (h *PageHandlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode
	}
	logLevel := slog.LevelError
	if status < 500 {
		logLevel = slog.LevelWarn
	}
	observability.LoggerFrom(r.Context(), h.logger).Log(r.Context(), logLevel, "page failed",
		"path", r.URL.Path,
		"status_code", status,
		"error", err,
	)
	h.render(w, r, status, http.StatusText(status), "", templates.ErrorPage(status, userMessage(err)))
}

func (h *PageHandlers) state(r *http.Request) listing.State {
	return listing.FromQuery(r.URL.Query(), h.pageSize)
}

func (h *PageHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.renderError(w, r, apperrors.NotFound("Page not found"))
		return
	}
	sum, err := h.svc.Overview.Summary(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Overview", "/", templates.OverviewPage(sum))
}

func (h *PageHandlers) HandleCommissions(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Commissions.Dashboard(r.Context(), h.state(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Commissions", "/commissions", templates.CommissionsPage(dash))
}

func (h *PageHandlers) HandleFarmers(w http.ResponseWriter, r *http.Request) {
	dir, err := h.svc.Farmers.Directory(r.Context(), h.state(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Farmers", "/farmers", templates.FarmersPage(dir))
}

func (h *PageHandlers) HandleReferrals(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Referrals.Dashboard(r.Context(), h.state(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Referrals", "/referrals", templates.ReferralsPage(dash))
}

func (h *PageHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		h.render(w, r, http.StatusOK, "Orders", "/orders", templates.SignInRequired())
		return
	}
	hist, err := h.svc.Orders.BuyerOrders(r.Context(), user.ID, h.state(r))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Orders", "/orders", templates.OrdersPage(hist))
}

func (h *PageHandlers) HandleMarketplace(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Marketplace.Browse(r.Context(), h.state(r), r.URL.Query().Get("category"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Marketplace", "/marketplace", templates.MarketplacePage(page))
}

// HandleProduct serves /marketplace/{id}/{slug}. A missing or stale slug
// redirects to the canonical URL.
func (h *PageHandlers) HandleProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Marketplace.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if r.PathValue("slug") != detail.Slug {
		http.Redirect(w, r, templates.ProductURL(detail.Listing), http.StatusMovedPermanently)
		return
	}
	h.render(w, r, http.StatusOK, detail.Listing.Name, "/marketplace", templates.ProductPage(detail))
}

func (h *PageHandlers) HandleLoans(w http.ResponseWriter, r *http.Request) {
	sig := templates.LoanSignals{Term: 12}
	est := h.svc.Loans.Quote(quoteFrom(sig))
	h.render(w, r, http.StatusOK, "Loans", "/loans", templates.LoansPage(sig, est))
}

func (h *PageHandlers) HandleCreditScore(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())
	if user == nil {
		h.render(w, r, http.StatusOK, "Credit score", "/credit-score", templates.SignInRequired())
		return
	}
	report, err := h.svc.Fintech.CreditScore(r.Context(), user.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Credit score", "/credit-score", templates.CreditScorePage(report))
}

func (h *PageHandlers) HandleVerifyHarvest(w http.ResponseWriter, r *http.Request) {
	check, err := h.svc.Harvests.Verify(r.Context(), r.PathValue("batchID"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "Harvest verification", "", templates.HarvestVerifyPage(check))
}

func quoteFrom(sig templates.LoanSignals) services.QuoteRequest {
	return services.QuoteRequest{
		Amount:        sig.Amount,
		Term:          sig.Term,
		MonthlyIncome: sig.MonthlyIncome,
		ExistingLoans: sig.ExistingLoans,
	}
}
