package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
	"grochain-dashboard/internal/observability"
	"grochain-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	svc      *Services
	pageSize int
	logger   *slog.Logger
}

func NewSSEHandlers(svc *Services, pageSize int, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		svc:      svc,
		pageSize: pageSize,
		logger:   logger,
	}
}

// listState reads the list signals. A changed search or status filter
// always lands on page one, whatever page the client asked for.
func (h *SSEHandlers) listState(sig templates.ListSignals) listing.State {
	st := sig.State.Normalize(h.pageSize)
	return listing.Reconcile(sig.Rendered.Normalize(h.pageSize), st)
}

// readSignals decodes datastar signals, answering 400 itself on failure.
func (h *SSEHandlers) readSignals(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := datastar.ReadSignals(r, v); err != nil {
		writeError(w, r, h.logger, apperrors.BadRequestWrap(err, "Invalid datastar signals"))
		return false
	}
	return true
}

// patch renders each component and sends it as an element patch.
func (h *SSEHandlers) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, components ...templ.Component) {
	logger := observability.LoggerFrom(ctx, h.logger)
	for _, c := range components {
		html, err := renderString(ctx, c)
		if err != nil {
			logger.Error("render fragment", "error", err)
			return
		}
		if err := sse.PatchElements(html); err != nil {
			logger.Debug("patch elements", "error", err)
			return
		}
	}
}

// patchState tells the client which state was rendered.
func (h *SSEHandlers) patchState(ctx context.Context, sse *datastar.ServerSentEventGenerator, st listing.State) {
	signals, err := json.Marshal(map[string]any{
		"page":     st.Page,
		"rendered": st,
	})
	if err != nil {
		observability.LoggerFrom(ctx, h.logger).Error("marshal rendered state", "error", err)
		return
	}
	if err := sse.PatchSignals(signals); err != nil {
		observability.LoggerFrom(ctx, h.logger).Debug("patch signals", "error", err)
	}
}

// fail shows err in place of the fragment with id. Cancelled requests
// (the user navigated on) are dropped quietly.
func (h *SSEHandlers) fail(ctx context.Context, sse *datastar.ServerSentEventGenerator, id string, err error) {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return
	}
	observability.LoggerFrom(ctx, h.logger).Warn("fragment failed", "fragment", id, "error", err)
	h.patch(ctx, sse, templates.ErrorBanner(id, userMessage(err)))
}

func (h *SSEHandlers) HandleCommissions(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	dash, err := h.svc.Commissions.Dashboard(r.Context(), st)
	if err != nil {
		h.fail(r.Context(), sse, "commissions-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.CommissionsTable(dash))
	h.patchState(r.Context(), sse, st)
}

// HandlePayout pays out every approved commission and redraws the summary
// and the table.
func (h *SSEHandlers) HandlePayout(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	current, err := h.svc.Commissions.Dashboard(r.Context(), st)
	if err != nil {
		h.fail(r.Context(), sse, "payout-bar", err)
		return
	}
	if current.Demo {
		h.fail(r.Context(), sse, "payout-bar", apperrors.ServiceUnavailable("Payouts are unavailable while showing demo data"))
		return
	}
	_, dash, err := h.svc.Commissions.RequestPayout(r.Context(), current.PayableIDs, st)
	if err != nil {
		h.fail(r.Context(), sse, "payout-bar", err)
		return
	}
	h.patch(r.Context(), sse, templates.CommissionSummary(dash), templates.CommissionsTable(dash))
	h.patchState(r.Context(), sse, st)
}

func (h *SSEHandlers) HandleFarmers(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	dir, err := h.svc.Farmers.Directory(r.Context(), st)
	if err != nil {
		h.fail(r.Context(), sse, "farmers-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.FarmersTable(dir))
	h.patchState(r.Context(), sse, st)
}

func (h *SSEHandlers) HandleReferrals(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	dash, err := h.svc.Referrals.Dashboard(r.Context(), st)
	if err != nil {
		h.fail(r.Context(), sse, "referrals-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.ReferralsTable(dash))
	h.patchState(r.Context(), sse, st)
}

func (h *SSEHandlers) HandleCompleteReferral(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	_, dash, err := h.svc.Referrals.Complete(r.Context(), r.PathValue("farmerID"), st)
	if err != nil {
		h.fail(r.Context(), sse, "referrals-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.ReferralSummary(dash), templates.ReferralsTable(dash))
	h.patchState(r.Context(), sse, st)
}

func (h *SSEHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	var sig templates.ListSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig)
	sse := datastar.NewSSE(w, r)

	user, err := requireUser(r.Context())
	if err != nil {
		h.fail(r.Context(), sse, "orders-content", err)
		return
	}
	hist, err := h.svc.Orders.BuyerOrders(r.Context(), user.ID, st)
	if err != nil {
		h.fail(r.Context(), sse, "orders-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.OrdersTable(hist))
	h.patchState(r.Context(), sse, st)
}

func (h *SSEHandlers) HandleMarketplace(w http.ResponseWriter, r *http.Request) {
	var sig templates.MarketplaceSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	st := h.listState(sig.ListSignals)
	sse := datastar.NewSSE(w, r)

	page, err := h.svc.Marketplace.Browse(r.Context(), st, sig.Category)
	if err != nil {
		h.fail(r.Context(), sse, "marketplace-content", err)
		return
	}
	h.patch(r.Context(), sse, templates.ListingsGrid(page))
	h.patchState(r.Context(), sse, st)
}

// HandleSuggest fills the suggestion dropdown. Each keystroke supersedes
// the previous request, so a cancelled lookup sends nothing.
func (h *SSEHandlers) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	var sig struct {
		Search string `json:"search"`
	}
	if !h.readSignals(w, r, &sig) {
		return
	}
	sse := datastar.NewSSE(w, r)

	items, err := h.svc.Marketplace.Suggest(r.Context(), sig.Search)
	if err != nil {
		return
	}
	h.patch(r.Context(), sse, templates.Suggestions(items))
}

func (h *SSEHandlers) HandleLoanQuote(w http.ResponseWriter, r *http.Request) {
	var sig templates.LoanSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	sse := datastar.NewSSE(w, r)

	est := h.svc.Loans.Quote(quoteFrom(sig))
	h.patch(r.Context(), sse, templates.LoanQuote(est))
}

// HandleLoanApply submits the application form. Validation messages are
// shown next to the form rather than as a banner.
func (h *SSEHandlers) HandleLoanApply(w http.ResponseWriter, r *http.Request) {
	var sig templates.LoanSignals
	if !h.readSignals(w, r, &sig) {
		return
	}
	sse := datastar.NewSSE(w, r)

	out, err := h.svc.Loans.Apply(r.Context(), models.LoanApplication{
		Amount:        sig.Amount,
		Term:          sig.Term,
		Purpose:       sig.Purpose,
		MonthlyIncome: sig.MonthlyIncome,
		ExistingLoans: sig.ExistingLoans,
		Collateral:    sig.Collateral,
		CropType:      sig.CropType,
		FarmSize:      sig.FarmSize,
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
			h.patch(r.Context(), sse, templates.LoanFormErrors(appErr.Fields))
			return
		}
		h.fail(r.Context(), sse, "loan-result", err)
		return
	}
	h.patch(r.Context(), sse,
		templates.LoanFormErrors(nil),
		templates.LoanQuote(out.Estimate),
		templates.LoanResult(&out.Application),
	)
}
