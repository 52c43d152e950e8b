package handlers

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/listing"
	"grochain-dashboard/internal/models"
	"grochain-dashboard/internal/services"
)

var privateNoStore = map[string]string{
	"Cache-Control": "private, no-store",
}

type APIHandlers struct {
	svc      *Services
	pageSize int
	logger   *slog.Logger
}

func NewAPIHandlers(svc *Services, pageSize int, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		svc:      svc,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (h *APIHandlers) state(r *http.Request) listing.State {
	return listing.FromQuery(r.URL.Query(), h.pageSize)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	apperrors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleCommissions(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Commissions.Dashboard(r.Context(), h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessWithHeaders(w, dash, privateNoStore)
}

type payoutBody struct {
	CommissionIDs []string `json:"commissionIds"`
}

type payoutResponse struct {
	Receipt   models.PayoutReceipt          `json:"receipt"`
	Dashboard *services.CommissionDashboard `json:"dashboard"`
}

func (h *APIHandlers) HandlePayout(w http.ResponseWriter, r *http.Request) {
	var body payoutBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	receipt, dash, err := h.svc.Commissions.RequestPayout(r.Context(), body.CommissionIDs, h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, payoutResponse{Receipt: receipt, Dashboard: dash})
}

func (h *APIHandlers) HandleFarmers(w http.ResponseWriter, r *http.Request) {
	dir, err := h.svc.Farmers.Directory(r.Context(), h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessWithHeaders(w, dir, privateNoStore)
}

func (h *APIHandlers) HandleReferrals(w http.ResponseWriter, r *http.Request) {
	dash, err := h.svc.Referrals.Dashboard(r.Context(), h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessWithHeaders(w, dash, privateNoStore)
}

type completeResponse struct {
	Referral  models.Referral             `json:"referral"`
	Dashboard *services.ReferralDashboard `json:"dashboard"`
}

func (h *APIHandlers) HandleCompleteReferral(w http.ResponseWriter, r *http.Request) {
	updated, dash, err := h.svc.Referrals.Complete(r.Context(), r.PathValue("farmerID"), h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, completeResponse{Referral: updated, Dashboard: dash})
}

func (h *APIHandlers) HandleOrders(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	hist, err := h.svc.Orders.BuyerOrders(r.Context(), user.ID, h.state(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessWithHeaders(w, hist, privateNoStore)
}

func (h *APIHandlers) HandleMarketplace(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Marketplace.Browse(r.Context(), h.state(r), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	// Listings are fetched with the caller's token, so shared caches must not
	// keep them. Demo data is never cached.
	cache := map[string]string{"Cache-Control": "private, max-age=60"}
	if page.Demo {
		cache = privateNoStore
	}
	apperrors.WriteSuccessWithHeaders(w, page, cache)
}

func (h *APIHandlers) HandleProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Marketplace.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, detail)
}

// HandleLoanQuote runs the calculator on query parameters amount, term,
// monthlyIncome and existingLoans.
func (h *APIHandlers) HandleLoanQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := make(map[string]string)
	num := func(key string) float64 {
		raw := q.Get(key)
		if raw == "" {
			return 0
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			fields[key] = key + " must be a number"
			return 0
		}
		return v
	}

	req := services.QuoteRequest{
		Amount:        num("amount"),
		Term:          int(num("term")),
		MonthlyIncome: num("monthlyIncome"),
		ExistingLoans: num("existingLoans"),
	}
	if len(fields) > 0 {
		writeError(w, r, h.logger, apperrors.ValidationFields(fields))
		return
	}
	apperrors.WriteSuccess(w, h.svc.Loans.Quote(req))
}

func (h *APIHandlers) HandleApplyLoan(w http.ResponseWriter, r *http.Request) {
	var app models.LoanApplication
	if err := decodeJSON(w, r, &app); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	out, err := h.svc.Loans.Apply(r.Context(), app)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessStatus(w, http.StatusCreated, out)
}

func (h *APIHandlers) HandleCreditScore(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Fintech.CreditScore(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessWithHeaders(w, report, privateNoStore)
}

func (h *APIHandlers) HandleLoanReferral(w http.ResponseWriter, r *http.Request) {
	var ref models.LoanReferral
	if err := decodeJSON(w, r, &ref); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.Fintech.ReferLoan(r.Context(), ref)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessStatus(w, http.StatusCreated, res)
}

func (h *APIHandlers) HandleCreateHarvest(w http.ResponseWriter, r *http.Request) {
	var hv models.Harvest
	if err := decodeJSON(w, r, &hv); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	created, err := h.svc.Harvests.Create(r.Context(), hv)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessStatus(w, http.StatusCreated, created)
}

func (h *APIHandlers) HandleVerifyHarvest(w http.ResponseWriter, r *http.Request) {
	check, err := h.svc.Harvests.Verify(r.Context(), r.PathValue("batchID"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, check)
}

func (h *APIHandlers) HandleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.PaymentInitiation
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	sess, err := h.svc.Payments.Initiate(r.Context(), p)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccessStatus(w, http.StatusCreated, sess)
}

func (h *APIHandlers) HandleNotificationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Notifications.Status(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, status)
}

func (h *APIHandlers) HandleNotify(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := decodeJSON(w, r, &n); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.Notifications.Notify(r.Context(), n)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	apperrors.WriteSuccess(w, res)
}
