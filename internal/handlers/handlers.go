// Package handlers serves the dashboard: full pages, datastar SSE fragments
// and a JSON API for scripts.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"grochain-dashboard/internal/auth"
	apperrors "grochain-dashboard/internal/errors"
	"grochain-dashboard/internal/observability"
	"grochain-dashboard/internal/services"
)

const maxBodyBytes = 1 << 20

// Services is everything the handlers call into.
type Services struct {
	Commissions   *services.Commissions
	Farmers       *services.Farmers
	Referrals     *services.Referrals
	Orders        *services.Orders
	Marketplace   *services.Marketplace
	Loans         *services.Loans
	Fintech       *services.Fintech
	Harvests      *services.Harvests
	Payments      *services.Payments
	Notifications *services.Notifications
	Overview      *services.Overview
}

// SessionManager is the part of *auth.Sessions the session endpoints need.
type SessionManager interface {
	Start(ctx context.Context, token string) (id string, user *auth.User, err error)
	End(ctx context.Context, id string) error
}

func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	apperrors.WriteError(w, observability.LoggerFrom(r.Context(), logger), err, observability.GetRequestID(r.Context()))
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return apperrors.BadRequest("Content-Type must be application/json")
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return apperrors.BadRequestWrap(err, "Invalid JSON body")
	}
	return nil
}

// requireUser returns the signed-in user or an Unauthorized error.
func requireUser(ctx context.Context) (*auth.User, error) {
	if u := auth.UserFrom(ctx); u != nil {
		return u, nil
	}
	return nil, apperrors.Unauthorized("Sign in to continue")
}

// renderString renders c for an SSE patch.
func renderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// userMessage is what a page or fragment shows for err.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}
