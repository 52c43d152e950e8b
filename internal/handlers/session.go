package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
	apperrors "grochain-dashboard/internal/errors"
)

type SessionHandlers struct {
	sessions SessionManager
	cfg      config.AuthConfig
	logger   *slog.Logger
}

func NewSessionHandlers(sessions SessionManager, cfg config.AuthConfig, logger *slog.Logger) *SessionHandlers {
	return &SessionHandlers{sessions: sessions, cfg: cfg, logger: logger}
}

type loginBody struct {
	Token string `json:"token"`
}

// HandleLogin starts a session for this browser from the bearer token issued
// by the GroChain login flow and hands its id back in an HttpOnly cookie.
func (h *SessionHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	id, user, err := h.sessions.Start(r.Context(), body.Token)
	switch {
	case errors.Is(err, auth.ErrNoToken):
		writeError(w, r, h.logger, apperrors.ValidationFields(map[string]string{"token": "token is required"}))
		return
	case errors.Is(err, auth.ErrTokenExpired):
		writeError(w, r, h.logger, apperrors.Unauthorized("Token has expired"))
		return
	case err != nil:
		writeError(w, r, h.logger, apperrors.BadRequestWrap(err, "Token could not be read"))
		return
	}

	// A browser signing in again drops its previous session.
	if c, err := r.Cookie(auth.CookieName); err == nil && c.Value != id {
		if err := h.sessions.End(r.Context(), c.Value); err != nil {
			h.logger.WarnContext(r.Context(), "end replaced session", "error", err)
		}
	}
	http.SetCookie(w, h.cookie(id, 0))
	apperrors.WriteSuccess(w, user)
}

// HandleLogout ends this browser's session only. Datastar requests are sent
// back to the overview page.
func (h *SessionHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(auth.CookieName); err == nil {
		if err := h.sessions.End(r.Context(), c.Value); err != nil {
			writeError(w, r, h.logger, apperrors.InternalWrap(err, "Failed to end session"))
			return
		}
	}
	http.SetCookie(w, h.cookie("", -1))

	if r.Header.Get("Datastar-Request") == "true" {
		sse := datastar.NewSSE(w, r)
		if err := sse.Redirect("/"); err != nil {
			h.logger.Debug("redirect after logout", "error", err)
		}
		return
	}
	apperrors.WriteSuccess(w, map[string]string{"state": auth.StateAnonymous.String()})
}

// cookie builds the session cookie. A negative maxAge deletes it.
func (h *SessionHandlers) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     auth.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
