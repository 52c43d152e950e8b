package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grochain-dashboard/internal/auth"
	"grochain-dashboard/internal/config"
)

type fakeSessions struct {
	startErr error
	ended    []string
}

func (f *fakeSessions) Start(_ context.Context, token string) (string, *auth.User, error) {
	if token == "" {
		return "", nil, auth.ErrNoToken
	}
	if f.startErr != nil {
		return "", nil, f.startErr
	}
	return "S-" + token, &auth.User{ID: "U1", Name: "Amina Bello"}, nil
}

func (f *fakeSessions) End(_ context.Context, id string) error {
	f.ended = append(f.ended, id)
	return nil
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestSessionHandlers_HandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		startErr   error
		wantStatus int
	}{
		{"valid token", `{"token":"abc.def.ghi"}`, nil, http.StatusOK},
		{"missing token", `{}`, nil, http.StatusBadRequest},
		{"expired token", `{"token":"abc"}`, auth.ErrTokenExpired, http.StatusUnauthorized},
		{"unreadable token", `{"token":"abc"}`, errors.New("token is malformed"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSessionHandlers(&fakeSessions{startErr: tt.startErr}, config.AuthConfig{}, testLogger())
			req := httptest.NewRequest(http.MethodPost, "/auth/session", jsonBody(tt.body))
			w := httptest.NewRecorder()
			h.HandleLogin(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			c := sessionCookie(w)
			if (c != nil) != (tt.wantStatus == http.StatusOK) {
				t.Fatalf("session cookie set = %v on status %d", c != nil, w.Code)
			}
			if c != nil && (!c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" || c.Value != "S-abc.def.ghi") {
				t.Errorf("cookie = %+v", c)
			}
		})
	}
}

func TestSessionHandlers_LoginReplacesPreviousSession(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewSessionHandlers(sessions, config.AuthConfig{CookieSecure: true}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/auth/session", jsonBody(`{"token":"new"}`))
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "S-old"})
	w := httptest.NewRecorder()
	h.HandleLogin(w, req)

	if len(sessions.ended) != 1 || sessions.ended[0] != "S-old" {
		t.Errorf("ended = %v, want [S-old]", sessions.ended)
	}
	if c := sessionCookie(w); c == nil || !c.Secure {
		t.Errorf("cookie = %+v, want a secure cookie", c)
	}
}

func TestSessionHandlers_HandleLogout(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewSessionHandlers(sessions, config.AuthConfig{}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "S-1"})
	w := httptest.NewRecorder()
	h.HandleLogout(w, req)

	if w.Code != http.StatusOK || len(sessions.ended) != 1 || sessions.ended[0] != "S-1" {
		t.Fatalf("status = %d, ended = %v", w.Code, sessions.ended)
	}
	if !strings.Contains(w.Body.String(), `"state":"anonymous"`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if c := sessionCookie(w); c == nil || c.MaxAge >= 0 {
		t.Errorf("cookie = %+v, want it deleted", c)
	}

	// Without a cookie nothing is ended.
	req = httptest.NewRequest(http.MethodDelete, "/auth/session", nil)
	req.Header.Set("Datastar-Request", "true")
	w = httptest.NewRecorder()
	h.HandleLogout(w, req)
	if len(sessions.ended) != 1 {
		t.Errorf("anonymous logout ended %v", sessions.ended)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("datastar logout should answer with SSE, got %q", ct)
	}
}
