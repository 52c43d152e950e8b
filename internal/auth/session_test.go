package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSession_LoginLogout(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session", "token"))
	s := NewSession(store, testLogger())
	ctx := context.Background()

	if s.State() != StateAnonymous {
		t.Fatalf("initial state = %s, want anonymous", s.State())
	}

	token := signToken(t, jwt.MapClaims{
		"sub":  "U42",
		"name": "Amina Bello",
		"role": "partner",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	user, err := s.Login(ctx, token)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != "U42" || user.Role != "partner" {
		t.Errorf("user = %+v", user)
	}
	if s.State() != StateAuthenticated || s.Token() != token {
		t.Errorf("state = %s, token set = %v", s.State(), s.Token() != "")
	}

	stored, _ := store.Load()
	if stored != token {
		t.Error("token should be persisted on login")
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if s.User() != nil || s.Token() != "" {
		t.Error("logout should clear the in-memory user and token")
	}
	if _, err := os.Stat(store.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("token file should be removed, stat err = %v", err)
	}
}

func TestSession_InitHydrates(t *testing.T) {
	store := &MemoryStore{}
	token := signToken(t, jwt.MapClaims{"sub": float64(7), "exp": time.Now().Add(time.Hour).Unix()})
	store.Save(token)

	s := NewSession(store, testLogger())
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	u := s.User()
	if u == nil || u.ID != "7" {
		t.Fatalf("User() = %+v, want id 7", u)
	}
}

func TestSession_InitDropsExpiredToken(t *testing.T) {
	store := &MemoryStore{}
	store.Save(signToken(t, jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(-time.Minute).Unix()}))

	s := NewSession(store, testLogger())
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if s.State() != StateAnonymous {
		t.Errorf("state = %s, want anonymous", s.State())
	}
	if tok, _ := store.Load(); tok != "" {
		t.Error("expired token should be cleared from the store")
	}
}

func TestSession_TokenExpiresInMemory(t *testing.T) {
	s := NewSession(&MemoryStore{}, testLogger())
	now := time.Now()
	s.now = func() time.Time { return now }

	token := signToken(t, jwt.MapClaims{"sub": "U1", "exp": now.Add(time.Minute).Unix()})
	if _, err := s.Login(context.Background(), token); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	if s.Token() != "" || s.State() != StateAnonymous {
		t.Error("expired session should read as anonymous")
	}
}

func TestSession_LoginRejects(t *testing.T) {
	s := NewSession(&MemoryStore{}, testLogger())
	ctx := context.Background()

	if _, err := s.Login(ctx, ""); !errors.Is(err, ErrNoToken) {
		t.Errorf("empty token err = %v, want ErrNoToken", err)
	}
	if _, err := s.Login(ctx, "not-a-jwt"); err == nil {
		t.Error("malformed token should be rejected")
	}
	if _, err := s.Login(ctx, signToken(t, jwt.MapClaims{"name": "nobody"})); err == nil {
		t.Error("token without subject should be rejected")
	}
	expired := signToken(t, jwt.MapClaims{"sub": "U1", "exp": time.Now().Add(-time.Hour).Unix()})
	if _, err := s.Login(ctx, expired); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expired token err = %v, want ErrTokenExpired", err)
	}
}

func TestUserContext(t *testing.T) {
	ctx := WithUser(context.Background(), &User{ID: "U9"})
	if u := UserFrom(ctx); u == nil || u.ID != "U9" {
		t.Errorf("UserFrom() = %+v", u)
	}
	if UserFrom(context.Background()) != nil {
		t.Error("UserFrom(empty) should be nil")
	}
}

func TestTokenContext(t *testing.T) {
	if got := TokenFrom(WithToken(context.Background(), "tok")); got != "tok" {
		t.Errorf("TokenFrom() = %q, want tok", got)
	}
	if got := TokenFrom(context.Background()); got != "" {
		t.Errorf("TokenFrom(empty) = %q", got)
	}
}
