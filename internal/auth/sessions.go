package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries a browser's session id.
const CookieName = "grochain_session"

// Sessions keeps one Session per browser, keyed by an opaque random id.
// Sessions are held in memory and do not survive a restart.
type Sessions struct {
	mu     sync.Mutex
	byID   map[string]*Session
	logger *slog.Logger
	newID  func() string
}

func NewSessions(logger *slog.Logger) *Sessions {
	return &Sessions{
		byID:   make(map[string]*Session),
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Start signs a browser in with token and returns the id to hand back in
// the cookie.
func (s *Sessions) Start(ctx context.Context, token string) (string, *User, error) {
	sess := NewSession(NewMemoryStore(), s.logger)
	user, err := sess.Login(ctx, token)
	if err != nil {
		return "", nil, err
	}

	id := s.newID()
	s.mu.Lock()
	s.byID[id] = sess
	s.mu.Unlock()
	return id, user, nil
}

// Lookup returns the live session for id. A session whose token has expired
// is dropped.
func (s *Sessions) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	if sess.State() == StateAnonymous {
		delete(s.byID, id)
		return nil, false
	}
	return sess, true
}

// End signs out the browser holding id. Unknown ids are ignored.
func (s *Sessions) End(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()

	if !ok {
		return nil
	}
	return sess.Logout(ctx)
}

// Prune drops every expired session and reports how many were removed.
func (s *Sessions) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.byID {
		if sess.State() == StateAnonymous {
			delete(s.byID, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
