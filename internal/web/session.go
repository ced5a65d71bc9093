package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/neha18-dp/freshbasket-aws-project/internal/model"
)

const sessionCookie = "sid"

// Session is the opaque per-caller state: username plus role. Its absence is
// the sole authentication check.
type Session struct {
	Username string
	Role     model.Role
}

type Sessions struct {
	mu   sync.RWMutex
	byID map[string]Session
}

func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]Session)}
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Issue starts a session for the user and sets the cookie.
func (s *Sessions) Issue(w http.ResponseWriter, username string, role model.Role) error {
	sid, err := newSessionID()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.byID[sid] = Session{Username: username, Role: role}
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear drops the server-side session and expires the cookie. Always
// succeeds, even without a live session.
func (s *Sessions) Clear(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		s.mu.Lock()
		delete(s.byID, c.Value)
		s.mu.Unlock()
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) Get(r *http.Request) (Session, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return Session{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byID[c.Value]
	return sess, ok
}
