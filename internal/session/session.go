// Package session provides cookie-identified, in-memory HTTP sessions.
// Each session owns one campaign workspace; nothing is persisted, so a
// server restart starts every visitor over, which is the studio's
// ephemerality contract.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"brandforge/internal/campaign"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "bf_session"

	// DefaultTTL is how long an idle session lives before it is reaped.
	DefaultTTL = 24 * time.Hour

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// Session is one browser's working state.
type Session struct {
	ID        string
	Workspace *campaign.Workspace
	CreatedAt time.Time
	lastSeen  time.Time
}

// WorkspaceFactory builds a fresh workspace for a new session ID.
type WorkspaceFactory func(sessionID string) *campaign.Workspace

// Store is an in-memory session registry. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	ttl       time.Duration
	workspace WorkspaceFactory
}

// NewStore creates a session store. factory is called once per new session
// to build its workspace.
func NewStore(factory WorkspaceFactory) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		ttl:       DefaultTTL,
		workspace: factory,
	}
}

// Create generates a new session, registers it, and sets the session cookie
// on the response.
func (s *Store) Create(w http.ResponseWriter) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        id,
		Workspace: s.workspace(id),
		CreatedAt: now,
		lastSeen:  now,
	}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true behind TLS in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl.Seconds()),
	})

	return sess, nil
}

// Get returns the session referenced by the request cookie, refreshing its
// idle timer. Returns nil when there is no cookie, the session expired, or
// the server restarted since the cookie was issued.
func (s *Store) Get(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[cookie.Value]
	if !ok {
		return nil
	}
	if time.Since(sess.lastSeen) > s.ttl {
		delete(s.sessions, cookie.Value)
		sess.Workspace.Reset()
		return nil
	}
	sess.lastSeen = time.Now()
	return sess
}

// Destroy removes the session, resets its workspace (dropping session
// media), and clears the cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[cookie.Value]
	delete(s.sessions, cookie.Value)
	s.mu.Unlock()

	if ok {
		sess.Workspace.Reset()
	}

	// Expire the cookie immediately.
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Reap drops sessions idle past the TTL, returning how many were removed.
// Called periodically from main.
func (s *Store) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if time.Since(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			sess.Workspace.Reset()
			n++
		}
	}
	return n
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
