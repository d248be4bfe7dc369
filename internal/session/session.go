package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"
)

const CookieName = "gestao_session"

// Flash is a one-shot notice rendered on the next page load. Level follows
// the frontend banner classes (success, info, warning, danger).
type Flash struct {
	Level   string
	Message string
}

type Session struct {
	ID            string
	UserName      string
	Authenticated bool
	ExpiresAt     time.Time
	flashes       []Flash
}

// Manager is a server-side session store keyed by a random cookie ID.
// Sessions are created lazily for anonymous visitors so flash notices
// survive the redirect to the login page.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	secure   bool
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func newSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Get returns the session for the request, creating and persisting a fresh
// anonymous one when the cookie is missing, unknown, or expired. A created
// session is also attached to the request as a cookie, so every Get during
// the same request resolves to the same session and a single Set-Cookie
// header reaches the browser.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A stale cookie may precede one attached earlier in this request, so
	// every cookie with our name is considered, not just the first.
	for _, cookie := range r.Cookies() {
		if cookie.Name != CookieName {
			continue
		}
		if sess, ok := m.sessions[cookie.Value]; ok {
			if m.now().Before(sess.ExpiresAt) {
				return sess
			}
			delete(m.sessions, cookie.Value)
		}
	}

	id, err := newSessionID()
	if err != nil {
		// rand failure is unrecoverable for session issuance; fall back to an
		// unauthenticated throwaway session that is never stored
		return &Session{ExpiresAt: m.now().Add(m.ttl)}
	}

	sess := &Session{
		ID:        id,
		ExpiresAt: m.now().Add(m.ttl),
	}
	m.sessions[id] = sess
	m.purgeExpiredLocked()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	r.AddCookie(&http.Cookie{Name: CookieName, Value: id})

	return sess
}

// Authenticate marks the request's session as logged in under the given
// display name.
func (m *Manager) Authenticate(w http.ResponseWriter, r *http.Request, name string) {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	sess.UserName = name
	sess.Authenticated = true
	sess.ExpiresAt = m.now().Add(m.ttl)
}

// Clear logs the session out. Idempotent: clearing an anonymous session is a
// no-op.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	sess.UserName = ""
	sess.Authenticated = false
}

func (m *Manager) IsAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	return sess.Authenticated
}

func (m *Manager) UserName(w http.ResponseWriter, r *http.Request) string {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	return sess.UserName
}

func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, level, message string) {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	sess.flashes = append(sess.flashes, Flash{Level: level, Message: message})
}

// PopFlashes drains the pending notices for rendering.
func (m *Manager) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := m.Get(w, r)
	m.mu.Lock()
	defer m.mu.Unlock()
	flashes := sess.flashes
	sess.flashes = nil
	return flashes
}

// RequireSession gates protected pages: unauthenticated requests are
// redirected to the login page with a warning notice and the handler is
// never invoked.
func (m *Manager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsAuthenticated(w, r) {
			m.AddFlash(w, r, "warning", "Acesso negado. Por favor, faça login.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// purgeExpiredLocked drops expired sessions. Caller holds the lock.
func (m *Manager) purgeExpiredLocked() {
	now := m.now()
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}
