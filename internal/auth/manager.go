// Package auth orchestrates the client-side authentication session: login,
// logout, forced logout, and the current-authentication queries consulted by
// the rest of the program. It is the only writer of the session state.
package auth

import (
	"context"
	"sync"

	"github.com/go-kit/kit/log"

	"taskdeck/internal/service"
	"taskdeck/internal/session"
	"taskdeck/internal/token"
)

// Routes of the two screens the client knows about.
const (
	// EntryRoute is the unauthenticated landing screen.
	EntryRoute = "/auth"

	// TasksRoute is the protected task screen.
	TasksRoute = "/tasks"
)

// API is the slice of the backend the manager talks to.
type API interface {
	// Login exchanges an email for an access token. A 401 failure means
	// the email is not registered.
	Login(ctx context.Context, email string) (string, error)

	// CreateUser registers a new user.
	CreateUser(ctx context.Context, u service.RegisterUser) (service.User, error)
}

// Navigator is the screen model the manager navigates through.
type Navigator interface {
	// Location returns the current route.
	Location() string

	// NavigateToEntry moves to the entry screen.
	NavigateToEntry()
}

// Manager owns the session lifecycle.
type Manager struct {
	loginMu sync.Mutex
	sess    *session.Session
	api     API
	nav     Navigator
	logger  log.Logger
}

// NewManager creates a Manager and hydrates it from the durable store: an
// existing token marks the session authenticated without re-validation and
// its claims are decoded for the user identity; when no token exists any
// stale partial state is cleared without navigating.
func NewManager(sess *session.Session, api API, nav Navigator, logger log.Logger) *Manager {
	m := &Manager{sess: sess, api: api, nav: nav, logger: logger}
	if tok := sess.AuthToken(); tok != "" {
		m.setAuthData(tok)
	} else {
		m.clearAuthData(false)
	}
	return m
}

// Login requests a token for the email and, on success, persists it and
// updates the session. Failures propagate unchanged; a 401 means the email
// is unknown to the backend. Overlapping calls are serialized, so the last
// call to start is the one whose session state survives.
func (m *Manager) Login(ctx context.Context, email string) (string, error) {
	m.loginMu.Lock()
	defer m.loginMu.Unlock()

	tok, err := m.api.Login(ctx, email)
	if err != nil {
		return "", err
	}
	m.setAuthData(tok)
	m.logger.Log("event", "login", "email", email)
	return tok, nil
}

// Register creates a new user. The session is not touched.
func (m *Manager) Register(ctx context.Context, u service.RegisterUser) (service.User, error) {
	return m.CreateUser(ctx, u)
}

// CreateUser creates a new user. The session is not touched.
func (m *Manager) CreateUser(ctx context.Context, u service.RegisterUser) (service.User, error) {
	return m.api.CreateUser(ctx, u)
}

// Logout clears the session, performs the forced cleanup, and navigates to
// the entry screen.
func (m *Manager) Logout() {
	m.clearAuthData(true)
	m.ForceLogout()
}

// ForceLogout clears the session state, purges every durable key with the
// auth prefix plus the user email key, drops the ephemeral store entirely,
// and navigates to the entry screen only when not already there. It takes
// no locks so the request layer may call it mid-flight.
func (m *Manager) ForceLogout() {
	m.clearAuthData(false)

	if err := m.sess.PurgeDurableAuth(); err != nil {
		m.logger.Log("event", "force_logout", "err", err)
	}
	m.sess.ClearEphemeral()

	if m.nav.Location() != EntryRoute {
		m.nav.NavigateToEntry()
	}
}

// AuthToken returns the current credential, or "" when logged out.
func (m *Manager) AuthToken() string {
	return m.sess.AuthToken()
}

// IsAuthenticated reports whether a token is present.
func (m *Manager) IsAuthenticated() bool {
	return m.sess.Authenticated()
}

// CurrentUser returns the decoded user identity, or nil when no token is
// present or its payload could not be decoded.
func (m *Manager) CurrentUser() *service.User {
	return m.sess.User()
}

func (m *Manager) setAuthData(tok string) {
	if err := m.sess.StoreToken(tok); err != nil {
		m.logger.Log("event", "store_token", "err", err)
	}

	c, err := token.Decode(tok)
	if err != nil {
		// Possession of a token is what counts; an undecodable payload
		// only costs the user record.
		m.sess.SetUser(nil)
	} else {
		u := token.User(c)
		m.sess.SetUser(&u)
		if err := m.sess.StoreUserEmail(c.Email); err != nil {
			m.logger.Log("event", "store_email", "err", err)
		}
	}

	m.sess.SetAuthenticated(true)
}

func (m *Manager) clearAuthData(navigate bool) {
	if err := m.sess.ClearDurableAuth(); err != nil {
		m.logger.Log("event", "clear_auth", "err", err)
	}
	m.sess.SetUser(nil)
	m.sess.SetAuthenticated(false)

	if navigate {
		m.nav.NavigateToEntry()
	}
}
