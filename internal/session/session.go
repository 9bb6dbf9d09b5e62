package session

import (
	"sync"

	"taskdeck/internal/service"
)

// Durable keys written by the auth layer.
const (
	// KeyAuthToken holds the credential string.
	KeyAuthToken = "auth_token"

	// KeyUserEmail holds the email claim of the last issued token.
	KeyUserEmail = "user_email"

	// AuthKeyPrefix selects the durable keys purged on forced logout,
	// together with KeyUserEmail.
	AuthKeyPrefix = "auth_"
)

// Session is the process-lifetime authentication state. The token and user
// email are persisted to the durable store; the decoded user identity and
// the authenticated flag live only in memory. All methods are safe for
// concurrent use.
//
// Invariant: a non-nil user implies the authenticated flag is set. The
// converse does not hold: a token that is present but undecodable leaves
// the session authenticated with no user record.
type Session struct {
	mu            sync.RWMutex
	durable       *Store
	ephemeral     map[string]string
	user          *service.User
	authenticated bool
}

// New creates a Session over the given durable store.
func New(durable *Store) *Session {
	return &Session{
		durable:   durable,
		ephemeral: make(map[string]string),
	}
}

// AuthToken returns the stored credential, or "" when absent.
func (s *Session) AuthToken() string {
	tok, _ := s.durable.Get(KeyAuthToken)
	return tok
}

// StoreToken persists the credential and mirrors it ephemerally.
func (s *Session) StoreToken(token string) error {
	s.mu.Lock()
	s.ephemeral[KeyAuthToken] = token
	s.mu.Unlock()
	return s.durable.Set(KeyAuthToken, token)
}

// StoreUserEmail persists the user email key and mirrors it ephemerally.
func (s *Session) StoreUserEmail(email string) error {
	s.mu.Lock()
	s.ephemeral[KeyUserEmail] = email
	s.mu.Unlock()
	return s.durable.Set(KeyUserEmail, email)
}

// User returns the decoded user identity, or nil.
func (s *Session) User() *service.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the decoded user identity.
func (s *Session) SetUser(u *service.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// Authenticated reports whether a token was present at the last check.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetAuthenticated sets the authenticated flag.
func (s *Session) SetAuthenticated(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = v
}

// Ephemeral returns the ephemeral value for key and whether it exists.
func (s *Session) Ephemeral(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.ephemeral[key]
	return v, ok
}

// SetEphemeral stores a session-scoped value.
func (s *Session) SetEphemeral(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ephemeral[key] = value
}

// ClearEphemeral drops the entire ephemeral mirror.
func (s *Session) ClearEphemeral() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ephemeral = make(map[string]string)
}

// ClearDurableAuth removes the token and user email keys.
func (s *Session) ClearDurableAuth() error {
	if err := s.durable.Remove(KeyAuthToken); err != nil {
		return err
	}
	return s.durable.Remove(KeyUserEmail)
}

// PurgeDurableAuth removes every durable key with the auth prefix plus the
// user email key. Unrelated keys are left untouched.
func (s *Session) PurgeDurableAuth() error {
	if err := s.durable.RemovePrefix(AuthKeyPrefix); err != nil {
		return err
	}
	return s.durable.Remove(KeyUserEmail)
}

// Durable exposes the underlying durable store.
func (s *Session) Durable() *Store {
	return s.durable
}
