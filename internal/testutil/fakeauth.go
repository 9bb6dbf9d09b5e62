package testutil

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"taskdeck/internal/auth"
	"taskdeck/internal/backend/taskapi"
	"taskdeck/internal/service"
)

// MakeToken builds an unsigned compact token whose payload carries the
// given claims. The signature segment is a placeholder; the client never
// verifies it.
func MakeToken(claims map[string]any) string {
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, _ := json.Marshal(claims)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

// FakeAPI is an in-memory implementation of auth.API for testing.
// Login issues a decodable token for registered emails and a 401 backend
// error otherwise.
type FakeAPI struct {
	mu    sync.Mutex
	users map[string]service.User

	// LastToken is the token issued by the most recent Login.
	LastToken string

	// TokenFor overrides token issuance when non-nil.
	TokenFor func(email string) string

	// Error injection for testing
	LoginErr      error
	CreateUserErr error
}

// NewFakeAPI creates a FakeAPI with the given registered emails.
func NewFakeAPI(emails ...string) *FakeAPI {
	f := &FakeAPI{users: make(map[string]service.User)}
	for _, e := range emails {
		f.users[e] = service.User{ID: "1", Email: e}
	}
	return f
}

// Login implements auth.API.
func (f *FakeAPI) Login(ctx context.Context, email string) (string, error) {
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; !ok {
		return "", &taskapi.Error{StatusCode: http.StatusUnauthorized, Message: "email not registered"}
	}
	tok := MakeToken(map[string]any{"email": email})
	if f.TokenFor != nil {
		tok = f.TokenFor(email)
	}
	f.LastToken = tok
	return tok, nil
}

// CreateUser implements auth.API.
func (f *FakeAPI) CreateUser(ctx context.Context, u service.RegisterUser) (service.User, error) {
	if f.CreateUserErr != nil {
		return service.User{}, f.CreateUserErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := service.User{ID: "1", Email: u.Email, Name: u.Name}
	f.users[u.Email] = created
	return created, nil
}

// FakeNavigator records navigation for assertions.
type FakeNavigator struct {
	mu       sync.Mutex
	location string

	// Entries counts NavigateToEntry calls.
	Entries int
}

// NewFakeNavigator creates a navigator at the given route.
func NewFakeNavigator(location string) *FakeNavigator {
	return &FakeNavigator{location: location}
}

// Location implements auth.Navigator.
func (n *FakeNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// NavigateToEntry implements auth.Navigator.
func (n *FakeNavigator) NavigateToEntry() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Entries++
	n.location = auth.EntryRoute
}
