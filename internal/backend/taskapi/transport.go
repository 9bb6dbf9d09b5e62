package taskapi

import (
	"net/http"

	"github.com/google/uuid"
)

// TokenSource supplies the current credential to the transport.
type TokenSource interface {
	AuthToken() string
}

// authTransport wraps every outbound request: when a token is present it is
// attached as a bearer credential, otherwise the request goes out
// unmodified. A 401 response fires the unauthorized hook exactly once and
// the response is passed through unchanged to the caller. The transport
// never retries.
type authTransport struct {
	base           http.RoundTripper
	tokens         TokenSource
	onUnauthorized func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the original request is not mutated.
	r := req.Clone(req.Context())
	r.Header.Set("X-Request-Id", uuid.NewString())
	if tok := t.tokens.AuthToken(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized()
	}
	return resp, nil
}
