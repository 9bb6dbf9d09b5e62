// Package token extracts claims from the payload segment of a compact JWT.
//
// Decoding is a pure parsing step. The signature is never verified: the
// backend is the sole issuer and possession of a token, not its validity,
// is what the client checks. Callers must never treat a successful decode
// as cryptographic validation.
package token

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"taskdeck/internal/service"
)

// Claims holds the decoded fields the client cares about.
type Claims struct {
	// Email is the email claim. Always non-empty on a successful decode.
	Email string

	// Subject is the sub claim, or "" when absent.
	Subject string
}

// Decode splits a header.payload.signature token, base64-decodes the
// payload without verifying the signature, and reads the email claim.
// Any malformed segment or missing email claim yields an error.
func Decode(raw string) (*Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("decode token: unexpected claims type")
	}
	email, _ := mc["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("decode token: no email claim")
	}
	sub, _ := mc["sub"].(string)
	return &Claims{Email: email, Subject: sub}, nil
}

// User builds the user identity implied by the claims. The display name is
// the local part of the email; the ID falls back to "1" when the token
// carries no subject, matching what the backend issues.
func User(c *Claims) service.User {
	id := c.Subject
	if id == "" {
		id = "1"
	}
	return service.User{
		ID:    id,
		Email: c.Email,
		Name:  strings.Split(c.Email, "@")[0],
	}
}
