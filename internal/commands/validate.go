package commands

import (
	"fmt"
	"io"
	"net/mail"
	"strings"

	"taskdeck/internal/auth"
	"taskdeck/internal/exitcode"
)

// minTitleLen mirrors the backend's title validation.
const minTitleLen = 3

// validEmail reports whether s looks like a plain email address.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// Reject display-name forms like "Bob <bob@example.com>".
	return addr.Address == s && !strings.ContainsAny(s, " \t")
}

// currentEmail returns the signed-in user's email, or writes the
// credential-absent error and returns a non-zero exit code.
func currentEmail(sess *auth.Manager, errOut io.Writer) (string, int) {
	u := sess.CurrentUser()
	if u == nil || u.Email == "" {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdeck login <email>)")
		return "", exitcode.AuthError
	}
	return u.Email, exitcode.Success
}
