package auth

// Decision is the outcome of a guard check: either the navigation is
// allowed, or it is replaced by a redirect to RedirectTo.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Authenticator is the read-only view of the session the guard consults.
type Authenticator interface {
	IsAuthenticated() bool
}

// Guard gatekeeps protected screens. It has no side effects beyond
// constructing the redirect decision.
type Guard struct {
	auth Authenticator
}

// NewGuard creates a Guard over the given session view.
func NewGuard(a Authenticator) *Guard {
	return &Guard{auth: a}
}

// Check allows navigation when authenticated and otherwise redirects to
// the entry screen.
func (g *Guard) Check() Decision {
	if g.auth.IsAuthenticated() {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: EntryRoute}
}
