package cli

import (
	"fmt"
	"io"
	"sync"

	"taskdeck/internal/auth"
)

// Navigator is the CLI's screen model. The dispatcher sets the current
// route from the command being run; navigating to the entry screen renders
// as a stderr notice telling the user to sign in again.
type Navigator struct {
	mu       sync.Mutex
	errOut   io.Writer
	location string
}

// NewNavigator creates a Navigator starting on the entry screen.
func NewNavigator(errOut io.Writer) *Navigator {
	return &Navigator{errOut: errOut, location: auth.EntryRoute}
}

// SetLocation records the current route.
func (n *Navigator) SetLocation(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = route
}

// Location implements auth.Navigator.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// NavigateToEntry implements auth.Navigator. Arriving from another screen
// prints the sign-in hint; navigating while already on the entry screen is
// silent.
func (n *Navigator) NavigateToEntry() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.location != auth.EntryRoute {
		fmt.Fprintln(n.errOut, "logged out (run: taskdeck login <email>)")
	}
	n.location = auth.EntryRoute
}
