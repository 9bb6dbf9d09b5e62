package cli_test

import (
	"bytes"
	"testing"

	"taskdeck/internal/auth"
	"taskdeck/internal/cli"
)

func TestNavigator_NavigateFromTasks(t *testing.T) {
	var buf bytes.Buffer
	nav := cli.NewNavigator(&buf)
	nav.SetLocation(auth.TasksRoute)

	nav.NavigateToEntry()

	if nav.Location() != auth.EntryRoute {
		t.Errorf("expected entry route, got %q", nav.Location())
	}
	if buf.String() != "logged out (run: taskdeck login <email>)\n" {
		t.Errorf("unexpected notice: %q", buf.String())
	}
}

func TestNavigator_SilentOnEntry(t *testing.T) {
	var buf bytes.Buffer
	nav := cli.NewNavigator(&buf)

	nav.NavigateToEntry()

	if buf.Len() != 0 {
		t.Errorf("expected no notice, got %q", buf.String())
	}
}
