package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"

	"taskdeck/internal/auth"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/session"
	"taskdeck/internal/testutil"
)

const testEmail = "test@example.com"

// newManager builds an auth manager over a temp session store.
func newManager(t *testing.T, api *testutil.FakeAPI, route string) (*auth.Manager, *session.Session, *testutil.FakeNavigator) {
	t.Helper()
	sess := session.New(session.NewStore(t.TempDir()))
	nav := testutil.NewFakeNavigator(route)
	mgr := auth.NewManager(sess, api, nav, log.NewNopLogger())
	return mgr, sess, nav
}

// loggedInManager builds a manager already signed in as testEmail.
func loggedInManager(t *testing.T) *auth.Manager {
	t.Helper()
	api := testutil.NewFakeAPI(testEmail)
	mgr, _, _ := newManager(t, api, auth.TasksRoute)
	if _, err := mgr.Login(context.Background(), testEmail); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return mgr
}

// runCommand is a helper to run a command with the given session and service.
func runCommand(t *testing.T, cmd commands.Command, mgr *auth.Manager, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:    t.TempDir(),
		APIURL: config.DefaultAPIURL,
		Quiet:  quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, mgr, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskdeck 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

// Tests for login command
func TestLoginCommand_Success(t *testing.T) {
	api := testutil.NewFakeAPI(testEmail)
	mgr, sess, _ := newManager(t, api, auth.EntryRoute)

	cmd := &commands.LoginCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, nil, []string{testEmail}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected authenticated")
	}

	// Stored durable token equals the issued one; name is the local part.
	if stored, ok := sess.Durable().Get(session.KeyAuthToken); !ok || stored != api.LastToken {
		t.Errorf("expected durable token %q, got %q", api.LastToken, stored)
	}
	if u := mgr.CurrentUser(); u == nil || u.Name != "test" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestLoginCommand_UnknownEmail(t *testing.T) {
	api := testutil.NewFakeAPI() // empty
	mgr, _, _ := newManager(t, api, auth.EntryRoute)

	cmd := &commands.LoginCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, nil, []string{"nobody@example.com"}, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "email not registered") {
		t.Errorf("expected registration hint, got %q", stderr)
	}
}

func TestLoginCommand_InvalidEmail(t *testing.T) {
	mgr, _, _ := newManager(t, testutil.NewFakeAPI(), auth.EntryRoute)

	cmd := &commands.LoginCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, nil, []string{"not-an-email"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid email") {
		t.Errorf("expected invalid email error, got %q", stderr)
	}
}

func TestLoginCommand_AlreadyLoggedIn(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.LoginCmd{}
	stdout, _, code := runCommand(t, cmd, mgr, nil, []string{testEmail}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "already logged in\n" {
		t.Errorf("expected 'already logged in', got %q", stdout)
	}
}

// Tests for logout command
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	mgr, _, _ := newManager(t, testutil.NewFakeAPI(), auth.EntryRoute)

	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, mgr, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "not logged in\n" {
		t.Errorf("expected 'not logged in', got %q", stdout)
	}
}

func TestLogoutCommand_Success(t *testing.T) {
	api := testutil.NewFakeAPI(testEmail)
	mgr, sess, _ := newManager(t, api, auth.EntryRoute)
	if _, err := mgr.Login(context.Background(), testEmail); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	cmd := &commands.LogoutCmd{}
	stdout, _, code := runCommand(t, cmd, mgr, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if mgr.IsAuthenticated() {
		t.Error("expected unauthenticated")
	}
	if _, ok := sess.Durable().Get(session.KeyAuthToken); ok {
		t.Error("auth_token should be removed")
	}
	if _, ok := sess.Durable().Get(session.KeyUserEmail); ok {
		t.Error("user_email should be removed")
	}
}

// Tests for register command
func TestRegisterCommand_CreatesAndLogsIn(t *testing.T) {
	api := testutil.NewFakeAPI()
	mgr, _, _ := newManager(t, api, auth.EntryRoute)

	cmd := &commands.RegisterCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, nil, []string{"new@example.com", "New", "User"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected signed in after register")
	}
	if u := mgr.CurrentUser(); u == nil || u.Email != "new@example.com" {
		t.Errorf("unexpected user: %+v", u)
	}
}

func TestRegisterCommand_EmailRequired(t *testing.T) {
	mgr, _, _ := newManager(t, testutil.NewFakeAPI(), auth.EntryRoute)

	cmd := &commands.RegisterCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, nil, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "email required") {
		t.Errorf("expected email required error, got %q", stderr)
	}
}

// Tests for whoami command
func TestWhoamiCommand(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.WhoamiCmd{}
	stdout, _, code := runCommand(t, cmd, mgr, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "test@example.com (test)\n" {
		t.Errorf("unexpected whoami output: %q", stdout)
	}
}

func TestWhoamiCommand_NoIdentity(t *testing.T) {
	api := testutil.NewFakeAPI(testEmail)
	api.TokenFor = func(string) string { return "un.decodable.token" }
	mgr, _, _ := newManager(t, api, auth.EntryRoute)
	if _, err := mgr.Login(context.Background(), testEmail); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	cmd := &commands.WhoamiCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, nil, nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "no user identity") {
		t.Errorf("expected identity error, got %q", stderr)
	}
}

// Tests for list command
func TestListCommand_Empty(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()

	cmd := &commands.ListCmd{}
	stdout, _, code := runCommand(t, cmd, mgr, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected 'no tasks found', got %q", stdout)
	}
}

func TestListCommand_WithTasks(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()
	svc.AddTask(testEmail, "Buy milk", "2% milk", false)
	svc.AddTask(testEmail, "Call mom", "", true)

	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Call mom\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Long(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()
	svc.AddTask(testEmail, "Buy milk", "2% milk", false)
	svc.AddTask(testEmail, "Call mom", "", true)

	cmd := &commands.ListCmd{}
	cmd.SetLong(true)
	stdout, _, code := runCommand(t, cmd, mgr, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "list_long", stdout)
}

func TestListCommand_NotLoggedIn(t *testing.T) {
	mgr, _, _ := newManager(t, testutil.NewFakeAPI(), auth.TasksRoute)

	cmd := &commands.ListCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, testutil.NewFakeService(), nil, false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "not logged in") {
		t.Errorf("expected login hint, got %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()

	cmd := &commands.AddCmd{}
	cmd.SetDescription("2 liters")
	stdout, stderr, code := runCommand(t, cmd, mgr, svc, []string{"Buy", "milk"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, err := svc.ListTasks(context.Background(), testEmail)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Description != "2 liters" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestAddCommand_TitleTooShort(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.AddCmd{}
	cmd.SetDescription("d")
	_, stderr, code := runCommand(t, cmd, mgr, testutil.NewFakeService(), []string{"ab"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "at least 3 characters") {
		t.Errorf("expected title validation error, got %q", stderr)
	}
}

func TestAddCommand_DescriptionRequired(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.AddCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, testutil.NewFakeService(), []string{"Buy milk"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "description required") {
		t.Errorf("expected description error, got %q", stderr)
	}
}

// Tests for done command
func TestDoneCommand_TogglesTask(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()
	svc.AddTask(testEmail, "Buy milk", "", false)

	cmd := &commands.DoneCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "marked as completed\n" {
		t.Errorf("unexpected output: %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background(), testEmail)
	if !tasks[0].Completed {
		t.Error("expected task completed")
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, svc, []string{"5"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "out of range") {
		t.Errorf("expected out of range error, got %q", stderr)
	}
}

func TestDoneCommand_InvalidNumber(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.DoneCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, testutil.NewFakeService(), []string{"abc"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "invalid task number") {
		t.Errorf("expected invalid number error, got %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_Success(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()
	svc.AddTask(testEmail, "Buy milk", "old", false)

	cmd := &commands.EditCmd{}
	cmd.SetTitle("Buy oat milk")
	stdout, stderr, code := runCommand(t, cmd, mgr, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background(), testEmail)
	if tasks[0].Title != "Buy oat milk" {
		t.Errorf("expected new title, got %q", tasks[0].Title)
	}
	if tasks[0].Description != "old" {
		t.Errorf("description should be unchanged, got %q", tasks[0].Description)
	}
}

func TestEditCommand_NothingToUpdate(t *testing.T) {
	mgr := loggedInManager(t)

	cmd := &commands.EditCmd{}
	_, stderr, code := runCommand(t, cmd, mgr, testutil.NewFakeService(), []string{"1"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "nothing to update") {
		t.Errorf("expected nothing-to-update error, got %q", stderr)
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	mgr := loggedInManager(t)
	svc := testutil.NewFakeService()
	svc.AddTask(testEmail, "Buy milk", "", false)

	cmd := &commands.RmCmd{}
	stdout, stderr, code := runCommand(t, cmd, mgr, svc, []string{"1"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr=%q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	tasks, _ := svc.ListTasks(context.Background(), testEmail)
	if len(tasks) != 0 {
		t.Errorf("expected task deleted, got %+v", tasks)
	}
}
