package taskapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/kit/log"

	"taskdeck/internal/backend/taskapi"
)

type staticTokens string

func (s staticTokens) AuthToken() string { return string(s) }

func TestTransport_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := taskapi.New(srv.URL, staticTokens("tok123"), log.NewNopLogger())
	if _, err := c.ListTasks(context.Background(), "test@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotAuth != "Bearer tok123" {
		t.Errorf("expected Authorization %q, got %q", "Bearer tok123", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected an X-Request-Id header")
	}
}

func TestTransport_NoTokenLeavesRequestUnmodified(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := taskapi.New(srv.URL, staticTokens(""), log.NewNopLogger())
	if _, err := c.ListTasks(context.Background(), "test@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if hasAuth {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTransport_UnauthorizedFiresHookOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := taskapi.New(srv.URL, staticTokens("expired"), log.NewNopLogger())
	fired := 0
	c.OnUnauthorized(func() { fired++ })

	_, err := c.ListTasks(context.Background(), "test@example.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if !taskapi.IsUnauthorized(err) {
		t.Errorf("expected unauthorized error, got %v", err)
	}
	if fired != 1 {
		t.Errorf("expected hook fired once, got %d", fired)
	}
}

func TestTransport_OtherFailuresDoNotFireHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := taskapi.New(srv.URL, staticTokens("tok"), log.NewNopLogger())
	fired := 0
	c.OnUnauthorized(func() { fired++ })

	_, err := c.ListTasks(context.Background(), "test@example.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if taskapi.IsUnauthorized(err) {
		t.Error("500 must not classify as unauthorized")
	}
	if fired != 0 {
		t.Errorf("expected hook not fired, got %d", fired)
	}
}
