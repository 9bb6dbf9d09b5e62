// Package taskapi implements the service.Service and auth.API interfaces
// against the task backend's REST endpoints.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/log"

	"taskdeck/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client is a JSON-over-HTTP client for the task backend. All requests go
// through the authorizing transport.
type Client struct {
	baseURL   string
	http      *http.Client
	transport *authTransport
	logger    log.Logger
}

// New creates a client for the backend at baseURL. The token source is
// consulted on every outbound request.
func New(baseURL string, tokens TokenSource, logger log.Logger) *Client {
	t := &authTransport{tokens: tokens}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Transport: t},
		transport: t,
		logger:    logger,
	}
}

// OnUnauthorized installs the hook fired when any response comes back 401.
// Wired to the session manager's forced logout.
func (c *Client) OnUnauthorized(fn func()) {
	c.transport.onUnauthorized = fn
}

// Login exchanges an email for an access token.
func (c *Client) Login(ctx context.Context, email string) (string, error) {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, u service.RegisterUser) (service.User, error) {
	var created service.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, u, &created); err != nil {
		return service.User{}, err
	}
	return created, nil
}

// ListTasks returns all tasks owned by the given user email.
func (c *Client) ListTasks(ctx context.Context, email string) ([]service.Task, error) {
	if email == "" {
		return nil, errors.New("user email is required")
	}
	query := url.Values{"userEmail": {email}}
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", query, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, task service.CreateTask) (service.Task, error) {
	if task.UserEmail == "" {
		return service.Task{}, errors.New("user email is required")
	}
	var created service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, task, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, update service.UpdateTask) (service.Task, error) {
	var updated service.Task
	path := "/tasks/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodPut, path, nil, update, &updated); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	path := "/tasks/" + url.PathEscape(taskID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues one request with the per-call timeout and decodes the JSON
// response into result when non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Log("method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out")
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
