// Package tasklist caches the authenticated user's task list and applies
// mutations against the backend. The cache reflects the last successful
// server response; every mutation reconciles by re-fetching, except the
// completion toggle which is applied optimistically and rolled back on
// failure.
package tasklist

import (
	"context"
	"fmt"

	"taskdeck/internal/service"
)

// Controller drives the task list for one user.
type Controller struct {
	svc   service.Service
	email string
	tasks []service.Task
}

// New creates a Controller scoped to the given user email.
func New(svc service.Service, email string) *Controller {
	return &Controller{svc: svc, email: email}
}

// Load re-fetches the task list and returns it.
func (c *Controller) Load(ctx context.Context) ([]service.Task, error) {
	tasks, err := c.svc.ListTasks(ctx, c.email)
	if err != nil {
		return nil, err
	}
	c.tasks = tasks
	return tasks, nil
}

// Tasks returns the cached list.
func (c *Controller) Tasks() []service.Task {
	return c.tasks
}

// Task returns the cached task at the 1-based position n.
func (c *Controller) Task(n int) (service.Task, error) {
	if n < 1 || n > len(c.tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", n)
	}
	return c.tasks[n-1], nil
}

// Create creates a task and reconciles by re-fetching.
func (c *Controller) Create(ctx context.Context, title, description string) error {
	_, err := c.svc.CreateTask(ctx, service.CreateTask{
		Title:       title,
		Description: description,
		UserEmail:   c.email,
	})
	if err != nil {
		return err
	}
	_, err = c.Load(ctx)
	return err
}

// Toggle flips the completed flag of the task at the 1-based position n.
// The cached flag is flipped before the request goes out; on failure it is
// reverted, on success the list is re-fetched.
func (c *Controller) Toggle(ctx context.Context, n int) (service.Task, error) {
	if n < 1 || n > len(c.tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", n)
	}
	t := &c.tasks[n-1]
	previous := t.Completed
	t.Completed = !previous
	want := t.Completed

	updated, err := c.svc.UpdateTask(ctx, t.TaskID, service.UpdateTask{Completed: &want})
	if err != nil {
		t.Completed = previous
		return service.Task{}, err
	}

	if _, err := c.Load(ctx); err != nil {
		return service.Task{}, err
	}
	return updated, nil
}

// Update edits the task at the 1-based position n and reconciles by
// re-fetching. Nil fields are left unchanged.
func (c *Controller) Update(ctx context.Context, n int, update service.UpdateTask) error {
	t, err := c.Task(n)
	if err != nil {
		return err
	}
	if _, err := c.svc.UpdateTask(ctx, t.TaskID, update); err != nil {
		return err
	}
	_, err = c.Load(ctx)
	return err
}

// Delete removes the task at the 1-based position n and reconciles by
// re-fetching.
func (c *Controller) Delete(ctx context.Context, n int) error {
	t, err := c.Task(n)
	if err != nil {
		return err
	}
	if err := c.svc.DeleteTask(ctx, t.TaskID); err != nil {
		return err
	}
	_, err = c.Load(ctx)
	return err
}
