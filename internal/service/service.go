// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All task API calls go through this interface.
// Commands never import the HTTP backend directly.
type Service interface {
	// ListTasks returns all tasks owned by the given user email,
	// in backend order.
	ListTasks(ctx context.Context, email string) ([]Task, error)

	// CreateTask creates a new task and returns the created record.
	CreateTask(ctx context.Context, task CreateTask) (Task, error)

	// UpdateTask applies a partial update to the task with the given
	// backend task ID and returns the updated record.
	UpdateTask(ctx context.Context, taskID string, update UpdateTask) (Task, error)

	// DeleteTask deletes a task by its backend task ID.
	DeleteTask(ctx context.Context, taskID string) error
}
