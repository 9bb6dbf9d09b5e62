// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"taskdeck/internal/service"
)

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks map[string][]service.Task // email -> tasks

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{tasks: make(map[string][]service.Task)}
}

// AddTask seeds a task for the given user and returns it.
func (f *FakeService) AddTask(email, title, description string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	t := service.Task{
		ID:          id,
		TaskID:      id,
		Title:       title,
		Description: description,
		Completed:   completed,
		Email:       email,
	}
	f.tasks[email] = append(f.tasks[email], t)
	return t
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, email string) ([]service.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[email]))
	copy(result, f.tasks[email])
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.CreateTask) (service.Task, error) {
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.NewString()
	created := service.Task{
		ID:          id,
		TaskID:      id,
		Title:       task.Title,
		Description: task.Description,
		Email:       task.UserEmail,
	}
	if task.Completed != nil {
		created.Completed = *task.Completed
	}
	f.tasks[task.UserEmail] = append(f.tasks[task.UserEmail], created)
	return created, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, taskID string, update service.UpdateTask) (service.Task, error) {
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, tasks := range f.tasks {
		for i, t := range tasks {
			if t.TaskID != taskID {
				continue
			}
			if update.Title != nil {
				t.Title = *update.Title
			}
			if update.Description != nil {
				t.Description = *update.Description
			}
			if update.Completed != nil {
				t.Completed = *update.Completed
			}
			f.tasks[email][i] = t
			return t, nil
		}
	}
	return service.Task{}, ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, tasks := range f.tasks {
		for i, t := range tasks {
			if t.TaskID == taskID {
				f.tasks[email] = append(tasks[:i], tasks[i+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}
