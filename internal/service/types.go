// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"encoding/json"
	"time"
)

// Task represents a single task record as served by the backend.
type Task struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Email       string    `json:"email"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// User represents the authenticated user's identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// RegisterUser is the payload for creating a user.
type RegisterUser struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// CreateTask is the payload for creating a task.
type CreateTask struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   *bool  `json:"completed,omitempty"`
	UserEmail   string `json:"userEmail"`
}

// UpdateTask is the payload for a partial task update.
// Nil fields are left unchanged by the backend.
type UpdateTask struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// Timestamp wraps time.Time to tolerate the backend's mixed timestamp
// encodings: RFC 3339 strings, epoch-seconds objects ({"_seconds": n}),
// and null.
type Timestamp struct {
	time.Time
}

type secondsTimestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	if data[0] == '"' {
		return t.Time.UnmarshalJSON(data)
	}
	var s secondsTimestamp
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t.Time = time.Unix(s.Seconds, s.Nanoseconds).UTC()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return t.Time.MarshalJSON()
}
