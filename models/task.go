package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a background task
type TaskStatus string

const (
	TaskStatusQueued     TaskStatus = "queued"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskType identifies what work a background task performs
type TaskType string

const (
	TaskTypeExtract  TaskType = "extract"
	TaskTypeEvaluate TaskType = "evaluate"
)

// TaskResult holds arbitrary JSON produced by a completed task
type TaskResult map[string]interface{}

// Value implements driver.Valuer for JSONB
func (r TaskResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB
func (r *TaskResult) Scan(value interface{}) error {
	if value == nil {
		*r = make(TaskResult)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*r = make(TaskResult)
		return nil
	}

	return json.Unmarshal(bytes, r)
}

// Task represents a background job tracked in the database
type Task struct {
	ID           uuid.UUID  `json:"id"`
	TaskType     TaskType   `json:"task_type"`
	ProjectID    *uuid.UUID `json:"project_id,omitempty"`
	Status       TaskStatus `json:"status"`
	Result       TaskResult `json:"result,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
