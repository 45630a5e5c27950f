package docmeta

import (
	"context"
	"encoding/json"
	"maps"
	"time"
)

// Task status labels. Status is free-form; these are the labels used
// within this module.
const (
	TaskUnknown = "unknown"
	TaskPending = "pending"
	TaskRunning = "running"
	TaskDone    = "done"
	TaskError   = "error"
)

// TaskNotFoundMessage is the message of a synthesized record for an unknown task.
const TaskNotFoundMessage = "Task not found"

// TaskStatus is the last known state of an out-of-band unit of work.
type TaskStatus struct {
	TaskID    string
	Status    string
	Message   string
	UpdatedAt time.Time

	// Extra holds arbitrary payload fields. They are flattened into the top
	// level of the JSON form; reserved keys are never overridden by Extra.
	Extra map[string]any
}

// NewUnknownTask returns the record reported for a task that was never written.
func NewUnknownTask(id string) *TaskStatus {
	return &TaskStatus{
		TaskID:  id,
		Status:  TaskUnknown,
		Message: TaskNotFoundMessage,
	}
}

// Validate returns an error if the task contains invalid fields.
func (t *TaskStatus) Validate() error {
	if t.TaskID == "" {
		return Errorf(EINVALID, "task ID required")
	}
	return nil
}

// Fields returns the flattened representation of the task.
func (t *TaskStatus) Fields() map[string]any {
	m := make(map[string]any, len(t.Extra)+4)
	maps.Copy(m, t.Extra)
	m["taskId"] = t.TaskID
	m["status"] = t.Status
	m["message"] = t.Message
	if !t.UpdatedAt.IsZero() {
		m["updatedAt"] = t.UpdatedAt.UTC().Format(time.RFC3339Nano)
	} else {
		delete(m, "updatedAt")
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (t *TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Fields())
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = TaskStatus{}
	t.TaskID, _ = raw["taskId"].(string)
	t.Status, _ = raw["status"].(string)
	t.Message, _ = raw["message"].(string)
	if s, ok := raw["updatedAt"].(string); ok && s != "" {
		updatedAt, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return Errorf(EINVALID, "invalid updatedAt: %v", err)
		}
		t.UpdatedAt = updatedAt
	}

	for _, key := range []string{"taskId", "status", "message", "updatedAt"} {
		delete(raw, key)
	}
	if len(raw) > 0 {
		t.Extra = raw
	}
	return nil
}

// TaskStore holds the last written status of each task.
// Writes are full overwrites with last-write-wins semantics.
type TaskStore interface {
	// ReadTask returns the stored record, or NewUnknownTask(id) when the
	// task was never written. Returns EINVALID for an empty id.
	ReadTask(ctx context.Context, id string) (*TaskStatus, error)

	// WriteTask replaces the record for task.TaskID and stamps UpdatedAt.
	// Returns EINVALID for an empty id.
	WriteTask(ctx context.Context, task *TaskStatus) error
}
