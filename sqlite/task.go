package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docmeta"
)

// Compile-time interface verification.
var _ docmeta.TaskStore = (*TaskStore)(nil)

// TaskStore implements docmeta.TaskStore using SQLite.
// Extra payload fields are stored as a JSON object, so they read back with
// JSON types (numbers as float64, nested values as maps and slices).
type TaskStore struct {
	db *DB

	// Now returns the update time. Defaults to time.Now.
	Now func() time.Time
}

// NewTaskStore creates a new TaskStore.
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db, Now: time.Now}
}

// ReadTask retrieves a task by ID, or the unknown-task record.
func (s *TaskStore) ReadTask(ctx context.Context, id string) (*docmeta.TaskStatus, error) {
	if id == "" {
		return nil, docmeta.Errorf(docmeta.EINVALID, "task ID required")
	}

	task := docmeta.TaskStatus{TaskID: id}
	var extra, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT status, message, extra, updated_at
		FROM tasks
		WHERE id = ?
	`, id).Scan(&task.Status, &task.Message, &extra, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return docmeta.NewUnknownTask(id), nil
	}
	if err != nil {
		return nil, err
	}

	task.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(extra), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse extra: %w", err)
	}
	if len(fields) > 0 {
		task.Extra = fields
	}

	return &task, nil
}

// WriteTask upserts the task, replacing every column of an existing row.
func (s *TaskStore) WriteTask(ctx context.Context, task *docmeta.TaskStatus) error {
	if err := task.Validate(); err != nil {
		return err
	}

	extra := []byte("{}")
	if len(task.Extra) > 0 {
		var err error
		if extra, err = json.Marshal(task.Extra); err != nil {
			return docmeta.Errorf(docmeta.EINVALID, "extra payload is not JSON-serializable: %v", err)
		}
	}

	task.UpdatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, status, message, extra, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			message = excluded.message,
			extra = excluded.extra,
			updated_at = excluded.updated_at
	`, task.TaskID, task.Status, task.Message, string(extra), task.UpdatedAt.Format(time.RFC3339Nano))

	return err
}

func (s *TaskStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
