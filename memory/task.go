// Package memory provides a process-local docmeta.TaskStore.
//
// Records live only as long as the process and are not shared between
// processes; use the sqlite or redis stores when either matters.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/fwojciec/docmeta"
)

// Compile-time interface verification.
var _ docmeta.TaskStore = (*TaskStore)(nil)

// TaskStore implements docmeta.TaskStore with a mutex-guarded map.
// Concurrent writers to the same task race under last-write-wins.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]docmeta.TaskStatus

	// Now returns the update time. Defaults to time.Now.
	Now func() time.Time
}

// NewTaskStore creates an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]docmeta.TaskStatus),
		Now:   time.Now,
	}
}

// ReadTask returns a copy of the stored record or the unknown-task record.
func (s *TaskStore) ReadTask(ctx context.Context, id string) (*docmeta.TaskStatus, error) {
	if id == "" {
		return nil, docmeta.Errorf(docmeta.EINVALID, "task ID required")
	}

	s.mu.RLock()
	task, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return docmeta.NewUnknownTask(id), nil
	}
	task.Extra = maps.Clone(task.Extra)
	return &task, nil
}

// WriteTask replaces the record for task.TaskID and stamps task.UpdatedAt.
func (s *TaskStore) WriteTask(ctx context.Context, task *docmeta.TaskStatus) error {
	if err := task.Validate(); err != nil {
		return err
	}

	task.UpdatedAt = s.now().UTC()
	stored := *task
	stored.Extra = maps.Clone(task.Extra)

	s.mu.Lock()
	s.tasks[task.TaskID] = stored
	s.mu.Unlock()

	return nil
}

func (s *TaskStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
