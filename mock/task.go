package mock

import (
	"context"

	"github.com/fwojciec/docmeta"
)

var _ docmeta.TaskStore = (*TaskStore)(nil)

// TaskStore is a mock implementation of docmeta.TaskStore.
type TaskStore struct {
	ReadTaskFn  func(ctx context.Context, id string) (*docmeta.TaskStatus, error)
	WriteTaskFn func(ctx context.Context, task *docmeta.TaskStatus) error
}

func (s *TaskStore) ReadTask(ctx context.Context, id string) (*docmeta.TaskStatus, error) {
	return s.ReadTaskFn(ctx, id)
}

func (s *TaskStore) WriteTask(ctx context.Context, task *docmeta.TaskStatus) error {
	return s.WriteTaskFn(ctx, task)
}
