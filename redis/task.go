// Package redis provides a docmeta.TaskStore backed by Redis, for task
// status shared between several processes.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docmeta"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces task keys.
const DefaultKeyPrefix = "docmeta:task:"

// Compile-time interface verification.
var _ docmeta.TaskStore = (*TaskStore)(nil)

// TaskStore implements docmeta.TaskStore with one JSON value per task.
// Writes are plain SETs, so concurrent writers race under last-write-wins.
type TaskStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration

	// Now returns the update time. Defaults to time.Now.
	Now func() time.Time
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithKeyPrefix sets the key prefix. Defaults to DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *TaskStore) {
		s.prefix = prefix
	}
}

// WithTTL expires records ttl after their last write.
// Zero, the default, keeps records forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *TaskStore) {
		s.ttl = ttl
	}
}

// NewTaskStore creates a new TaskStore using client.
func NewTaskStore(client *redis.Client, opts ...Option) *TaskStore {
	s := &TaskStore{
		client: client,
		prefix: DefaultKeyPrefix,
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskStore) key(id string) string {
	return s.prefix + id
}

// ReadTask returns the stored record or the unknown-task record.
func (s *TaskStore) ReadTask(ctx context.Context, id string) (*docmeta.TaskStatus, error) {
	if id == "" {
		return nil, docmeta.Errorf(docmeta.EINVALID, "task ID required")
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return docmeta.NewUnknownTask(id), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key(id), err)
	}

	var task docmeta.TaskStatus
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", id, err)
	}
	return &task, nil
}

// WriteTask replaces the record for task.TaskID and stamps task.UpdatedAt.
func (s *TaskStore) WriteTask(ctx context.Context, task *docmeta.TaskStatus) error {
	if err := task.Validate(); err != nil {
		return err
	}

	task.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(task)
	if err != nil {
		return docmeta.Errorf(docmeta.EINVALID, "extra payload is not JSON-serializable: %v", err)
	}

	if err := s.client.Set(ctx, s.key(task.TaskID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key(task.TaskID), err)
	}
	return nil
}

func (s *TaskStore) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
