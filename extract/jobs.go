package extract

import (
	"context"
	"sync"

	"github.com/fwojciec/docmeta"
	"github.com/google/uuid"
)

// Jobs runs extractions in the background and reports their progress
// through a TaskStore. A task moves from pending to running, then to done
// with the record under the "metadata" extra key, or to error with the
// failure as its message.
type Jobs struct {
	Metadata docmeta.MetadataService
	Tasks    docmeta.TaskStore

	// NewID generates task IDs when the caller supplies none.
	// Defaults to random UUIDs.
	NewID func() string

	wg sync.WaitGroup
}

// NewJobs creates a new Jobs runner.
func NewJobs(metadata docmeta.MetadataService, tasks docmeta.TaskStore) *Jobs {
	return &Jobs{
		Metadata: metadata,
		Tasks:    tasks,
		NewID:    uuid.NewString,
	}
}

// Start validates rawURL, records the task as pending and extracts in the
// background. The returned ID is taskID, or a generated one when empty.
// The background work outlives ctx cancellation but keeps its values.
func (j *Jobs) Start(ctx context.Context, rawURL, taskID string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}
	if taskID == "" {
		taskID = j.newID()
	}

	if err := j.Tasks.WriteTask(ctx, &docmeta.TaskStatus{
		TaskID:  taskID,
		Status:  docmeta.TaskPending,
		Message: "Extraction queued",
		Extra:   map[string]any{"url": rawURL},
	}); err != nil {
		return "", err
	}

	bg := context.WithoutCancel(ctx)
	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		j.run(bg, taskID, rawURL)
	}()

	return taskID, nil
}

// Wait blocks until all started jobs have finished.
func (j *Jobs) Wait() {
	j.wg.Wait()
}

// Write failures are not returned anywhere; wrap Tasks with a logging
// store to observe them.
func (j *Jobs) run(ctx context.Context, taskID, rawURL string) {
	_ = j.Tasks.WriteTask(ctx, &docmeta.TaskStatus{
		TaskID:  taskID,
		Status:  docmeta.TaskRunning,
		Message: "Extracting metadata",
		Extra:   map[string]any{"url": rawURL},
	})

	md, err := j.Metadata.ExtractMetadata(ctx, rawURL)
	if err != nil {
		_ = j.Tasks.WriteTask(ctx, &docmeta.TaskStatus{
			TaskID:  taskID,
			Status:  docmeta.TaskError,
			Message: docmeta.ErrorMessage(err),
			Extra:   map[string]any{"url": rawURL},
		})
		return
	}

	_ = j.Tasks.WriteTask(ctx, &docmeta.TaskStatus{
		TaskID:  taskID,
		Status:  docmeta.TaskDone,
		Message: "Metadata extracted",
		Extra:   map[string]any{"url": rawURL, "metadata": md},
	})
}

func (j *Jobs) newID() string {
	if j.NewID == nil {
		return uuid.NewString()
	}
	return j.NewID()
}
