// Package slog provides logging decorators for docmeta services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmeta"
)

// Ensure LoggingFetcher implements docmeta.Fetcher.
var _ docmeta.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   docmeta.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docmeta.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingMetadataService implements docmeta.MetadataService.
var _ docmeta.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with logging.
type LoggingMetadataService struct {
	next   docmeta.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next docmeta.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// ExtractMetadata delegates to the wrapped service and logs the outcome.
func (s *LoggingMetadataService) ExtractMetadata(ctx context.Context, url string) (md *docmeta.Metadata, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("extract metadata",
				"url", url,
				"code", docmeta.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("extract metadata",
			"url", url,
			"docId", md.DocID,
			"title", md.Title,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.ExtractMetadata(ctx, url)
}

// Ensure LoggingTaskStore implements docmeta.TaskStore.
var _ docmeta.TaskStore = (*LoggingTaskStore)(nil)

// LoggingTaskStore wraps a TaskStore with debug logging.
type LoggingTaskStore struct {
	next   docmeta.TaskStore
	logger *slog.Logger
}

// NewLoggingTaskStore creates a new LoggingTaskStore.
func NewLoggingTaskStore(next docmeta.TaskStore, logger *slog.Logger) *LoggingTaskStore {
	return &LoggingTaskStore{next: next, logger: logger}
}

// ReadTask delegates to the wrapped store.
func (s *LoggingTaskStore) ReadTask(ctx context.Context, id string) (task *docmeta.TaskStatus, err error) {
	defer func(begin time.Time) {
		status := ""
		if task != nil {
			status = task.Status
		}
		s.logger.Debug("read task",
			"taskId", id,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadTask(ctx, id)
}

// WriteTask delegates to the wrapped store. Failures are logged as errors
// since background writers have nowhere else to report them.
func (s *LoggingTaskStore) WriteTask(ctx context.Context, task *docmeta.TaskStatus) (err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelError
		}
		s.logger.Log(ctx, level, "write task",
			"taskId", task.TaskID,
			"status", task.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteTask(ctx, task)
}
