package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/docmeta"
	"github.com/fwojciec/docmeta/mock"
	dmslog "github.com/fwojciec/docmeta/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := dmslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://www.scribd.com/document/1")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://www.scribd.com/document/1")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := dmslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://www.scribd.com/document/1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"network error\"")
	})

	t.Run("delegates close", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, dmslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close())
		assert.True(t, closed)
	})
}

func TestLoggingMetadataService_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("logs doc id on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MetadataService{
			ExtractMetadataFn: func(ctx context.Context, url string) (*docmeta.Metadata, error) {
				return &docmeta.Metadata{DocID: "123", Title: "Sample"}, nil
			},
		}

		md, err := dmslog.NewLoggingMetadataService(inner, logger).ExtractMetadata(context.Background(), "https://www.scribd.com/document/123")

		require.NoError(t, err)
		assert.Equal(t, "123", md.DocID)
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "docId=123")
	})

	t.Run("logs code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.MetadataService{
			ExtractMetadataFn: func(ctx context.Context, url string) (*docmeta.Metadata, error) {
				return nil, &docmeta.ExtractionError{Err: docmeta.Errorf(docmeta.ETIMEOUT, "request timeout")}
			},
		}

		_, err := dmslog.NewLoggingMetadataService(inner, logger).ExtractMetadata(context.Background(), "https://www.scribd.com/document/123")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "code=timeout")
	})
}

func TestLoggingTaskStore(t *testing.T) {
	t.Parallel()

	t.Run("logs reads at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.TaskStore{
			ReadTaskFn: func(ctx context.Context, id string) (*docmeta.TaskStatus, error) {
				return docmeta.NewUnknownTask(id), nil
			},
		}

		_, err := dmslog.NewLoggingTaskStore(inner, logger).ReadTask(context.Background(), "t1")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "taskId=t1")
		assert.Contains(t, buf.String(), "status=unknown")
	})

	t.Run("logs write failures at error level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TaskStore{
			WriteTaskFn: func(ctx context.Context, task *docmeta.TaskStatus) error {
				return errors.New("disk full")
			},
		}

		err := dmslog.NewLoggingTaskStore(inner, logger).WriteTask(context.Background(), &docmeta.TaskStatus{TaskID: "t1", Status: docmeta.TaskDone})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=ERROR")
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})
}
