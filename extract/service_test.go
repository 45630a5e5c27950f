package extract_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docmeta"
	"github.com/fwojciec/docmeta/extract"
	"github.com/fwojciec/docmeta/goquery"
	dmhttp "github.com/fwojciec/docmeta/http"
	"github.com/fwojciec/docmeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(fetcher docmeta.Fetcher, extractor docmeta.MetadataExtractor) *extract.Service {
	svc := extract.NewService(fetcher, extractor)
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestService_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("assembles full record", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return `<html><head><title>Sample Document | Scribd</title>
<meta name="description" content="A sample."></head>
<script>{"author": "Jane Doe", "page_count": 42}</script></html>`, nil
			},
		}
		svc := newService(fetcher, goquery.NewExtractor())

		md, err := svc.ExtractMetadata(context.Background(), "https://www.scribd.com/document/987/Sample")

		require.NoError(t, err)
		assert.Equal(t, "Sample Document", md.Title)
		assert.Equal(t, "Jane Doe", md.Author)
		require.NotNil(t, md.PageCount)
		assert.Equal(t, 42, *md.PageCount)
		require.NotNil(t, md.Description)
		assert.Equal(t, "A sample.", *md.Description)
		assert.Equal(t, "987", md.DocID)
		assert.Equal(t, "https://www.scribd.com/document/987/Sample", md.URL)
		assert.Equal(t, fixedNow, md.Timestamp)
	})

	t.Run("rejects invalid input before fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			},
		}
		svc := newService(fetcher, goquery.NewExtractor())

		for _, url := range []string{"", "   ", "ftp://example.com/doc/1", "not a url", "https:///document/1"} {
			_, err := svc.ExtractMetadata(context.Background(), url)
			assert.Equal(t, docmeta.EINVALID, docmeta.ErrorCode(err), url)
		}
	})

	t.Run("wraps fetch failure preserving cause", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", &docmeta.HTTPError{StatusCode: 403, StatusText: "Forbidden"}
			},
		}
		svc := newService(fetcher, goquery.NewExtractor())

		_, err := svc.ExtractMetadata(context.Background(), "https://www.scribd.com/document/1")

		var xerr *docmeta.ExtractionError
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, docmeta.EHTTP, docmeta.ErrorCode(err))
		assert.Equal(t, "failed to extract metadata: HTTP 403: Forbidden", err.Error())
	})

	t.Run("wraps extractor panic as internal error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		extractor := &mock.MetadataExtractor{
			ExtractFn: func(html, sourceURL string) *docmeta.Metadata {
				panic("unexpected")
			},
		}
		svc := newService(fetcher, extractor)

		_, err := svc.ExtractMetadata(context.Background(), "https://www.scribd.com/document/1")

		var xerr *docmeta.ExtractionError
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, docmeta.EINTERNAL, docmeta.ErrorCode(err))
		assert.Contains(t, err.Error(), "unexpected")
	})

	t.Run("defaults every field for a page without metadata", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body></body></html>", nil
			},
		}
		svc := newService(fetcher, goquery.NewExtractor())

		md, err := svc.ExtractMetadata(context.Background(), "https://www.scribd.com/book/1")

		require.NoError(t, err)
		assert.Equal(t, docmeta.DefaultTitle, md.Title)
		assert.Equal(t, docmeta.DefaultAuthor, md.Author)
		assert.Nil(t, md.PageCount)
		assert.Nil(t, md.Description)
		assert.Equal(t, docmeta.DefaultDocID, md.DocID)
	})
}

func TestService_ExtractMetadata_HTTP(t *testing.T) {
	t.Parallel()

	t.Run("fails with timeout-rooted extraction error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer server.Close()

		fetcher := dmhttp.NewFetcher(dmhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()
		svc := newService(fetcher, goquery.NewExtractor())

		start := time.Now()
		_, err := svc.ExtractMetadata(context.Background(), server.URL+"/document/1")

		var xerr *docmeta.ExtractionError
		require.ErrorAs(t, err, &xerr)
		assert.Equal(t, docmeta.ETIMEOUT, docmeta.ErrorCode(err))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("fails on JSON response without pattern matching", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"author": "Jane"}`))
		}))
		defer server.Close()

		fetcher := dmhttp.NewFetcher()
		defer fetcher.Close()
		extractor := &mock.MetadataExtractor{
			ExtractFn: func(html, sourceURL string) *docmeta.Metadata {
				t.Fatal("extractor must not be called")
				return nil
			},
		}
		svc := newService(fetcher, extractor)

		_, err := svc.ExtractMetadata(context.Background(), server.URL+"/document/1")

		require.Error(t, err)
		assert.Equal(t, docmeta.ECONTENTTYPE, docmeta.ErrorCode(err))
		assert.True(t, errors.As(err, new(*docmeta.ExtractionError)))
	})
}
