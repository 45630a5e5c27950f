// Package http provides an HTTP-based implementation of docmeta.Fetcher
// for retrieving the public landing page of a document.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docmeta"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout bounds the whole request, body read included.
const DefaultFetchTimeout = 10 * time.Second

// Default request signature. The headers mimic a desktop browser to lower the
// chance of being served a block page. This is best effort only: nothing in
// the extraction path assumes the platform honors it.
const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultReferer   = "https://www.scribd.com/"
)

// Ensure Fetcher implements docmeta.Fetcher at compile time.
var _ docmeta.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves landing page HTML with a single timeout-bounded GET.
// Redirects are followed; there are no retries.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	referer   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithReferer overrides the Referer header, normally the platform root.
func WithReferer(referer string) Option {
	return func(f *Fetcher) {
		f.referer = referer
	}
}

// WithClient sets the underlying HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		referer:   DefaultReferer,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", docmeta.Errorf(docmeta.EINVALID, "invalid URL: %v", err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &docmeta.HTTPError{
			StatusCode: resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return "", docmeta.Errorf(docmeta.ECONTENTTYPE, "unexpected content type: %s", contentType)
	}

	// Decode to UTF-8 using the declared or sniffed charset.
	var body io.Reader = resp.Body
	if r, err := charset.NewReader(resp.Body, contentType); err == nil {
		body = r
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fetchError(ctx, err)
	}

	return string(data), nil
}

// Close releases idle connections held by the client.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("DNT", "1")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}
}

// fetchError maps transport failures to application errors.
func fetchError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return docmeta.Errorf(docmeta.ETIMEOUT, "request timeout - source took too long to respond")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return docmeta.Errorf(docmeta.ETIMEOUT, "request timeout - source took too long to respond")
	}
	return fmt.Errorf("fetch: %w", err)
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml")
}
