package docmeta

import "context"

// Fetcher retrieves the raw HTML of a landing page.
type Fetcher interface {
	// Fetch performs a single bounded GET and returns the response body.
	// Fails with ETIMEOUT, *HTTPError or ECONTENTTYPE.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the Fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
