// Package extract orchestrates metadata extraction: fetching a landing page,
// running the field extractors and reporting progress of background jobs.
package extract

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/docmeta"
)

// Ensure Service implements docmeta.MetadataService at compile time.
var _ docmeta.MetadataService = (*Service)(nil)

// Service fetches landing pages and extracts their metadata.
type Service struct {
	Fetcher   docmeta.Fetcher
	Extractor docmeta.MetadataExtractor

	// RateLimiter and Concurrency apply to ExtractAll only.
	RateLimiter docmeta.DomainLimiter
	Concurrency int

	// Now returns the capture time. Defaults to time.Now.
	Now func() time.Time
}

// NewService creates a new Service.
func NewService(fetcher docmeta.Fetcher, extractor docmeta.MetadataExtractor) *Service {
	return &Service{
		Fetcher:   fetcher,
		Extractor: extractor,
		Now:       time.Now,
	}
}

// ExtractMetadata fetches rawURL and returns its metadata record.
// Either the whole record is returned or the call fails.
func (s *Service) ExtractMetadata(ctx context.Context, rawURL string) (*docmeta.Metadata, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := s.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, &docmeta.ExtractionError{Err: err}
	}

	md, err := s.extract(html, rawURL)
	if err != nil {
		return nil, &docmeta.ExtractionError{Err: err}
	}

	md.URL = rawURL
	md.Timestamp = s.now().UTC()
	return md, nil
}

// extract runs the extractor, turning a panic into an internal error.
func (s *Service) extract(html, rawURL string) (md *docmeta.Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			md, err = nil, docmeta.Errorf(docmeta.EINTERNAL, "extractor panic: %v", r)
		}
	}()
	md = s.Extractor.Extract(html, rawURL)
	if md == nil {
		return nil, docmeta.Errorf(docmeta.EINTERNAL, "extractor returned no metadata")
	}
	return md, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// ValidateURL rejects empty URLs and URLs that are not absolute http(s).
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return docmeta.Errorf(docmeta.EINVALID, "url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return docmeta.Errorf(docmeta.EINVALID, "invalid url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return docmeta.Errorf(docmeta.EINVALID, "invalid url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return docmeta.Errorf(docmeta.EINVALID, "url host required")
	}
	return nil
}

// host returns the host of rawURL for rate limiting.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
