package extract

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/docmeta"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of concurrent extractions in ExtractAll.
const DefaultConcurrency = 4

// Result holds the outcome of extracting one URL.
type Result struct {
	URL      string
	Metadata *docmeta.Metadata
	Err      error
}

// Progress reports progress during a batch extraction.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as URLs complete.
type ProgressFunc func(Progress)

// ExtractAll extracts metadata for each URL with bounded concurrency and
// per-host rate limiting. Duplicate URLs are extracted once. Results are
// returned in input order; a failed URL does not stop the others.
func (s *Service) ExtractAll(ctx context.Context, urls []string, progress ProgressFunc) []Result {
	unique := make([]string, 0, len(urls))
	index := make(map[string]int, len(urls))
	for _, u := range urls {
		if _, ok := index[u]; ok {
			continue
		}
		index[u] = len(unique)
		unique = append(unique, u)
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	done := make([]Result, len(unique))
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range unique {
		g.Go(func() error {
			done[i] = s.extractOne(gctx, u)
			n := completed.Add(1)
			if progress != nil {
				progress(Progress{
					URL:       u,
					Completed: int(n),
					Total:     len(unique),
					Err:       done[i].Err,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(urls))
	for i, u := range urls {
		results[i] = done[index[u]]
	}
	return results
}

func (s *Service) extractOne(ctx context.Context, rawURL string) Result {
	if s.RateLimiter != nil {
		if h := host(rawURL); h != "" {
			if err := s.RateLimiter.Wait(ctx, h); err != nil {
				return Result{URL: rawURL, Err: err}
			}
		}
	}
	md, err := s.ExtractMetadata(ctx, rawURL)
	return Result{URL: rawURL, Metadata: md, Err: err}
}
